package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/pkg/format"
	"github.com/segyhp/finance-tracker/pkg/utils"
	"github.com/shopspring/decimal"
)

type InstallmentStatus string

const (
	InstallmentStatusPending   InstallmentStatus = "pending"
	InstallmentStatusPaid      InstallmentStatus = "paid"
	InstallmentStatusOverdue   InstallmentStatus = "overdue"
	InstallmentStatusCancelled InstallmentStatus = "cancelled"
)

// OpenInstallmentStatuses are the states that still expect a payment
var OpenInstallmentStatuses = []InstallmentStatus{InstallmentStatusPending, InstallmentStatusOverdue}

// Installment is one scheduled payment of an installment plan
type Installment struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	InstallmentPlanID uuid.UUID         `json:"installment_plan_id" db:"installment_plan_id"`
	InstallmentNumber int               `json:"installment_number" db:"installment_number"`
	OriginalAmount    decimal.Decimal   `json:"original_amount" db:"original_amount"`
	PaidAmount        *decimal.Decimal  `json:"paid_amount" db:"paid_amount"`
	DiscountAmount    decimal.Decimal   `json:"discount_amount" db:"discount_amount"`
	DueDate           Date              `json:"due_date" db:"due_date"`
	PaidDate          *Date             `json:"paid_date" db:"paid_date"`
	Status            InstallmentStatus `json:"status" db:"status"`
	Notes             *string           `json:"notes,omitempty" db:"notes"`
	Metadata          Metadata          `json:"metadata,omitempty" db:"metadata"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// RemainingAmount is what is still owed on the installment, never below zero
func (i *Installment) RemainingAmount() decimal.Decimal {
	remaining := i.OriginalAmount.Sub(i.DiscountAmount)
	if i.PaidAmount != nil {
		remaining = remaining.Sub(*i.PaidAmount)
	}
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// EffectiveAmount is the original amount net of discount
func (i *Installment) EffectiveAmount() decimal.Decimal {
	return i.OriginalAmount.Sub(i.DiscountAmount)
}

// IsOverdueOn reports whether a pending installment's due date is before today
func (i *Installment) IsOverdueOn(today time.Time) bool {
	return i.Status == InstallmentStatusPending && i.DueDate.Before(NewDate(today))
}

// IsOpen reports whether the installment still expects a payment
func (i *Installment) IsOpen() bool {
	return slices.Contains(OpenInstallmentStatuses, i.Status)
}

// DaysUntilDue counts the days from today until the due date
func (i *Installment) DaysUntilDue(today time.Time) int {
	return utils.DaysUntilDue(i.DueDate.Time(), today)
}

// PlanProgress is the payment state of a plan folded from its installments
type PlanProgress struct {
	TotalPaid             decimal.Decimal `json:"total_paid"`
	TotalDiscount         decimal.Decimal `json:"total_discount"`
	PaidInstallments      int             `json:"paid_installments"`
	RemainingInstallments int             `json:"remaining_installments"`
	RemainingAmount       decimal.Decimal `json:"remaining_amount"`
	CompletionPercentage  float64         `json:"completion_percentage"`
	NextDueDate           *Date           `json:"next_due_date"`
}

// Summarize folds an installment collection into the plan's progress.
// An empty collection or a zero installment count yields zeroed values.
func Summarize(totalInstallments int, installments []*Installment) PlanProgress {
	progress := PlanProgress{
		TotalPaid:       decimal.Zero,
		TotalDiscount:   decimal.Zero,
		RemainingAmount: decimal.Zero,
	}

	for _, installment := range installments {
		if installment.PaidAmount != nil {
			progress.TotalPaid = progress.TotalPaid.Add(*installment.PaidAmount)
		}

		switch {
		case installment.Status == InstallmentStatusPaid:
			progress.PaidInstallments++
			progress.TotalDiscount = progress.TotalDiscount.Add(installment.DiscountAmount)
		case installment.IsOpen():
			progress.RemainingAmount = progress.RemainingAmount.Add(installment.RemainingAmount())
		}

		if installment.Status == InstallmentStatusPending {
			if progress.NextDueDate == nil || installment.DueDate.Before(*progress.NextDueDate) {
				due := installment.DueDate
				progress.NextDueDate = &due
			}
		}
	}

	progress.RemainingInstallments = totalInstallments - progress.PaidInstallments
	if totalInstallments > 0 {
		progress.CompletionPercentage = 100 * float64(progress.PaidInstallments) / float64(totalInstallments)
	}

	return progress
}

// DTOs for requests and responses

type PayInstallmentRequest struct {
	PaidAmount     decimal.Decimal  `json:"paid_amount" validate:"required,gt=0,lt=10000000000,money"`
	PaidDate       *Date            `json:"paid_date"`
	DiscountAmount *decimal.Decimal `json:"discount_amount" validate:"omitempty,gte=0,lt=10000000000,money"`
	Notes          *string          `json:"notes" validate:"omitempty,max=500"`
	Metadata       Metadata         `json:"metadata" validate:"omitempty,scalar_map"`
}

type InstallmentResponse struct {
	*Installment
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	EffectiveAmount decimal.Decimal `json:"effective_amount"`
	IsOverdue       bool            `json:"is_overdue"`
	DaysUntilDue    int             `json:"days_until_due"`
	DueDateTier     format.Tier     `json:"due_date_tier"`
}

// NewInstallmentResponse adds the values derived for today to an installment
func NewInstallmentResponse(installment *Installment, today time.Time) *InstallmentResponse {
	days := installment.DaysUntilDue(today)

	return &InstallmentResponse{
		Installment:     installment,
		RemainingAmount: installment.RemainingAmount(),
		EffectiveAmount: installment.EffectiveAmount(),
		IsOverdue:       installment.IsOverdueOn(today),
		DaysUntilDue:    days,
		DueDateTier:     installmentTier(installment, days),
	}
}

// installmentTier settles paid and overdue installments by status and buckets
// the rest by distance to the due date.
func installmentTier(installment *Installment, daysUntilDue int) format.Tier {
	switch installment.Status {
	case InstallmentStatusPaid:
		return format.TierSuccess
	case InstallmentStatusOverdue:
		return format.TierDanger
	default:
		return format.DueDateTier(daysUntilDue)
	}
}

// InstallmentWithPlan is an installment joined with the plan it belongs to
type InstallmentWithPlan struct {
	Installment
	PlanName          string `json:"plan_name" db:"plan_name"`
	TotalInstallments int    `json:"total_installments" db:"total_installments"`
}

type UpcomingPayment struct {
	InstallmentID     uuid.UUID       `json:"installment_id"`
	PlanID            uuid.UUID       `json:"plan_id"`
	PlanName          string          `json:"plan_name"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           Date            `json:"due_date"`
	DaysUntilDue      int             `json:"days_until_due"`
	DueDateTier       format.Tier     `json:"due_date_tier"`
	FormattedAmount   string          `json:"formatted_amount"`
}

// NewUpcomingPayment builds the reminder view of a pending installment
func NewUpcomingPayment(item *InstallmentWithPlan, today time.Time) *UpcomingPayment {
	days := item.DaysUntilDue(today)

	return &UpcomingPayment{
		InstallmentID:     item.ID,
		PlanID:            item.InstallmentPlanID,
		PlanName:          item.PlanName,
		InstallmentNumber: item.InstallmentNumber,
		TotalInstallments: item.TotalInstallments,
		Amount:            item.RemainingAmount(),
		DueDate:           item.DueDate,
		DaysUntilDue:      days,
		DueDateTier:       format.DueDateTier(days),
		FormattedAmount:   format.Currency(item.RemainingAmount()),
	}
}

type PaidInstallment struct {
	InstallmentID     uuid.UUID       `json:"installment_id"`
	PlanID            uuid.UUID       `json:"plan_id"`
	PlanName          string          `json:"plan_name"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	PaidDate          *Date           `json:"paid_date"`
}

func NewPaidInstallment(item *InstallmentWithPlan) *PaidInstallment {
	paid := decimal.Zero
	if item.PaidAmount != nil {
		paid = *item.PaidAmount
	}

	return &PaidInstallment{
		InstallmentID:     item.ID,
		PlanID:            item.InstallmentPlanID,
		PlanName:          item.PlanName,
		InstallmentNumber: item.InstallmentNumber,
		TotalInstallments: item.TotalInstallments,
		PaidAmount:        paid,
		DiscountAmount:    item.DiscountAmount,
		PaidDate:          item.PaidDate,
	}
}
