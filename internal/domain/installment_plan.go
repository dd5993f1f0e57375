package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/pkg/amortization"
	"github.com/segyhp/finance-tracker/pkg/format"
	"github.com/segyhp/finance-tracker/pkg/utils"
	"github.com/shopspring/decimal"
)

// InstallmentPlan represents a fixed-installment financing or purchase
type InstallmentPlan struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	Name              string           `json:"name" db:"name"`
	FinancedAmount    decimal.Decimal  `json:"financed_amount" db:"financed_amount"`
	InstallmentValue  decimal.Decimal  `json:"installment_value" db:"installment_value"`
	TotalInstallments int              `json:"total_installments" db:"total_installments"`
	InterestRate      *decimal.Decimal `json:"interest_rate,omitempty" db:"interest_rate"`
	StartDate         Date             `json:"start_date" db:"start_date"`
	Description       *string          `json:"description,omitempty" db:"description"`
	IsActive          bool             `json:"is_active" db:"is_active"`
	Metadata          Metadata         `json:"metadata,omitempty" db:"metadata"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

func (p *InstallmentPlan) Breakdown() amortization.Breakdown {
	return amortization.Calculate(p.FinancedAmount, p.InstallmentValue, p.TotalInstallments)
}

func (p *InstallmentPlan) TotalAmount() decimal.Decimal {
	return amortization.TotalAmount(p.InstallmentValue, p.TotalInstallments)
}

func (p *InstallmentPlan) TotalInterest() decimal.Decimal {
	return amortization.TotalInterest(p.TotalAmount(), p.FinancedAmount)
}

// EndDate is the start date moved forward by the number of installments
func (p *InstallmentPlan) EndDate() Date {
	return p.StartDate.AddMonths(p.TotalInstallments)
}

// GenerateInstallments builds the pending schedule of a new plan: one row per
// installment, numbered from 1, each due a month after the previous one.
func (p *InstallmentPlan) GenerateInstallments(now time.Time) []*Installment {
	installments := make([]*Installment, 0, p.TotalInstallments)

	for number := 1; number <= p.TotalInstallments; number++ {
		installments = append(installments, &Installment{
			ID:                uuid.New(),
			InstallmentPlanID: p.ID,
			InstallmentNumber: number,
			OriginalAmount:    p.InstallmentValue,
			DiscountAmount:    decimal.Zero,
			DueDate:           p.StartDate.AddMonths(number - 1),
			Status:            InstallmentStatusPending,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	return installments
}

// Overlaps reports whether the plan's term touches the given calendar range.
// The WHERE clause of ListActiveOverlapping applies the same rule in SQL.
func (p *InstallmentPlan) Overlaps(from, to Date) bool {
	return !to.Before(p.StartDate) && !p.EndDate().Before(from)
}

// DTOs for requests and responses

type CreateInstallmentPlanRequest struct {
	Name              string           `json:"name" validate:"required,max=255"`
	FinancedAmount    decimal.Decimal  `json:"financed_amount" validate:"required,gt=0,lt=10000000000,money"`
	InstallmentValue  decimal.Decimal  `json:"installment_value" validate:"required,gt=0,lt=10000000000,money"`
	TotalInstallments int              `json:"total_installments" validate:"required,gt=0,lte=600"`
	InterestRate      *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lt=1000,money"`
	StartDate         Date             `json:"start_date" validate:"required"`
	Description       *string          `json:"description" validate:"omitempty,max=1000"`
	Metadata          Metadata         `json:"metadata" validate:"omitempty,scalar_map"`
}

type UpdateInstallmentPlanRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	IsActive    *bool    `json:"is_active"`
	Metadata    Metadata `json:"metadata" validate:"omitempty,scalar_map"`
}

// Apply copies the fields present in the request onto the plan
func (r *UpdateInstallmentPlanRequest) Apply(plan *InstallmentPlan) {
	if r.Name != nil {
		plan.Name = *r.Name
	}
	if r.Description != nil {
		plan.Description = r.Description
	}
	if r.IsActive != nil {
		plan.IsActive = *r.IsActive
	}
	if r.Metadata != nil {
		plan.Metadata = r.Metadata
	}
}

// PreviewRequest carries a possibly incomplete plan form
type PreviewRequest struct {
	FinancedAmount    decimal.Decimal `json:"financed_amount"`
	InstallmentValue  decimal.Decimal `json:"installment_value"`
	TotalInstallments int             `json:"total_installments"`
}

type PreviewResponse struct {
	amortization.Breakdown
	SuggestedInstallmentValue decimal.Decimal `json:"suggested_installment_value"`
	FormattedTotalAmount      string          `json:"formatted_total_amount"`
	FormattedTotalInterest    string          `json:"formatted_total_interest"`
}

type InstallmentPlanResponse struct {
	*InstallmentPlan
	amortization.Breakdown
	PlanProgress
	EndDate      Date                   `json:"end_date"`
	ProgressTier format.Tier            `json:"progress_tier"`
	Installments []*InstallmentResponse `json:"installments"`
}

// NewInstallmentPlanResponse builds the detail view of a plan as of today
func NewInstallmentPlanResponse(plan *InstallmentPlan, installments []*Installment, today time.Time) *InstallmentPlanResponse {
	progress := Summarize(plan.TotalInstallments, installments)

	items := make([]*InstallmentResponse, 0, len(installments))
	for _, installment := range installments {
		items = append(items, NewInstallmentResponse(installment, today))
	}

	return &InstallmentPlanResponse{
		InstallmentPlan: plan,
		Breakdown:       plan.Breakdown(),
		PlanProgress:    progress,
		EndDate:         plan.EndDate(),
		ProgressTier:    format.ProgressTier(progress.CompletionPercentage),
		Installments:    items,
	}
}

type InstallmentPlanSummary struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	FinancedAmount        decimal.Decimal `json:"financed_amount"`
	InstallmentValue      decimal.Decimal `json:"installment_value"`
	TotalInstallments     int             `json:"total_installments"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	TotalInterest         decimal.Decimal `json:"total_interest"`
	StartDate             Date            `json:"start_date"`
	EndDate               Date            `json:"end_date"`
	IsActive              bool            `json:"is_active"`
	PaidInstallments      int             `json:"paid_installments"`
	RemainingInstallments int             `json:"remaining_installments"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	RemainingAmount       decimal.Decimal `json:"remaining_amount"`
	CompletionPercentage  float64         `json:"completion_percentage"`
	NextDueDate           *Date           `json:"next_due_date"`
	DaysUntilNextDue      *int            `json:"days_until_next_due"`
	ProgressTier          format.Tier     `json:"progress_tier"`
	DueDateTier           format.Tier     `json:"due_date_tier,omitempty"`
	Display               PlanDisplay     `json:"display"`
	CreatedAt             time.Time       `json:"created_at"`
}

// PlanDisplay holds the pt-BR rendering of a summary's amounts and dates
type PlanDisplay struct {
	TotalAmount     string `json:"total_amount"`
	TotalPaid       string `json:"total_paid"`
	RemainingAmount string `json:"remaining_amount"`
	StartDate       string `json:"start_date"`
	NextDueDate     string `json:"next_due_date,omitempty"`
}

// NewInstallmentPlanSummary builds the list view of a plan as of today
func NewInstallmentPlanSummary(plan *InstallmentPlan, installments []*Installment, today time.Time) *InstallmentPlanSummary {
	progress := Summarize(plan.TotalInstallments, installments)
	total := plan.TotalAmount()

	summary := &InstallmentPlanSummary{
		ID:                    plan.ID,
		Name:                  plan.Name,
		FinancedAmount:        plan.FinancedAmount,
		InstallmentValue:      plan.InstallmentValue,
		TotalInstallments:     plan.TotalInstallments,
		TotalAmount:           total,
		TotalInterest:         plan.TotalInterest(),
		StartDate:             plan.StartDate,
		EndDate:               plan.EndDate(),
		IsActive:              plan.IsActive,
		PaidInstallments:      progress.PaidInstallments,
		RemainingInstallments: progress.RemainingInstallments,
		TotalPaid:             progress.TotalPaid,
		RemainingAmount:       progress.RemainingAmount,
		CompletionPercentage:  progress.CompletionPercentage,
		NextDueDate:           progress.NextDueDate,
		ProgressTier:          format.ProgressTier(progress.CompletionPercentage),
		CreatedAt:             plan.CreatedAt,
		Display: PlanDisplay{
			TotalAmount:     format.Currency(total),
			TotalPaid:       format.Currency(progress.TotalPaid),
			RemainingAmount: format.Currency(progress.RemainingAmount),
			StartDate:       format.Date(plan.StartDate.Time()),
		},
	}

	if progress.NextDueDate != nil {
		days := utils.DaysUntilDue(progress.NextDueDate.Time(), today)
		summary.DaysUntilNextDue = &days
		summary.DueDateTier = format.DueDateTier(days)
		summary.Display.NextDueDate = format.Date(progress.NextDueDate.Time())
	}

	return summary
}
