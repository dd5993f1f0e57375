package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MonthlyStats struct {
	CompetencyPeriod string          `json:"competency_period" db:"competency_period"`
	TotalIncome      decimal.Decimal `json:"total_income" db:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses" db:"total_expenses"`
	Balance          decimal.Decimal `json:"balance" db:"-"`
	TransactionCount int             `json:"transaction_count" db:"transaction_count"`
}

// CategoryTotal is the sum of one category's expenses in a period.
// Uncategorized expenses come back with a nil ID.
type CategoryTotal struct {
	ID    *uuid.UUID      `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Color string          `json:"color" db:"color"`
	Icon  string          `json:"icon" db:"icon"`
	Total decimal.Decimal `json:"total" db:"total"`
	Count int             `json:"count" db:"count"`
}

type InstallmentsOverview struct {
	TotalPlans       int                `json:"total_plans"`
	TotalFinanced    decimal.Decimal    `json:"total_financed"`
	TotalPaid        decimal.Decimal    `json:"total_paid"`
	TotalRemaining   decimal.Decimal    `json:"total_remaining"`
	TotalSavings     decimal.Decimal    `json:"total_savings"`
	UpcomingPayments []*UpcomingPayment `json:"upcoming_payments"`
	PaidInMonth      []*PaidInstallment `json:"paid_in_month"`
}

// NewInstallmentsOverview totals the progress of the given plans.
// installmentsByPlan holds each plan's full installment list.
func NewInstallmentsOverview(plans []*InstallmentPlan, installmentsByPlan map[uuid.UUID][]*Installment) *InstallmentsOverview {
	overview := &InstallmentsOverview{
		TotalFinanced:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalRemaining:   decimal.Zero,
		TotalSavings:     decimal.Zero,
		UpcomingPayments: []*UpcomingPayment{},
		PaidInMonth:      []*PaidInstallment{},
	}

	for _, plan := range plans {
		progress := Summarize(plan.TotalInstallments, installmentsByPlan[plan.ID])

		overview.TotalPlans++
		overview.TotalFinanced = overview.TotalFinanced.Add(plan.FinancedAmount)
		overview.TotalPaid = overview.TotalPaid.Add(progress.TotalPaid)
		overview.TotalRemaining = overview.TotalRemaining.Add(progress.RemainingAmount)
		overview.TotalSavings = overview.TotalSavings.Add(progress.TotalDiscount)
	}

	return overview
}

type BreakdownType string

const (
	BreakdownTypeTransaction BreakdownType = "transaction"
	BreakdownTypeFinancing   BreakdownType = "financing"
	BreakdownTypeTotal       BreakdownType = "total"
)

type ExpenseBreakdownItem struct {
	Type           BreakdownType    `json:"type"`
	Name           string           `json:"name"`
	Amount         decimal.Decimal  `json:"amount"`
	Color          string           `json:"color,omitempty"`
	Icon           string           `json:"icon,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discount_amount,omitempty"`
}

type planSpending struct {
	name         string
	due          decimal.Decimal
	earlyPayment decimal.Decimal
	discount     decimal.Decimal
}

// BuildExpenseBreakdown lists what left the pocket in a month: regular
// expenses, then one row per financing plan, then a grand total. Rows with a
// zero amount are skipped, and an empty breakdown has no total row.
//
// A plan's row adds the installments due in the month (unpaid ones at their
// original amount, ones paid within the month at the paid amount) to the
// installments paid in the month but due in another one.
func BuildExpenseBreakdown(regularExpenses decimal.Decimal, dueInMonth, paidInMonth []*InstallmentWithPlan, from, to Date) []*ExpenseBreakdownItem {
	breakdown := []*ExpenseBreakdownItem{}
	grandTotal := decimal.Zero

	if regularExpenses.IsPositive() {
		breakdown = append(breakdown, &ExpenseBreakdownItem{
			Type:   BreakdownTypeTransaction,
			Name:   "Transações",
			Amount: regularExpenses,
			Color:  "#607D8B",
			Icon:   "receipt_long",
		})
		grandTotal = grandTotal.Add(regularExpenses)
	}

	inMonth := func(d *Date) bool {
		return d != nil && !d.Before(from) && !to.Before(*d)
	}

	var order []uuid.UUID
	plans := map[uuid.UUID]*planSpending{}
	spendingFor := func(item *InstallmentWithPlan) *planSpending {
		s, ok := plans[item.InstallmentPlanID]
		if !ok {
			s = &planSpending{name: item.PlanName, due: decimal.Zero, earlyPayment: decimal.Zero, discount: decimal.Zero}
			plans[item.InstallmentPlanID] = s
			order = append(order, item.InstallmentPlanID)
		}
		return s
	}

	for _, item := range dueInMonth {
		switch item.Status {
		case InstallmentStatusCancelled:
			continue
		case InstallmentStatusPaid:
			if !inMonth(item.PaidDate) {
				continue
			}
			s := spendingFor(item)
			s.due = s.due.Add(paidOrOriginal(&item.Installment))
			s.discount = s.discount.Add(item.DiscountAmount)
		default:
			s := spendingFor(item)
			s.due = s.due.Add(item.OriginalAmount)
		}
	}

	for _, item := range paidInMonth {
		if item.Status != InstallmentStatusPaid || inMonth(&item.DueDate) {
			continue
		}
		s := spendingFor(item)
		s.earlyPayment = s.earlyPayment.Add(paidOrOriginal(&item.Installment))
		s.discount = s.discount.Add(item.DiscountAmount)
	}

	for _, planID := range order {
		s := plans[planID]
		amount := s.due.Add(s.earlyPayment)
		if !amount.IsPositive() {
			continue
		}

		name := s.name
		switch {
		case s.earlyPayment.IsPositive() && s.due.IsPositive():
			name += " (+ adiantamento)"
		case s.earlyPayment.IsPositive():
			name += " (adiantamento)"
		}

		row := &ExpenseBreakdownItem{
			Type:   BreakdownTypeFinancing,
			Name:   name,
			Amount: amount,
			Color:  "#FF9800",
			Icon:   "account_balance",
		}
		if s.discount.IsPositive() {
			discount := s.discount
			row.DiscountAmount = &discount
		}

		breakdown = append(breakdown, row)
		grandTotal = grandTotal.Add(amount)
	}

	if len(breakdown) > 0 {
		breakdown = append(breakdown, &ExpenseBreakdownItem{
			Type:   BreakdownTypeTotal,
			Name:   "Total Geral",
			Amount: grandTotal,
			Color:  "#2196F3",
			Icon:   "functions",
		})
	}

	return breakdown
}

func paidOrOriginal(installment *Installment) decimal.Decimal {
	if installment.PaidAmount != nil && !installment.PaidAmount.IsZero() {
		return *installment.PaidAmount
	}
	return installment.OriginalAmount
}

type MonthlyDashboard struct {
	Year             int                     `json:"year"`
	Month            int                     `json:"month"`
	Stats            *MonthlyStats           `json:"stats"`
	TopCategories    []*CategoryTotal        `json:"top_categories"`
	Installments     *InstallmentsOverview   `json:"installments"`
	ExpenseBreakdown []*ExpenseBreakdownItem `json:"expense_breakdown"`
}
