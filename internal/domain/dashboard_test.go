package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPlan(planID uuid.UUID, name string, installment Installment) *InstallmentWithPlan {
	installment.InstallmentPlanID = planID
	return &InstallmentWithPlan{Installment: installment, PlanName: name}
}

func TestBuildExpenseBreakdown(t *testing.T) {
	from, to := MustParseDate("2024-05-01"), MustParseDate("2024-05-31")
	car, fridge := uuid.New(), uuid.New()

	dueInMonth := []*InstallmentWithPlan{
		withPlan(car, "Carro", Installment{OriginalAmount: dec("1920"), DiscountAmount: decimal.Zero, DueDate: MustParseDate("2024-05-15"), Status: InstallmentStatusPending}),
		// paid in April, already counted there
		withPlan(fridge, "Geladeira", Installment{OriginalAmount: dec("300"), PaidAmount: decPtr("300"), DiscountAmount: decimal.Zero, DueDate: MustParseDate("2024-05-20"), PaidDate: datePtr("2024-04-28"), Status: InstallmentStatusPaid}),
	}
	paidInMonth := []*InstallmentWithPlan{
		withPlan(car, "Carro", Installment{OriginalAmount: dec("1920"), PaidAmount: decPtr("1800"), DiscountAmount: dec("120"), DueDate: MustParseDate("2024-08-15"), PaidDate: datePtr("2024-05-03"), Status: InstallmentStatusPaid}),
		withPlan(fridge, "Geladeira", Installment{OriginalAmount: dec("300"), PaidAmount: decPtr("300"), DiscountAmount: decimal.Zero, DueDate: MustParseDate("2024-06-20"), PaidDate: datePtr("2024-05-10"), Status: InstallmentStatusPaid}),
	}

	breakdown := BuildExpenseBreakdown(dec("2500.50"), dueInMonth, paidInMonth, from, to)

	require.Len(t, breakdown, 4)

	assert.Equal(t, BreakdownTypeTransaction, breakdown[0].Type)
	assert.True(t, breakdown[0].Amount.Equal(dec("2500.50")))

	assert.Equal(t, BreakdownTypeFinancing, breakdown[1].Type)
	assert.Equal(t, "Carro (+ adiantamento)", breakdown[1].Name)
	assert.True(t, breakdown[1].Amount.Equal(dec("3720")))
	require.NotNil(t, breakdown[1].DiscountAmount)
	assert.True(t, breakdown[1].DiscountAmount.Equal(dec("120")))

	assert.Equal(t, "Geladeira (adiantamento)", breakdown[2].Name)
	assert.True(t, breakdown[2].Amount.Equal(dec("300")))
	assert.Nil(t, breakdown[2].DiscountAmount)

	assert.Equal(t, BreakdownTypeTotal, breakdown[3].Type)
	assert.True(t, breakdown[3].Amount.Equal(dec("6520.50")))
}

func TestBuildExpenseBreakdown_Empty(t *testing.T) {
	from, to := MustParseDate("2024-05-01"), MustParseDate("2024-05-31")

	breakdown := BuildExpenseBreakdown(decimal.Zero, nil, nil, from, to)

	assert.NotNil(t, breakdown)
	assert.Empty(t, breakdown)
}

func TestBuildExpenseBreakdown_SkipsCancelled(t *testing.T) {
	from, to := MustParseDate("2024-05-01"), MustParseDate("2024-05-31")
	plan := uuid.New()

	dueInMonth := []*InstallmentWithPlan{
		withPlan(plan, "TV", Installment{OriginalAmount: dec("500"), DiscountAmount: decimal.Zero, DueDate: MustParseDate("2024-05-05"), Status: InstallmentStatusCancelled}),
	}

	breakdown := BuildExpenseBreakdown(decimal.Zero, dueInMonth, nil, from, to)

	assert.Empty(t, breakdown)
}

func TestNewInstallmentsOverview(t *testing.T) {
	plan := carPlan()
	installments := plan.GenerateInstallments(at("2024-01-01"))
	installments[0].Status = InstallmentStatusPaid
	installments[0].PaidAmount = decPtr("1800")
	installments[0].DiscountAmount = dec("120")

	overview := NewInstallmentsOverview([]*InstallmentPlan{plan}, map[uuid.UUID][]*Installment{plan.ID: installments})

	assert.Equal(t, 1, overview.TotalPlans)
	assert.True(t, overview.TotalFinanced.Equal(dec("50000")))
	assert.True(t, overview.TotalPaid.Equal(dec("1800")))
	assert.True(t, overview.TotalSavings.Equal(dec("120")))
	assert.True(t, overview.TotalRemaining.Equal(dec("55680")), "remaining %s", overview.TotalRemaining)
	assert.NotNil(t, overview.UpcomingPayments)
	assert.NotNil(t, overview.PaidInMonth)
}
