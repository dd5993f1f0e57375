package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const topCategoriesLimit = 5

type DashboardService struct {
	TransactionRepo repository.TransactionRepository
	PlanRepo        repository.InstallmentPlanRepository
	InstallmentRepo repository.InstallmentRepository
	now             func() time.Time
}

func NewDashboardService(
	transactionRepo repository.TransactionRepository,
	planRepo repository.InstallmentPlanRepository,
	installmentRepo repository.InstallmentRepository,
) *DashboardService {
	return &DashboardService{
		TransactionRepo: transactionRepo,
		PlanRepo:        planRepo,
		InstallmentRepo: installmentRepo,
		now:             time.Now,
	}
}

// Monthly gathers the figures of one month: booked income and expenses, the
// heaviest expense categories, financing progress and the expense breakdown
func (s *DashboardService) Monthly(ctx context.Context, year int, month time.Month) (*domain.MonthlyDashboard, error) {
	if month < time.January || month > time.December || year < 1900 || year > 9999 {
		return nil, customError.WrapValidationError(fmt.Errorf("year %d and month %d do not name a month", year, month))
	}

	firstDay, lastDay := utils.MonthBounds(year, month)
	from, to := domain.NewDate(firstDay), domain.NewDate(lastDay)
	period := from.Period()
	now := s.now()

	var (
		stats        *domain.MonthlyStats
		top          []*domain.CategoryTotal
		overview     *domain.InstallmentsOverview
		dueInMonth   []*domain.InstallmentWithPlan
		paidInMonth  []*domain.InstallmentWithPlan
		upcomingRows []*domain.InstallmentWithPlan
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats, err = s.TransactionRepo.MonthlyStats(gctx, period)
		return err
	})

	g.Go(func() error {
		var err error
		top, err = s.TransactionRepo.TopExpenseCategories(gctx, period, topCategoriesLimit)
		return err
	})

	g.Go(func() error {
		plans, err := s.PlanRepo.ListActiveOverlapping(gctx, from, to)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(plans))
		for _, plan := range plans {
			ids = append(ids, plan.ID)
		}

		installmentsByPlan, err := s.InstallmentRepo.ListByPlanIDs(gctx, ids)
		if err != nil {
			return err
		}

		overview = domain.NewInstallmentsOverview(plans, installmentsByPlan)
		return nil
	})

	g.Go(func() error {
		var err error
		dueInMonth, err = s.InstallmentRepo.ListDueBetween(gctx, from, to)
		return err
	})

	g.Go(func() error {
		var err error
		paidInMonth, err = s.InstallmentRepo.ListPaidBetween(gctx, from, to)
		return err
	})

	g.Go(func() error {
		start := domain.NewDate(now)
		if start.Before(from) {
			start = from
		}
		if to.Before(start) {
			return nil
		}

		var err error
		upcomingRows, err = s.InstallmentRepo.ListPendingDueBetween(gctx, start, to)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	for _, item := range upcomingRows {
		overview.UpcomingPayments = append(overview.UpcomingPayments, domain.NewUpcomingPayment(item, now))
	}
	for _, item := range paidInMonth {
		overview.PaidInMonth = append(overview.PaidInMonth, domain.NewPaidInstallment(item))
	}

	if top == nil {
		top = []*domain.CategoryTotal{}
	}

	return &domain.MonthlyDashboard{
		Year:             year,
		Month:            int(month),
		Stats:            stats,
		TopCategories:    top,
		Installments:     overview,
		ExpenseBreakdown: domain.BuildExpenseBreakdown(stats.TotalExpenses, dueInMonth, paidInMonth, from, to),
	}, nil
}
