package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/cache"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/segyhp/finance-tracker/pkg/amortization"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/format"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type InstallmentService struct {
	PlanRepo        repository.InstallmentPlanRepository
	InstallmentRepo repository.InstallmentRepository
	cache           cache.PlanCache
	now             func() time.Time
}

func NewInstallmentService(
	planRepo repository.InstallmentPlanRepository,
	installmentRepo repository.InstallmentRepository,
	planCache cache.PlanCache,
) *InstallmentService {
	if planCache == nil {
		planCache = cache.NoopPlanCache{}
	}

	return &InstallmentService{
		PlanRepo:        planRepo,
		InstallmentRepo: installmentRepo,
		cache:           planCache,
		now:             time.Now,
	}
}

// Preview computes the cost breakdown of a plan that is still being filled in
func (s *InstallmentService) Preview(request domain.PreviewRequest) *domain.PreviewResponse {
	breakdown := amortization.Calculate(request.FinancedAmount, request.InstallmentValue, request.TotalInstallments)

	return &domain.PreviewResponse{
		Breakdown:                 breakdown,
		SuggestedInstallmentValue: amortization.InstallmentValue(request.FinancedAmount, request.TotalInstallments),
		FormattedTotalAmount:      format.Currency(breakdown.TotalAmount),
		FormattedTotalInterest:    format.Currency(breakdown.TotalInterest),
	}
}

// CreatePlan stores a plan and its full installment schedule
func (s *InstallmentService) CreatePlan(ctx context.Context, request *domain.CreateInstallmentPlanRequest) (*domain.InstallmentPlanResponse, error) {
	now := s.now()

	plan := &domain.InstallmentPlan{
		ID:                uuid.New(),
		Name:              request.Name,
		FinancedAmount:    request.FinancedAmount,
		InstallmentValue:  request.InstallmentValue,
		TotalInstallments: request.TotalInstallments,
		InterestRate:      request.InterestRate,
		StartDate:         request.StartDate,
		Description:       request.Description,
		IsActive:          true,
		Metadata:          request.Metadata,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	installments := plan.GenerateInstallments(now)

	if err := s.PlanRepo.Create(ctx, plan, installments); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	log.Info().
		Str("plan_id", plan.ID.String()).
		Int("installments", plan.TotalInstallments).
		Msg("Installment plan created")

	return domain.NewInstallmentPlanResponse(plan, installments, now), nil
}

// ListPlans returns a summary of every plan, newest first
func (s *InstallmentService) ListPlans(ctx context.Context) ([]*domain.InstallmentPlanSummary, error) {
	plans, err := s.PlanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	ids := make([]uuid.UUID, 0, len(plans))
	for _, plan := range plans {
		ids = append(ids, plan.ID)
	}

	installmentsByPlan, err := s.InstallmentRepo.ListByPlanIDs(ctx, ids)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	today := s.now()
	summaries := make([]*domain.InstallmentPlanSummary, 0, len(plans))
	for _, plan := range plans {
		summaries = append(summaries, domain.NewInstallmentPlanSummary(plan, installmentsByPlan[plan.ID], today))
	}

	return summaries, nil
}

// GetPlan returns a plan with every installment and the values derived for today
func (s *InstallmentService) GetPlan(ctx context.Context, planID uuid.UUID) (*domain.InstallmentPlanResponse, error) {
	snapshot, err := s.loadPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	return domain.NewInstallmentPlanResponse(snapshot.Plan, snapshot.Installments, s.now()), nil
}

// UpdatePlan changes the descriptive fields and the active flag of a plan
func (s *InstallmentService) UpdatePlan(ctx context.Context, planID uuid.UUID, request *domain.UpdateInstallmentPlanRequest) (*domain.InstallmentPlanResponse, error) {
	plan, err := s.PlanRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, planLookupError(planID, err)
	}

	request.Apply(plan)
	plan.UpdatedAt = s.now()

	if err := s.PlanRepo.Update(ctx, plan); err != nil {
		return nil, planLookupError(planID, err)
	}
	s.invalidate(ctx, planID)

	installments, err := s.InstallmentRepo.ListByPlanID(ctx, planID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return domain.NewInstallmentPlanResponse(plan, installments, s.now()), nil
}

// DeletePlan removes a plan that has no paid installment
func (s *InstallmentService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	if _, err := s.PlanRepo.GetByID(ctx, planID); err != nil {
		return planLookupError(planID, err)
	}

	paid, err := s.InstallmentRepo.CountPaidByPlanID(ctx, planID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if paid > 0 {
		return customError.WrapPlanHasPaidInstallments(planID.String())
	}

	if err := s.PlanRepo.Delete(ctx, planID); err != nil {
		return planLookupError(planID, err)
	}
	s.invalidate(ctx, planID)

	log.Info().Str("plan_id", planID.String()).Msg("Installment plan deleted")

	return nil
}

// PayInstallment records the payment of one pending or overdue installment.
// The plan is deactivated when no open installment is left.
func (s *InstallmentService) PayInstallment(ctx context.Context, installmentID uuid.UUID, request *domain.PayInstallmentRequest) (*domain.InstallmentResponse, error) {
	installment, err := s.InstallmentRepo.GetByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInstallmentNotFound(installmentID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if err := checkPayable(installment); err != nil {
		return nil, err
	}

	now := s.now()

	paidDate := domain.NewDate(now)
	if request.PaidDate != nil && !request.PaidDate.IsZero() {
		paidDate = *request.PaidDate
	}

	discount := decimal.Zero
	if request.DiscountAmount != nil {
		discount = *request.DiscountAmount
	}

	deactivated, err := s.InstallmentRepo.Pay(ctx, repository.PaymentUpdate{
		InstallmentID:  installment.ID,
		PlanID:         installment.InstallmentPlanID,
		PaidAmount:     request.PaidAmount,
		DiscountAmount: discount,
		PaidDate:       paidDate,
		Notes:          request.Notes,
		Metadata:       request.Metadata,
		UpdatedAt:      now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInstallmentNotOpen) {
			// lost a race with another payment
			return nil, customError.WrapInstallmentAlreadyPaid(installment.InstallmentNumber)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	s.invalidate(ctx, installment.InstallmentPlanID)

	installment.PaidAmount = &request.PaidAmount
	installment.DiscountAmount = discount
	installment.PaidDate = &paidDate
	installment.Status = domain.InstallmentStatusPaid
	installment.UpdatedAt = now
	if request.Notes != nil {
		installment.Notes = request.Notes
	}
	if request.Metadata != nil {
		installment.Metadata = request.Metadata
	}

	logEvent := log.Info().
		Str("installment_id", installment.ID.String()).
		Str("plan_id", installment.InstallmentPlanID.String()).
		Int("installment_number", installment.InstallmentNumber).
		Str("paid_amount", request.PaidAmount.String())
	if deactivated {
		logEvent = logEvent.Bool("plan_completed", true)
	}
	logEvent.Msg("Installment paid")

	return domain.NewInstallmentResponse(installment, now), nil
}

func checkPayable(installment *domain.Installment) error {
	switch installment.Status {
	case domain.InstallmentStatusPaid:
		return customError.WrapInstallmentAlreadyPaid(installment.InstallmentNumber)
	case domain.InstallmentStatusCancelled:
		return customError.WrapInstallmentCancelled(installment.InstallmentNumber)
	}
	return nil
}

// MarkOverdue moves every pending installment due before today to overdue
func (s *InstallmentService) MarkOverdue(ctx context.Context) (int64, error) {
	now := s.now()

	updated, err := s.InstallmentRepo.MarkOverdue(ctx, domain.NewDate(now), now)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	// snapshots would keep showing the old status until they expire
	if updated > 0 {
		s.invalidateAll(ctx)
	}

	return updated, nil
}

// Upcoming lists pending installments due from today up to days ahead
func (s *InstallmentService) Upcoming(ctx context.Context, days int) ([]*domain.UpcomingPayment, error) {
	now := s.now()
	today := domain.NewDate(now)

	items, err := s.InstallmentRepo.ListPendingDueBetween(ctx, today, today.AddDays(days))
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	upcoming := make([]*domain.UpcomingPayment, 0, len(items))
	for _, item := range items {
		upcoming = append(upcoming, domain.NewUpcomingPayment(item, now))
	}

	return upcoming, nil
}

func (s *InstallmentService) loadPlan(ctx context.Context, planID uuid.UUID) (*cache.PlanSnapshot, error) {
	snapshot, err := s.cache.Get(ctx, planID)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(customError.WrapCacheError(err)).Str("plan_id", planID.String()).Msg("Plan cache read failed")
	}

	// Read before the database so a concurrent invalidation makes Set a no-op
	generation, genErr := s.cache.Generation(ctx, planID)
	if genErr != nil {
		log.Warn().Err(customError.WrapCacheError(genErr)).Str("plan_id", planID.String()).Msg("Plan cache generation read failed")
	}

	plan, err := s.PlanRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, planLookupError(planID, err)
	}

	installments, err := s.InstallmentRepo.ListByPlanID(ctx, planID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	snapshot = &cache.PlanSnapshot{Plan: plan, Installments: installments}
	if genErr != nil {
		return snapshot, nil
	}

	err = s.cache.Set(ctx, snapshot, generation)
	switch {
	case errors.Is(err, cache.ErrStale):
		log.Debug().Str("plan_id", planID.String()).Msg("Plan changed while loading, snapshot not cached")
	case err != nil:
		log.Warn().Err(customError.WrapCacheError(err)).Str("plan_id", planID.String()).Msg("Plan cache write failed")
	}

	return snapshot, nil
}

func (s *InstallmentService) invalidate(ctx context.Context, planID uuid.UUID) {
	if err := s.cache.Delete(ctx, planID); err != nil {
		log.Warn().Err(customError.WrapCacheError(err)).Str("plan_id", planID.String()).Msg("Plan cache invalidation failed")
	}
}

func (s *InstallmentService) invalidateAll(ctx context.Context) {
	plans, err := s.PlanRepo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Could not list plans for cache invalidation")
		return
	}
	for _, plan := range plans {
		s.invalidate(ctx, plan.ID)
	}
}

func planLookupError(planID uuid.UUID, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapPlanNotFound(planID.String())
	}
	return customError.WrapDatabaseError(err)
}
