package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/segyhp/finance-tracker/internal/cache"
	"github.com/segyhp/finance-tracker/internal/config"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/segyhp/finance-tracker/internal/service"
	"github.com/segyhp/finance-tracker/internal/storage"
	"github.com/segyhp/finance-tracker/pkg/format"
	"github.com/segyhp/finance-tracker/pkg/logger"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, "finance-tracker-scheduler")
	time.Local = cfg.Location()
	log.Info().Msg("Starting installment scheduler...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := storage.Connect(ctx, cfg.DSN(), storage.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.GetConnMaxLifetime(),
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	installmentService := service.NewInstallmentService(
		repository.NewInstallmentPlanRepository(db),
		repository.NewInstallmentRepository(db),
		cache.NewRedisPlanCache(redisClient, cfg.GetCacheTTL()),
	)

	// Initialize cron scheduler
	c := cron.New(
		cron.WithLocation(cfg.SchedulerLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if err := setupCronJobs(c, cfg, installmentService); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule jobs")
	}

	// Start the scheduler
	c.Start()
	log.Info().Str("timezone", cfg.Scheduler.Timezone).Msg("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, svc *service.InstallmentService) error {
	// Daily job to flag installments whose due date has passed
	if _, err := c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		markOverdueInstallments(svc)
	}); err != nil {
		return err
	}

	// Daily job to log the installments due soon
	if _, err := c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		sendPaymentReminders(svc, cfg.Scheduler.ReminderDays)
	}); err != nil {
		return err
	}

	log.Info().
		Str("overdue_spec", cfg.Scheduler.OverdueSpec).
		Str("reminder_spec", cfg.Scheduler.ReminderSpec).
		Msg("Cron jobs scheduled successfully")
	return nil
}

func markOverdueInstallments(svc *service.InstallmentService) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	updated, err := svc.MarkOverdue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Overdue update job failed")
		return
	}

	log.Info().Int64("updated", updated).Msg("Overdue update job finished")
}

func sendPaymentReminders(svc *service.InstallmentService, days int) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	payments, err := svc.Upcoming(ctx, days)
	if err != nil {
		log.Error().Err(err).Msg("Payment reminder job failed")
		return
	}

	for _, payment := range payments {
		log.Info().
			Str("plan", payment.PlanName).
			Int("installment", payment.InstallmentNumber).
			Int("of", payment.TotalInstallments).
			Str("amount", payment.FormattedAmount).
			Str("due_date", format.Date(payment.DueDate.Time())).
			Int("days_until_due", payment.DaysUntilDue).
			Msg("Installment due soon")
	}

	log.Info().Int("count", len(payments)).Int("days", days).Msg("Payment reminder job finished")
}
