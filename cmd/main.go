package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/amco/vacancies/internal/config"
	"github.com/amco/vacancies/internal/logger"
	"github.com/amco/vacancies/internal/notifier"
	"github.com/amco/vacancies/internal/repositories"
	"github.com/amco/vacancies/internal/server"
	"github.com/amco/vacancies/internal/services"
	"github.com/amco/vacancies/internal/session"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

func runNotifier(ctx context.Context, cfg config.NotifierConfig, bus EventBus.Bus) {
	if !cfg.Enabled() {
		log.Info("telegram notifier disabled")
		return
	}

	n, err := notifier.NewTelegramNotifier(ctx, cfg.TelegramToken, cfg.ChatID)
	if err != nil {
		log.Errorf("can't create notifier, continuing without it: %v", err)
		return
	}
	n.SetRateLimit(cfg.MaxMessagesPerSecond)

	if err = n.Subscribe(bus); err != nil {
		log.Fatalf("can't subscribe notifier: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	dbContext, err := repositories.NewDbContext(cfg.DB)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	uploads, err := services.NewUploads(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("can't prepare uploads: %v", err)
	}

	bus := EventBus.New()

	if _, err = services.NewAuditLogger(repositories.NewActionHistoryRepository(dbContext.DB), bus); err != nil {
		log.Fatalf("can't create audit logger: %v", err)
	}

	jobs, err := services.NewJobs(repositories.NewJobsRepository(dbContext.DB), bus)
	if err != nil {
		log.Fatalf("can't create jobs service: %v", err)
	}

	applications, err := services.NewApplications(repositories.NewAppliedJobsRepository(dbContext.DB), jobs, uploads, bus)
	if err != nil {
		log.Fatalf("can't create applications service: %v", err)
	}

	runNotifier(ctx, cfg.Notifier, bus)

	srv, err := server.New(cfg, server.Dependencies{
		Jobs:         jobs,
		Applications: applications,
		Files:        uploads,
		Sessions:     session.NewStore(cfg.Admin.SessionTTL),
	})
	if err != nil {
		log.Fatalf("can't create server: %v", err)
	}

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	bus.WaitAsync()
	log.Info("Services stopped.")
}
