package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticket-service/internal/config"
	"github.com/helpdesk-demo/ticket-service/internal/directory"
	"github.com/helpdesk-demo/ticket-service/internal/handler"
	"github.com/helpdesk-demo/ticket-service/internal/kafka"
	"github.com/helpdesk-demo/ticket-service/internal/router"
	"github.com/helpdesk-demo/ticket-service/internal/service"
	"github.com/helpdesk-demo/ticket-service/internal/session"
	"github.com/helpdesk-demo/ticket-service/internal/store"
	"github.com/helpdesk-demo/ticket-service/pkg/logger"
)

// API is the serving process: it owns the store, the directory and the
// producer, and injects them into the handlers. Nothing reaches state except
// through these instances.
type API struct {
	cfg      *config.Config
	log      *zap.Logger
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI wires the whole service from config.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.AppEnv)

	st := store.New()
	dir := directory.New()
	sessions := session.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicTicket, log)

	ticketSvc := service.NewTicketService(st, dir, producer)
	ticketHandler := handler.NewTicketHandler(ticketSvc, sessions)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(ticketHandler, sessions, dir, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:      cfg,
		log:      log,
		httpSrv:  httpSrv,
		producer: producer,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	a.log.Info("HTTP server listening", zap.String("addr", a.httpSrv.Addr))
	a.log.Info("endpoints",
		zap.String("swagger", base+"/swagger"),
		zap.String("health", base+"/health"),
		zap.String("api", base+"/api/"),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		a.log.Warn("kafka close", zap.Error(err))
	}
	_ = a.log.Sync()
	return nil
}
