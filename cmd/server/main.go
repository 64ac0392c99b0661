package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcadehq/arcade/internal/bootstrap"
	"github.com/arcadehq/arcade/internal/config"
	mq "github.com/arcadehq/arcade/internal/infra/queue"
	"github.com/arcadehq/arcade/internal/modules/handler"
	"github.com/arcadehq/arcade/internal/modules/service"
	"github.com/arcadehq/arcade/internal/pkg/validate"
	"github.com/arcadehq/arcade/internal/router"
	"github.com/arcadehq/arcade/internal/telemetry"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
		if _, err := telemetry.SetupTracing(cfg); err != nil {
			log.Fatal("failed to set up tracing", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = telemetry.Shutdown(ctx)
		}()
	}

	if err := validate.RegisterCustom(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:           cfg,
		Log:              log,
		AuthService:      do.MustInvoke[service.AuthService](inj),
		AuthHandler:      do.MustInvoke[*handler.AuthHandler](inj),
		GameHandler:      do.MustInvoke[*handler.GameHandler](inj),
		CategoryHandler:  do.MustInvoke[*handler.CategoryHandler](inj),
		ChallengeHandler: do.MustInvoke[*handler.ChallengeHandler](inj),
		PostHandler:      do.MustInvoke[*handler.PostHandler](inj),
		AnalyticsHandler: do.MustInvoke[*handler.AnalyticsHandler](inj),
		ThumbnailHandler: do.MustInvoke[*handler.ThumbnailHandler](inj),
		PlayHandler:      do.MustInvoke[*handler.PlayHandler](inj),
	})

	srv := &http.Server{
		Addr:        cfg.HTTP.Addr,
		Handler:     engine,
		ReadTimeout: time.Duration(cfg.HTTP.ReadTimeoutMin) * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return consumePlayEvents(gctx, inj, cfg, log)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

// consumePlayEvents drains the play queue into the analytics tables until the
// context is cancelled.
func consumePlayEvents(ctx context.Context, inj *do.Injector, cfg *config.Config, log *zap.Logger) error {
	if cfg.RabbitMQ.URL == "" {
		log.Info("no message broker configured; play events persist synchronously")
		return nil
	}

	conn := do.MustInvoke[*amqp.Connection](inj)
	analytics := do.MustInvoke[service.AnalyticsService](inj)

	consumer, err := mq.NewConsumer(conn, cfg.RabbitMQ.PlayQueue, 10, log, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = consumer.Close() }()

	if err := consumer.Bind(cfg.RabbitMQ.Exchange, service.PlayRoutingKey); err != nil {
		return err
	}

	log.Info("play event consumer started", zap.String("queue", cfg.RabbitMQ.PlayQueue))
	err = consumer.Handle(ctx, func(body []byte) error {
		return analytics.HandlePlayRecorded(ctx, body)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
