package bootstrap

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/config"
	"github.com/arcadehq/arcade/internal/infra/cache"
	"github.com/arcadehq/arcade/internal/infra/db"
	"github.com/arcadehq/arcade/internal/infra/logger"
	mq "github.com/arcadehq/arcade/internal/infra/queue"
	"github.com/arcadehq/arcade/internal/modules/handler"
	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
	"github.com/arcadehq/arcade/internal/modules/service"
	"github.com/arcadehq/arcade/internal/pkg/assetstore"
	"github.com/arcadehq/arcade/internal/pkg/gamepkg"
	"github.com/arcadehq/arcade/internal/pkg/thumbresolver"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.User{},
				&model.Category{},
				&model.Game{},
				&model.Challenge{},
				&model.ChallengeScore{},
				&model.Post{},
				&model.PlayEvent{},
				&model.Favorite{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// RabbitMQ connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return mq.Dial(cfg)
	})

	// RabbitMQ publisher. With no broker configured the publisher is nil and
	// the analytics service persists play events synchronously instead.
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		return mq.NewPublisher(
			do.MustInvoke[*amqp.Connection](i),
			do.MustInvoke[*zap.Logger](i),
			cfg,
		)
	})

	// Package extractor
	do.Provide(inj, func(i *do.Injector) (*gamepkg.Extractor, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return gamepkg.NewExtractor(cfg.Storage.GamesRoot, log), nil
	})

	// Thumbnail asset repository
	do.Provide(inj, func(i *do.Injector) (assetstore.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return assetstore.NewFSRepository(cfg.Storage.ThumbnailsRoot)
	})

	// Asset store
	do.Provide(inj, func(i *do.Injector) (*assetstore.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		store := assetstore.NewStore(
			do.MustInvoke[assetstore.Repository](i),
			cfg.Storage.GamesRoot,
			log,
		)
		// The resolver's terminal fallback must always exist.
		if err := store.EnsurePlaceholder(); err != nil {
			return nil, err
		}
		return store, nil
	})

	// Thumbnail resolver
	do.Provide(inj, func(i *do.Injector) (*thumbresolver.Resolver, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		mappings, err := thumbresolver.LoadMappings(cfg.Storage.FallbackMappings)
		if err != nil {
			return nil, err
		}
		return thumbresolver.New(
			do.MustInvoke[assetstore.Repository](i),
			mappings,
			log,
		), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.GameRepo, error) {
		return repo.NewGameRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CategoryRepo, error) {
		return repo.NewCategoryRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ChallengeRepo, error) {
		return repo.NewChallengeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PostRepo, error) {
		return repo.NewPostRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AnalyticsRepo, error) {
		return repo.NewAnalyticsRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		svc := service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		)
		// ensure an admin account exists on a fresh install
		if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
			return nil, err
		}
		return svc, nil
	})
	do.Provide(inj, func(i *do.Injector) (service.GameService, error) {
		return service.NewGameService(
			do.MustInvoke[repo.GameRepo](i),
			do.MustInvoke[*gamepkg.Extractor](i),
			do.MustInvoke[*assetstore.Store](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CategoryService, error) {
		return service.NewCategoryService(do.MustInvoke[repo.CategoryRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ChallengeService, error) {
		return service.NewChallengeService(
			do.MustInvoke[repo.ChallengeRepo](i),
			do.MustInvoke[repo.GameRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PostService, error) {
		return service.NewPostService(do.MustInvoke[repo.PostRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AnalyticsService, error) {
		return service.NewAnalyticsService(
			do.MustInvoke[repo.AnalyticsRepo](i),
			do.MustInvoke[repo.GameRepo](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.GameHandler, error) {
		return handler.NewGameHandler(
			do.MustInvoke[service.GameService](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CategoryHandler, error) {
		return handler.NewCategoryHandler(do.MustInvoke[service.CategoryService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ChallengeHandler, error) {
		return handler.NewChallengeHandler(do.MustInvoke[service.ChallengeService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PostHandler, error) {
		return handler.NewPostHandler(do.MustInvoke[service.PostService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AnalyticsHandler, error) {
		return handler.NewAnalyticsHandler(do.MustInvoke[service.AnalyticsService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ThumbnailHandler, error) {
		return handler.NewThumbnailHandler(do.MustInvoke[*thumbresolver.Resolver](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PlayHandler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return handler.NewPlayHandler(cfg.Storage.GamesRoot), nil
	})
	return inj
}
