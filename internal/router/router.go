package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arcadehq/arcade/internal/config"
	"github.com/arcadehq/arcade/internal/middleware"
	"github.com/arcadehq/arcade/internal/modules/handler"
	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
	"github.com/arcadehq/arcade/internal/telemetry"
)

type RouterDeps struct {
	Config           *config.Config
	Log              *zap.Logger
	AuthService      service.AuthService
	AuthHandler      *handler.AuthHandler
	GameHandler      *handler.GameHandler
	CategoryHandler  *handler.CategoryHandler
	ChallengeHandler *handler.ChallengeHandler
	PostHandler      *handler.PostHandler
	AnalyticsHandler *handler.AnalyticsHandler
	ThumbnailHandler *handler.ThumbnailHandler
	PlayHandler      *handler.PlayHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Add OpenTelemetry middleware if enabled (using configuration system)
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// Static surfaces outside the API envelope: thumbnails always resolve,
	// extracted packages serve straight off disk.
	r.GET("/thumbnails/:id", d.ThumbnailHandler.GetThumbnail)
	r.GET("/play/:token/*filepath", d.PlayHandler.ServeGameFile)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", d.AuthHandler.Login)

		games := v1.Group("/games")
		{
			games.GET("", d.GameHandler.ListGames)
			games.GET("/top", d.GameHandler.TopPlayed)
			games.GET("/:game", d.GameHandler.GetGame)
			games.POST("/:game/plays", d.AnalyticsHandler.RecordPlay)
			games.POST("/:game/favorite", d.AnalyticsHandler.ToggleFavorite)
			games.GET("/:game/stats", d.AnalyticsHandler.GameStats)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", d.CategoryHandler.ListCategories)
			categories.GET("/:slug", d.CategoryHandler.GetCategory)
		}

		challenges := v1.Group("/challenges")
		{
			challenges.GET("", d.ChallengeHandler.ListChallenges)
			challenges.GET("/:id", d.ChallengeHandler.GetChallenge)
			challenges.GET("/:id/leaderboard", d.ChallengeHandler.Leaderboard)
			challenges.POST("/:id/scores", d.ChallengeHandler.SubmitScore)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", d.PostHandler.ListPosts)
			posts.GET("/:slug", d.PostHandler.GetPost)
		}

		admin := v1.Group("/admin")
		{
			admin.Use(middleware.AdminAuth(d.AuthService))

			admin.POST("/auth/logout", d.AuthHandler.Logout)
			admin.GET("/auth/me", d.AuthHandler.Me)

			adminGames := admin.Group("/games")
			{
				adminGames.GET("", d.GameHandler.ListAllGames)
				adminGames.POST("", d.GameHandler.CreateGame)
				adminGames.PATCH("/:id", d.GameHandler.UpdateGame)
				adminGames.DELETE("/:id", d.GameHandler.DeleteGame)
				adminGames.PUT("/:id/status", d.GameHandler.SetStatus)
				adminGames.PUT("/:id/featured", d.GameHandler.SetFeatured)
			}

			adminCategories := admin.Group("/categories")
			{
				adminCategories.POST("", d.CategoryHandler.CreateCategory)
				adminCategories.PUT("/:id", d.CategoryHandler.UpdateCategory)
				adminCategories.DELETE("/:id", d.CategoryHandler.DeleteCategory)
			}

			adminChallenges := admin.Group("/challenges")
			{
				adminChallenges.POST("", d.ChallengeHandler.CreateChallenge)
				adminChallenges.PUT("/:id", d.ChallengeHandler.UpdateChallenge)
				adminChallenges.DELETE("/:id", d.ChallengeHandler.DeleteChallenge)
			}

			adminPosts := admin.Group("/posts")
			{
				adminPosts.GET("", d.PostHandler.ListAllPosts)
				adminPosts.POST("", d.PostHandler.CreatePost)
				adminPosts.PUT("/:id", d.PostHandler.UpdatePost)
				adminPosts.DELETE("/:id", d.PostHandler.DeletePost)
			}
		}
	}
	return r
}
