package main

import (
	"context"
	"log"
	"time"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/catalog"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/config"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/database"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/handlers"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/middleware"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/services"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/telegram"
	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/ws"

	_ "github.com/FrijolitoRaza/DIFFYE-ctf-bot/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           DIFFYE CTF API
// @version         1.0
// @description     Challenge-tracking backend for the fugitive-hunt CTF
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.Migrate(db)

	cat := catalog.Default(cfg.StartDate, time.Duration(cfg.UnlockIntervalHours)*time.Hour)
	hub := ws.NewHub()

	userService := services.NewUserService(db)
	submissionService := services.NewSubmissionService(db, cat)
	rankingService := services.NewRankingService(db)
	statsService := services.NewStatsService(db)
	activityRecorder := services.NewActivityRecorder(db)
	authService := services.NewAuthService(db, cfg.JWTSecret)
	authService.EnsureBootstrapAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)

	userHandler := handlers.NewUserHandler(userService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, userService, cat, hub)
	challengeHandler := handlers.NewChallengeHandler(cat)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	adminHandler := handlers.NewAdminHandler(authService, statsService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Bot-API-Key"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/feed", wsHandler.HandleFeed)

	// Keep-alive endpoint for the hosting platform's health probes.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if cfg.BotToken != "" && cfg.WebhookBaseURL != "" {
		client := telegram.NewClient(cfg.BotToken)
		state := telegram.NewStateManager()
		updateHandler := telegram.NewUpdateHandler(
			client, state,
			userService, submissionService, rankingService, statsService,
			activityRecorder, cat, cfg, hub,
		)
		bot := telegram.NewBot(client, updateHandler, cfg.BotToken, cfg.WebhookBaseURL)
		if err := bot.Start(); err != nil {
			log.Printf("bot disabled: %v", err)
		} else {
			defer bot.Stop()
			r.POST("/webhook/bot/:secret", bot.HandleWebhook)
		}
	} else {
		log.Println("BOT_TOKEN or WEBHOOK_BASE_URL not set, bot disabled")
	}

	api := r.Group("/api/v1")
	api.Use(middleware.Activity(activityRecorder))
	{
		api.GET("/challenges", challengeHandler.List)
		api.GET("/challenges/:id", challengeHandler.Get)
		api.GET("/leaderboard", rankingHandler.Leaderboard)

		auth := api.Group("/auth")
		{
			auth.POST("/login", adminHandler.Login)
		}

		users := api.Group("/users")
		users.Use(middleware.BotAuth(cfg.BotAPIKey))
		{
			users.POST("/register", userHandler.Register)
			users.GET("/:id/progress", userHandler.GetProgress)
		}

		submissions := api.Group("/submissions")
		submissions.Use(middleware.BotAuth(cfg.BotAPIKey))
		{
			submissions.POST("", submissionHandler.Submit)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService))
		{
			admin.GET("/stats", adminHandler.Stats)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
