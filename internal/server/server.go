package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vitacoin.app/rewardsplatform/internal/config"
	"vitacoin.app/rewardsplatform/internal/handler"
	"vitacoin.app/rewardsplatform/internal/middleware"
	"vitacoin.app/rewardsplatform/internal/realtime"
	"vitacoin.app/rewardsplatform/internal/repository"
	"vitacoin.app/rewardsplatform/internal/service"
	"vitacoin.app/rewardsplatform/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	hub         *realtime.Hub
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage unavailable, avatar uploads disabled: %v", err)
	}

	// Initialize Meilisearch
	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	hub := realtime.NewHub()

	jwtTTL := time.Duration(cfg.JWTTTLMinutes) * time.Minute

	authSvc := service.NewAuthService(userRepo, activityRepo, cfg.JWTSecret, jwtTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	leaderboardSvc := service.NewLeaderboardService(leaderboardRepo)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc, activityRepo, cfg.LeaderboardSize)

	rewardSvc := service.NewRewardService(userRepo, ruleRepo, ledgerRepo, transactionRepo, leaderboardSvc, hub, cfg.LeaderboardSize)
	rewardHandler := handler.NewRewardHandler(rewardSvc, redisClient, cfg.RateLimitClaim)

	taskSvc := service.NewTaskService(taskRepo, userRepo, activityRepo, ledgerRepo, leaderboardSvc, hub, searchSvc, cfg.ActivityWindow, cfg.LeaderboardSize)
	taskHandler := handler.NewTaskHandler(taskSvc, searchSvc, redisClient, cfg.RateLimitClaim)

	transactionHandler := handler.NewTransactionHandler(transactionRepo, activityRepo)

	profileSvc := service.NewProfileService(userRepo, imageStorage)
	profileHandler := handler.NewProfileHandler(profileSvc, activityRepo)

	adminSvc := service.NewAdminService(userRepo, ruleRepo)
	adminHandler := handler.NewAdminHandler(adminSvc, taskSvc)

	wsHandler := handler.NewWSHandler(hub, leaderboardSvc, cfg.LeaderboardSize)

	// Expired tasks go inactive in the background so listings and claims stay
	// consistent without per-request sweeps.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			n, err := taskRepo.DeactivateExpired(context.Background(), time.Now().UTC())
			if err != nil {
				log.Printf("expired task sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("deactivated %d expired tasks", n)
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.GET("/rules", adminHandler.ListRules)
			adminGroup.POST("/rules", adminHandler.CreateRule)
			adminGroup.GET("/tasks", adminHandler.ListAllTasks)
			adminGroup.POST("/tasks", adminHandler.CreateTask)
			adminGroup.PUT("/tasks/:id", adminHandler.UpdateTask)
			adminGroup.DELETE("/tasks/:id", adminHandler.DeleteTask)
		}

		protected.GET("/auth/me", profileHandler.GetCurrentProfile)

		// Reward routes
		protected.POST("/rewards/daily", rewardHandler.ClaimDaily)

		// Task routes
		protected.GET("/tasks", taskHandler.ListTasks)
		protected.GET("/tasks/completed", taskHandler.ListCompletions)
		protected.GET("/tasks/search", taskHandler.SearchTasks)
		protected.POST("/tasks/:id/claim", taskHandler.ClaimTask)

		// History and ranking
		protected.GET("/transactions", transactionHandler.ListTransactions)
		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		// Realtime
		protected.GET("/ws", wsHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		hub:         hub,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) Shutdown() {
	s.hub.Shutdown()
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
