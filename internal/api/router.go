package api

import (
	"time"

	"recipe-forge/internal/api/handlers/health"
	recipeHandler "recipe-forge/internal/api/handlers/recipe"
	savedHandler "recipe-forge/internal/api/handlers/saved"
	"recipe-forge/internal/api/middleware"
	"recipe-forge/internal/core/ai/queue"
	recipeService "recipe-forge/internal/core/recipe"
	"recipe-forge/internal/core/saved"
	"recipe-forge/internal/infrastructure/config"
	"recipe-forge/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Recipes *recipeService.RecipeService
	Saved   saved.Store
	DB      health.Pinger
	Queue   *queue.Manager
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", savedHandler.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制與逾時
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	router.SetHTMLTemplate(recipeHandler.PrintTemplate())

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, deps.DB, deps.Queue)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.NewClientLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window).Handler())
	}

	recipes := recipeHandler.NewHandler(deps.Recipes, cfg.App.Debug)
	recipeGroup := api.Group("/recipes")
	{
		recipeGroup.POST("/generate", middleware.NewDeduplicator(cfg.DedupWindow).Handler(), recipes.Generate)
		recipeGroup.GET("", recipes.List)
		recipeGroup.POST("/scale", recipes.Scale)
		recipeGroup.GET("/:id", recipes.Get)
		recipeGroup.GET("/:id/share", recipes.Share)
		recipeGroup.GET("/:id/print", recipes.Print)
	}

	savedRecipes := savedHandler.NewHandler(deps.Saved, cfg.App.Debug)
	savedGroup := api.Group("/saved")
	{
		savedGroup.GET("", savedRecipes.List)
		savedGroup.POST("", savedRecipes.Add)
		savedGroup.DELETE("/*title", savedRecipes.Remove)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
