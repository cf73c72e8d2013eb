package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-forge/internal/api"
	"recipe-forge/internal/core/ai/cache"
	"recipe-forge/internal/core/ai/openrouter"
	"recipe-forge/internal/core/ai/queue"
	"recipe-forge/internal/core/ai/service"
	"recipe-forge/internal/core/recipe"
	"recipe-forge/internal/core/saved"
	"recipe-forge/internal/infrastructure/config"
	"recipe-forge/internal/infrastructure/database"
	"recipe-forge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.Bool("openrouter_enabled", cfg.OpenRouter.Enabled),
		zap.String("openrouter_api_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("saved_backend", cfg.Saved.Backend),
	)

	// 資料庫
	db, err := database.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Redis 只在有後端使用時才連線
	var rdb *redis.Client
	if cfg.Cache.Backend == "redis" || cfg.Saved.Backend == "redis" {
		rdb, err = newRedisClient(cfg.Redis)
		if err != nil {
			common.LogFatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	// AI 服務
	var generator recipe.Generator
	var workQueue *queue.Manager
	if cfg.OpenRouter.Enabled {
		workQueue = queue.NewManager(cfg.Queue)
		aiService := service.NewService(cfg.OpenRouter, openrouter.NewClient(cfg.OpenRouter), buildCache(cfg.Cache, rdb), workQueue)
		defer aiService.Close()
		generator = aiService
	} else {
		common.LogInfo("OpenRouter 未啟用，使用規則產生食譜")
	}

	recipeSvc := recipe.NewRecipeService(database.NewRecipeRepository(db), generator, cfg.Image.BaseURL)

	// 設置路由
	router := api.SetupRouter(cfg, api.Dependencies{
		Recipes: recipeSvc,
		Saved:   buildSavedStore(cfg.Saved, rdb),
		DB:      db,
		Queue:   workQueue,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// buildCache 依設定選擇快取後端；停用時回傳 nil
func buildCache(cfg config.CacheConfig, rdb *redis.Client) cache.Cache {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}
	if cfg.Backend == "redis" {
		return cache.NewRedisCache(rdb, cfg.TTL)
	}
	return cache.NewManager(cfg)
}

func buildSavedStore(cfg config.SavedConfig, rdb *redis.Client) saved.Store {
	if cfg.Backend == "redis" {
		return saved.NewRedisStore(rdb, cfg.TTL)
	}
	return saved.NewMemoryStore()
}
