package api

import (
	"context"
	"net/http"
	"time"

	"recipe-assistant/internal/api/handlers/health"
	recipeHandler "recipe-assistant/internal/api/handlers/recipe"
	"recipe-assistant/internal/api/middleware"
	"recipe-assistant/internal/core/ai"
	"recipe-assistant/internal/core/ai/cache"
	recipeService "recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/infrastructure/storage"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 單一請求的超時上限
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，純文字 API 不需要更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheStore cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	// 初始化服務
	corpus := storage.NewCorpusStore(cfg.Corpus.Path)
	generator := ai.NewGenerator(cfg, cacheStore)
	svc := recipeService.NewService(corpus, generator, cfg.Corpus.TopK)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("corpus_path", cfg.Corpus.Path),
		zap.Int("top_k", cfg.Corpus.TopK),
		zap.String("model", cfg.OpenRouter.Model),
	)

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cfg))
	router.GET("/ready", health.ReadinessCheck(func() error {
		_, err := corpus.Load(context.Background())
		return err
	}))
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	handler := recipeHandler.NewHandler(svc, corpus, generator, cfg)

	api := router.Group("/api/v1")
	{
		api.GET("/recipes", handler.HandleListRecipes)
		api.GET("/recipes/:id", handler.HandleGetRecipe)
		api.POST("/recommend", handler.HandleRecommend)
		api.POST("/generate", handler.HandleGenerate)
		api.POST("/adapt/:id", handler.HandleAdapt)
		api.GET("/tips/:id", handler.HandleTips)
		api.GET("/ai-status", handler.HandleAIStatus)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
