package api

import (
	"context"
	"net/http"
	"time"

	"recipe-lookup/internal/api/handlers/auth"
	"recipe-lookup/internal/api/handlers/health"
	recipeHandler "recipe-lookup/internal/api/handlers/recipe"
	themeHandler "recipe-lookup/internal/api/handlers/theme"
	"recipe-lookup/internal/api/middleware"
	"recipe-lookup/internal/core/cache"
	"recipe-lookup/internal/core/identity"
	"recipe-lookup/internal/core/lookup"
	"recipe-lookup/internal/core/theme"
	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 單次請求上限，涵蓋一次搜尋加兩個平行翻譯
	timeoutDuration = 30 * time.Second
)

// Deps 路由需要的服務，由 main 建立後傳入
type Deps struct {
	Pipeline *lookup.Pipeline
	Identity *identity.Service
	Theme    *theme.Context
	Cache    cache.Store
}

// Server 路由與其背景資源
type Server struct {
	Engine  *gin.Engine
	limiter *middleware.RateLimiter
	dedup   *middleware.Deduplicator
}

// Close 停止中間件的背景清理
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
	if s.dedup != nil {
		s.dedup.Close()
	}
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Deps) *Server {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	srv := &Server{Engine: router}

	// requestid 必須在 Logger 之前，日誌才拿得到 ID
	router.Use(requestid.New())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RequestContext())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrGatewayTimeout.Response(false))
		}
	})

	healthHandler := health.NewHandler(cfg, deps.Cache)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		srv.limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst)
		api.Use(srv.limiter.Middleware())
	}

	{
		lookupHandler := recipeHandler.NewHandler(deps.Pipeline, cfg.Translate.SourceLang, cfg.App.Debug)
		api.GET("/recipes/lookup", lookupHandler.HandleLookup)
	}

	{
		srv.dedup = middleware.NewDeduplicator(cfg.DedupWindow)
		authHandler := auth.NewHandler(deps.Identity)

		authGroup := api.Group("/auth")
		authGroup.Use(middleware.BodySizeLimit(middleware.DefaultMaxBodySize))
		authGroup.Use(srv.dedup.Middleware())

		authGroup.POST("/login", authHandler.HandleLogin)
		authGroup.POST("/register", authHandler.HandleRegister)
		authGroup.POST("/reset-password", authHandler.HandleResetPassword)
	}

	{
		h := themeHandler.NewHandler(deps.Theme)
		api.GET("/theme", h.HandleGet)
		api.POST("/theme/toggle", h.HandleToggle)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("target_lang", cfg.Translate.TargetLang),
		zap.Duration("timeout", timeoutDuration),
	)

	return srv
}
