package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-lookup/internal/api"
	"recipe-lookup/internal/core/cache"
	"recipe-lookup/internal/core/identity"
	"recipe-lookup/internal/core/lookup"
	"recipe-lookup/internal/core/theme"
	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("mealdb_base_url", cfg.MealDB.BaseURL),
		zap.String("translate_base_url", cfg.Translate.BaseURL),
		zap.String("translate_key", config.MaskSecret(cfg.Translate.APIKey)),
		zap.String("target_lang", cfg.Translate.TargetLang),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 初始化快取，關閉時 store 為 nil
	store, err := cache.New(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	pipeline, closeClients := lookup.FromConfig(cfg, store)
	defer closeClients()

	server := api.SetupRouter(cfg, api.Deps{
		Pipeline: pipeline,
		Identity: identity.NewService(identity.NewFirebaseProvider(cfg.Identity)),
		Theme:    theme.NewContext(cfg.Theme.Default),
		Cache:    store,
	})
	defer server.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
