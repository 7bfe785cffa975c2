package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brewline/internal/chat"
	"brewline/internal/commons"
	"brewline/internal/config"
	"brewline/internal/identity"
	"brewline/internal/infrastructure/logger"
	"brewline/internal/infrastructure/mysql"
	"brewline/internal/notification"
	"brewline/internal/order"
	"brewline/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	reconciler := notification.NewReconciler(zapLogger)
	resolver := identity.NewHeaderResolver()

	orderModule := order.NewModule(db, reconciler, resolver, zapLogger)
	chatModule := chat.NewModule(cfg.AI, zapLogger)

	// Best-effort startup rehydration; the reconciler stays a display cache
	// and tolerates divergence either way.
	rehydrateCtx, cancelRehydrate := context.WithTimeout(context.Background(), 5*time.Second)
	if err := reconciler.Rehydrate(rehydrateCtx, orderModule.Store); err != nil {
		zapLogger.Warn("notification rehydration failed", zap.Error(err))
	}
	cancelRehydrate()

	notifCtrl := notification.NewController(reconciler, zapLogger)
	router := server.NewRouter(orderModule.Controller, orderModule.Live, notifCtrl, chatModule.Controller, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
