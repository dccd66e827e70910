package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/taxi-dashboard/internal/api"
	"github.com/jengzang/taxi-dashboard/internal/app"
	"github.com/jengzang/taxi-dashboard/internal/config"
	"github.com/jengzang/taxi-dashboard/internal/handler"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

var configPath = flag.String("config", "", "path to a YAML config file (defaults are used when empty)")

func main() {
	flag.Parse()
	ctx := context.Background()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.InitLogger("taxi-dashboard", logger.LevelError).Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	log := logger.InitLogger("taxi-dashboard", cfg.Log.Level)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start dashboard", err)
		os.Exit(1)
	}
	defer a.Close()

	// 初始化路由
	router := api.SetupRouter(cfg, handler.NewDashboardHandler(a.Dashboard), log)
	server := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "addr", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-quit:
		log.Info(ctx, "shutting down server")
	case err := <-errCh:
		log.Error(ctx, "server error", err)
		a.Close()
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server forced to shutdown", err)
	}
	log.Info(ctx, "server exited")
}
