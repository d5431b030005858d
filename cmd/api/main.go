package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"

	httpadp "loan-ledger/internal/adapter/http"
	mw "loan-ledger/internal/adapter/middleware"
	"loan-ledger/internal/adapter/repository/mysql"
	"loan-ledger/internal/config"
	"loan-ledger/internal/infrastructure/cache"
	"loan-ledger/internal/infrastructure/db"
	"loan-ledger/internal/session"
	"loan-ledger/internal/usecase/identity"
	"loan-ledger/internal/usecase/ledger"
)

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func main() {
	cfg := config.Load()
	log := newLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gormLevel := logger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gormLevel = logger.Info
	}
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), gormLevel)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.DBDriver).Fatal("open database")
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.WithError(err).Fatal("migrate database")
		}
		log.Info("database migrated")
	}
	sqlDB, _ := gdb.DB()

	tx := mysql.NewGormUoW(gdb)
	users := identity.NewUsecase(mysql.NewUserRepository(gdb), tx, log)
	loans := ledger.NewUsecase(tx, mysql.NewLoanRepository(gdb), mysql.NewTransactionRepository(gdb), log)
	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL())

	var mutating []echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Fatal("open redis")
		}
		defer rdb.Close()
		mutating = append(mutating, mw.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log))
	} else {
		log.Warn("REDIS_ADDR not set, request idempotency disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	httpadp.Register(e, httpadp.Handlers{
		Health: httpadp.NewHandler(sqlDB.PingContext),
		Auth:   httpadp.NewAuthHandler(users, sessions),
		Loans:  httpadp.NewLoanHandler(loans),
	}, mw.Auth(sessions), mutating...)

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	_ = sqlDB.Close()
}
