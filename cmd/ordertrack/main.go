package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vperfumes/ordertrack/internal/adapter/auth"
	"github.com/vperfumes/ordertrack/internal/adapter/config"
	"github.com/vperfumes/ordertrack/internal/adapter/handler/http"
	"github.com/vperfumes/ordertrack/internal/adapter/logger"
	"github.com/vperfumes/ordertrack/internal/adapter/notifier"
	"github.com/vperfumes/ordertrack/internal/adapter/storage"
	"github.com/vperfumes/ordertrack/internal/adapter/storage/repository"
	"github.com/vperfumes/ordertrack/internal/core/ledger"
	"github.com/vperfumes/ordertrack/internal/core/port"
	"github.com/vperfumes/ordertrack/internal/core/service"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}

	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	var statusNotifier port.StatusNotifier = notifier.NewNoop()
	if conf.Broker.URL != "" {
		mq, err := notifier.NewRabbitMQ(conf.Broker, log.Named("Notifier"))
		if err != nil {
			log.Error("broker connection error", zap.Error(err))
			return
		}
		defer mq.Close()
		statusNotifier = mq
	}

	auditLedger, err := ledger.New(repo, log.Named("Ledger"))
	if err != nil {
		log.Error("ledger creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, auditLedger, tokenService, statusNotifier, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	if conf.Admin.Password != "" {
		if err := svc.EnsureAdmin(ctx, conf.Admin.Login, conf.Admin.Password); err != nil {
			log.Error("admin bootstrap error", zap.Error(err))
			return
		}
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	statsHandler, err := http.NewStatsHandler(svc, log.Named("Stats handler"))
	if err != nil {
		log.Error("stats handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, orderHandler, userHandler, statsHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.Serve(gctx, conf.HTTP.HostString)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", zap.Error(err))
	}
}
