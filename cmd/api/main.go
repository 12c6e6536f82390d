package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoSim-25-26J-441/go-diag-sink/config"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/bootstrap"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/service"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("diagnostics sink stopped")
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logging.Init(cfg.App.LogLevel, cfg.App.Environment); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		logrus.WithField("channel", cfg.Redis.Channel).Info("diagnostics fan-out enabled")
	}

	console := service.NewConsole(os.Stdout)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Console:        console,
		Redis:          rdb,
		RedisChannel:   cfg.Redis.Channel,
	})

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	_ = console.Announce(cfg.Server.Port)
	logrus.WithFields(logrus.Fields{
		"addr":    cfg.Addr(),
		"env":     cfg.App.Environment,
		"version": cfg.App.Version,
	}).Info("server started")

	if err := bootstrap.Serve(ctx, ln, router, cfg.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logrus.Info("server stopped gracefully")
	return nil
}
