package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-connect/internal/audit"
	"github.com/BruksfildServices01/barber-connect/internal/auth"
	"github.com/BruksfildServices01/barber-connect/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-connect/internal/db"
	"github.com/BruksfildServices01/barber-connect/internal/logging"
	"github.com/BruksfildServices01/barber-connect/internal/notify"
	"github.com/BruksfildServices01/barber-connect/internal/routes"
	"github.com/BruksfildServices01/barber-connect/internal/storage"
	"github.com/BruksfildServices01/barber-connect/internal/timezone"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log := logging.New(cfg.Log, os.Stdout)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// ginMode is debug only in development.
func ginMode(cfg *config.Config) string {
	if cfg.IsDevelopment() {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// run owns every resource it opens, so deferred cleanup runs on all paths.
func run(cfg *config.Config, log *logrus.Logger) error {
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	var (
		revocations auth.RevocationStore = auth.NewMemoryRevocations()
		sink        notify.Sink          = notify.LogSink{Log: log}
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		revocations = auth.NewRedisRevocations(client)
		sink = notify.NewRedisSink(client, cfg.Notify.Channel)
	} else {
		log.Warn("REDIS_URL not set, token revocations are kept in memory")
	}

	notifier := notify.NewDispatcher(sink, cfg.Notify.QueueSize, log)
	defer notifier.Close()
	auditLogs := audit.New(db)
	auditor := audit.NewDispatcher(auditLogs, log)
	defer auditor.Close()

	deps := routes.Dependencies{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Tokens:      auth.NewIssuer(cfg.JWT),
		Revocations: revocations,
		Notifier:    notifier,
		Audit:       auditor,
		AuditLogs:   auditLogs,
		Clock:       timezone.NewClock(cfg.Timezone),
	}
	if cfg.S3.Enabled() {
		store, err := storage.NewS3Store(cfg.S3)
		if err != nil {
			return fmt.Errorf("configure object storage: %w", err)
		}
		deps.Photos = store
	} else {
		log.Warn("S3 not configured, photo uploads are disabled")
	}
	if cfg.ValidateEmailDomain {
		deps.Resolver = validators.Resolver(net.DefaultResolver)
	}

	gin.SetMode(ginMode(cfg))
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
