package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/halvard/teamstore/internal/activity"
	"github.com/halvard/teamstore/internal/config"
	"github.com/halvard/teamstore/internal/core"
	"github.com/halvard/teamstore/internal/crypto"
	"github.com/halvard/teamstore/internal/db"
	"github.com/halvard/teamstore/internal/logging"
	"github.com/halvard/teamstore/internal/metrics"
	"github.com/halvard/teamstore/internal/objectstore"
	"github.com/halvard/teamstore/internal/push"
	"github.com/halvard/teamstore/internal/secrets"
	"github.com/halvard/teamstore/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("worker"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	secretsKey, err := crypto.KeyFromBase64(cfg.SecretsKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid secrets key")
	}

	tc, err := temporalclient.Dial(temporalclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to temporal")
	}
	defer tc.Close()

	pushChannel := push.NewRedis(cfg.RedisAddr)
	defer pushChannel.Close()

	store := secrets.NewStore(pool, secretsKey)
	objects := objectstore.NewClient(logger)

	w := worker.New(tc, core.TaskQueue, worker.Options{})

	w.RegisterActivity(activity.NewProvision(store, objects))
	w.RegisterActivity(activity.NewNotify(pool, pushChannel))

	w.RegisterWorkflow(workflow.BucketRequestWorkflow)

	if cfg.MetricsAddr != "" {
		metricsSrv := metrics.NewServer(cfg.MetricsAddr)
		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("starting metrics server")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	go func() {
		logger.Info().Str("taskQueue", core.TaskQueue).Msg("starting temporal worker")
		if err := w.Run(worker.InterruptCh()); err != nil {
			logger.Fatal().Err(err).Msg("worker failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down worker")
	cancel()
}
