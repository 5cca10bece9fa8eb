// Command api runs the status daemon: the probe batch on an interval, the
// latest report held in memory, and a small HTTP API with Prometheus
// metrics. Configuration comes from the environment (see config.FromEnv).
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/KothaGPT/monitoring/internal/config"
	"github.com/KothaGPT/monitoring/internal/httpapi"
	"github.com/KothaGPT/monitoring/internal/logging"
	"github.com/KothaGPT/monitoring/internal/metrics"
	"github.com/KothaGPT/monitoring/internal/notify"
	"github.com/KothaGPT/monitoring/internal/probe"
	"github.com/KothaGPT/monitoring/internal/scheduler"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	srvCfg := config.FromEnv()
	logger, err := logging.New(srvCfg.LogDir, *verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(srvCfg.HealthConfig)
	if err != nil {
		logger.Fatal("config_load_failed", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config_invalid", zap.Error(err))
	}

	collector := metrics.NewCollector()

	runner := probe.NewRunner(logger, probe.Batch{
		ModelEndpoints: cfg.ModelEndpoints,
		PagesEndpoints: cfg.GitHubPagesEndpoints,
		APIEndpoints:   cfg.GitHubAPIEndpoints,
		APIKeys:        cfg.APIKeys,
		TestQuery:      cfg.FirstTestQuery(),
		Timeout:        cfg.TimeoutDuration(),
	})
	runner.Observer = collector

	var notifier notify.Multi
	if s := notify.NewSlack(srvCfg.SlackWebhookURL); s != nil {
		notifier = append(notifier, s)
	}
	if g := notify.NewGitHubIssues(srvCfg.GitHubIssuesURL, srvCfg.GitHubToken); g != nil {
		notifier = append(notifier, g)
	}

	rechecker := scheduler.NewRechecker(logger, runner, cfg.Thresholds(), notifier, collector, scheduler.Config{
		Interval:        srvCfg.CheckInterval,
		OutputPath:      srvCfg.OutputPath,
		AlertOnRecovery: srvCfg.AlertOnRecovery,
	})

	api := httpapi.NewServer(logger, rechecker, collector.Handler(), srvCfg.StatusAPIKeys, srvCfg.RateLimitRPM)
	srv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: api.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go rechecker.Run(ctx)

	go func() {
		logger.Info("api_listen", zap.String("addr", srvCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_serve_failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown_error", zap.Error(err))
	}
}
