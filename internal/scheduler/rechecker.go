// Package scheduler runs the probe batch on an interval for the status
// daemon and keeps the latest report in memory. There is no database; the
// only persistence is the optional health artifact on disk.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KothaGPT/monitoring/internal/artifact"
	"github.com/KothaGPT/monitoring/internal/domain"
	"github.com/KothaGPT/monitoring/internal/health"
	"github.com/KothaGPT/monitoring/internal/metrics"
	"github.com/KothaGPT/monitoring/internal/notify"
)

// BatchRunner runs one full sequential probe pass.
type BatchRunner interface {
	Run(ctx context.Context) []domain.EndpointResult
}

// Config tunes the re-check loop.
type Config struct {
	Interval        time.Duration // 0 disables the loop
	OutputPath      string        // health artifact path; empty disables writes
	AlertOnRecovery bool
}

// Rechecker owns the periodic probe loop. It notifies on verdict
// transitions: down always, recovery when enabled.
type Rechecker struct {
	log        *zap.Logger
	runner     BatchRunner
	thresholds domain.Thresholds
	notifier   notify.Notifier
	collector  *metrics.Collector
	cfg        Config

	mu          sync.RWMutex
	latest      *domain.HealthReport
	lastHealthy *bool
}

func NewRechecker(
	log *zap.Logger,
	runner BatchRunner,
	thresholds domain.Thresholds,
	notifier notify.Notifier,
	collector *metrics.Collector,
	cfg Config,
) *Rechecker {
	return &Rechecker{
		log:        log,
		runner:     runner,
		thresholds: thresholds,
		notifier:   notifier,
		collector:  collector,
		cfg:        cfg,
	}
}

// Run starts the loop: an immediate pass, then one per tick. Stops when ctx
// is cancelled. With a zero interval the loop is disabled entirely.
func (r *Rechecker) Run(ctx context.Context) {
	if r.cfg.Interval == 0 {
		r.log.Info("rechecker_disabled")
		return
	}
	t := time.NewTicker(r.cfg.Interval)
	defer t.Stop()

	r.CheckNow(ctx)

	for {
		select {
		case <-ctx.Done():
			r.log.Info("rechecker_stopped")
			return
		case <-t.C:
			r.CheckNow(ctx)
		}
	}
}

// Latest returns the most recent report, or nil before the first pass.
func (r *Rechecker) Latest() *domain.HealthReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// CheckNow runs one probe pass immediately and returns its report. The
// status API uses it for on-demand checks.
func (r *Rechecker) CheckNow(ctx context.Context) *domain.HealthReport {
	results := r.runner.Run(ctx)
	verdict := health.Evaluate(results, r.thresholds)
	report := domain.NewHealthReport(verdict, results, time.Now())

	r.collector.ObserveRun(verdict)
	r.log.Info("check_pass_complete",
		zap.Bool("all_healthy", verdict.AllHealthy),
		zap.String("summary", verdict.Summary))

	if r.cfg.OutputPath != "" {
		if err := artifact.Write(r.cfg.OutputPath, report); err != nil {
			r.log.Warn("artifact_write_failed", zap.Error(err))
		}
	}

	r.mu.Lock()
	r.latest = report
	prev := r.lastHealthy
	now := verdict.AllHealthy
	r.lastHealthy = &now
	r.mu.Unlock()

	r.alert(ctx, prev, verdict, results)
	return report
}

// alert sends transition notifications. The first pass alerts only when
// unhealthy; a recovery needs a previously recorded down state.
func (r *Rechecker) alert(ctx context.Context, prev *bool, v domain.Verdict, results []domain.EndpointResult) {
	if r.notifier == nil {
		return
	}

	downAlert := !v.AllHealthy && (prev == nil || *prev)
	recoveryAlert := v.AllHealthy && prev != nil && !*prev && r.cfg.AlertOnRecovery
	if !downAlert && !recoveryAlert {
		return
	}

	title := "🔴 Health check FAILED"
	if v.AllHealthy {
		title = "🟢 Health check RECOVERED"
	}
	if err := r.notifier.Send(ctx, title, alertText(v, results)); err != nil {
		r.log.Warn("notify_failed", zap.Error(err))
	}
}

func alertText(v domain.Verdict, results []domain.EndpointResult) string {
	var b strings.Builder
	b.WriteString(v.Summary)
	for _, res := range results {
		if res.Available {
			continue
		}
		fmt.Fprintf(&b, "\n- %s: %s", res.Endpoint, res.ErrorMessage)
	}
	return b.String()
}
