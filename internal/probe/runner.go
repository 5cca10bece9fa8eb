package probe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// Batch describes one probe run: which endpoints to check per class and how
// to talk to them.
type Batch struct {
	ModelEndpoints []string
	PagesEndpoints []string
	APIEndpoints   []string
	APIKeys        map[string]string
	TestQuery      string
	Timeout        time.Duration
}

// Observer is notified of each completed endpoint check. The status daemon
// plugs its metrics collector in here; the CLI leaves it nil.
type Observer interface {
	ObserveCheck(class string, r domain.EndpointResult)
}

// Runner executes a batch strictly sequentially: models first, then pages,
// then API endpoints, one attempt each. A failing endpoint is recorded and
// the run moves on.
type Runner struct {
	log   *zap.Logger
	batch Batch
	model Checker
	pages Checker
	api   Checker

	// Observer may be set before the first Run.
	Observer Observer
}

func NewRunner(log *zap.Logger, b Batch) *Runner {
	return &Runner{
		log:   log,
		batch: b,
		model: NewModelChecker(b.Timeout, b.APIKeys, b.TestQuery),
		pages: NewPagesChecker(b.Timeout, b.APIKeys),
		api:   NewAPIChecker(b.Timeout, b.APIKeys),
	}
}

func (r *Runner) Run(ctx context.Context) []domain.EndpointResult {
	n := len(r.batch.ModelEndpoints) + len(r.batch.PagesEndpoints) + len(r.batch.APIEndpoints)
	results := make([]domain.EndpointResult, 0, n)
	results = r.checkAll(ctx, results, "model", r.model, r.batch.ModelEndpoints)
	results = r.checkAll(ctx, results, "github_pages", r.pages, r.batch.PagesEndpoints)
	results = r.checkAll(ctx, results, "github_api", r.api, r.batch.APIEndpoints)
	return results
}

func (r *Runner) checkAll(ctx context.Context, results []domain.EndpointResult, class string, c Checker, endpoints []string) []domain.EndpointResult {
	for _, ep := range endpoints {
		r.log.Info("checking_endpoint",
			zap.String("class", class),
			zap.String("endpoint", ep))

		res := c.Check(ctx, ep)
		if res.Available {
			r.log.Info("endpoint_up",
				zap.String("class", class),
				zap.String("endpoint", ep),
				zap.Float64("response_time", res.ResponseTime),
				zap.Int("status", res.StatusCode))
		} else {
			r.log.Warn("endpoint_down",
				zap.String("class", class),
				zap.String("endpoint", ep),
				zap.Int("status", res.StatusCode),
				zap.String("error", res.ErrorMessage))
			if res.StatusCode == 0 {
				// No HTTP answer at all; a DNS classification helps triage.
				r.log.Debug("dns_diagnosis",
					zap.String("endpoint", ep),
					zap.String("class", DiagnoseDNS(ep)))
			}
		}
		if r.Observer != nil {
			r.Observer.ObserveCheck(class, res)
		}
		results = append(results, res)
	}
	return results
}
