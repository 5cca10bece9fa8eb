// Package health reduces a set of endpoint probe results to one aggregate
// verdict. Evaluate is a pure function over its inputs and thresholds — no
// I/O, no logging — so "available" and "healthy enough" stay distinct and
// independently testable.
package health

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// ErrUnhealthy marks an unhealthy aggregate verdict. Callers map it to exit
// code 1, distinct from the configuration-error kind (exit code 2).
var ErrUnhealthy = errors.New("one or more health checks failed")

// Evaluate computes the aggregate verdict for results under thresholds t.
//
// The verdict is healthy only if every endpoint is available, none exceeded
// the expected response time, and none exceeded the error-rate ceiling —
// three independent necessary conditions. The slow and high-error partitions
// are taken over all results regardless of availability, so a single
// slow-but-available endpoint flips the aggregate to unhealthy even though
// its own available flag says otherwise.
//
// An empty result set is unhealthy: the absence of monitoring targets must
// never be reported as a vacuous success.
func Evaluate(results []domain.EndpointResult, t domain.Thresholds) domain.Verdict {
	if len(results) == 0 {
		return domain.Verdict{AllHealthy: false, Summary: "No endpoints to check"}
	}

	var healthy, slow, highError int
	for _, r := range results {
		if r.Available {
			healthy++
		}
		if r.ResponseTime > t.ExpectedResponseTime {
			slow++
		}
		if r.ErrorRate > t.MaxErrorRate {
			highError++
		}
	}

	parts := []string{fmt.Sprintf("Checked %d endpoints: %d healthy", len(results), healthy)}
	if slow > 0 {
		parts = append(parts, fmt.Sprintf("%d slow (> %gs)", slow, t.ExpectedResponseTime))
	}
	if highError > 0 {
		parts = append(parts, fmt.Sprintf("%d with high error rate", highError))
	}

	return domain.Verdict{
		AllHealthy: healthy == len(results) && slow == 0 && highError == 0,
		Summary:    strings.Join(parts, ", "),
	}
}
