package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KothaGPT/monitoring/internal/domain"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != 200 {
		t.Fatalf("scrape status %d", rr.Code)
	}
	return rr.Body.String()
}

func TestCollector_RecordsChecksAndRuns(t *testing.T) {
	c := NewCollector()

	c.ObserveCheck("model", domain.EndpointResult{Available: true, ResponseTime: 0.4})
	c.ObserveCheck("model", domain.EndpointResult{Available: false, ErrorRate: 1.0})
	c.ObserveCheck("github_pages", domain.EndpointResult{Available: true, ResponseTime: 0.1})
	c.ObserveRun(domain.Verdict{AllHealthy: false, Summary: "Checked 3 endpoints: 2 healthy"})

	body := scrape(t, c)
	for _, want := range []string{
		`monitoring_endpoint_checks_total{available="true",class="model"} 1`,
		`monitoring_endpoint_checks_total{available="false",class="model"} 1`,
		`monitoring_endpoint_checks_total{available="true",class="github_pages"} 1`,
		`monitoring_runs_total{outcome="unhealthy"} 1`,
		`monitoring_last_run_healthy 0`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}

	c.ObserveRun(domain.Verdict{AllHealthy: true, Summary: "Checked 3 endpoints: 3 healthy"})
	body = scrape(t, c)
	if !strings.Contains(body, "monitoring_last_run_healthy 1") {
		t.Fatalf("gauge not updated:\n%s", body)
	}
}

func TestCollector_NilIsNoOp(t *testing.T) {
	var c *Collector
	c.ObserveCheck("model", domain.EndpointResult{})
	c.ObserveRun(domain.Verdict{})
}
