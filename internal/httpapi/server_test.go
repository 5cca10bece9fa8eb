package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/KothaGPT/monitoring/internal/domain"
)

type fakeStatus struct {
	latest *domain.HealthReport
	checks int
}

func (f *fakeStatus) Latest() *domain.HealthReport { return f.latest }

func (f *fakeStatus) CheckNow(ctx context.Context) *domain.HealthReport {
	f.checks++
	f.latest = &domain.HealthReport{
		Summary:    "Checked 1 endpoints: 1 healthy",
		AllHealthy: true,
		Timestamp:  1756500000.0,
		Results: []domain.EndpointResult{
			{Endpoint: "http://m1.example/predict", Available: true, ResponseTime: 0.2, StatusCode: 200},
		},
	}
	return f.latest
}

func newTestServer(status *fakeStatus, keys []string) http.Handler {
	return NewServer(zap.NewNop(), status, nil, keys, 0).Router()
}

func TestHealthz(t *testing.T) {
	h := newTestServer(&fakeStatus{}, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	if rr.Code != 200 || rr.Body.String() != "ok" {
		t.Fatalf("want 200 ok, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestStatus_NotFoundBeforeFirstPass(t *testing.T) {
	h := newTestServer(&fakeStatus{}, nil)

	for _, path := range []string{"/api/status", "/api/summary"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		if rr.Code != 404 {
			t.Fatalf("%s: want 404 before first pass, got %d", path, rr.Code)
		}
	}
}

func TestStatus_ReturnsLatestReport(t *testing.T) {
	status := &fakeStatus{}
	status.CheckNow(context.Background())
	h := newTestServer(status, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/status", nil))
	if rr.Code != 200 {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	var got domain.HealthReport
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.AllHealthy || len(got.Results) != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestSummary_VerdictOnly(t *testing.T) {
	status := &fakeStatus{}
	status.CheckNow(context.Background())
	h := newTestServer(status, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/summary", nil))
	if rr.Code != 200 {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	var got map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["all_healthy"] != true || got["summary"] != "Checked 1 endpoints: 1 healthy" {
		t.Fatalf("unexpected summary: %v", got)
	}
	if _, hasResults := got["results"]; hasResults {
		t.Fatal("summary must not carry the full result list")
	}
}

func TestCheck_RequiresKeyWhenConfigured(t *testing.T) {
	status := &fakeStatus{}
	h := newTestServer(status, []string{"key_a"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/check", nil))
	if rr.Code != 401 {
		t.Fatalf("want 401 without key, got %d", rr.Code)
	}
	if status.checks != 0 {
		t.Fatal("unauthorized request must not trigger a probe pass")
	}

	req := httptest.NewRequest("POST", "/api/check", nil)
	req.Header.Set("Authorization", "Bearer key_a")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("want 200 with key, got %d", rr.Code)
	}
	if status.checks != 1 {
		t.Fatalf("want 1 probe pass, got %d", status.checks)
	}
	var got domain.HealthReport
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Summary == "" {
		t.Fatalf("check response must carry the fresh report: %+v", got)
	}
}

func TestCheck_NoKeysConfiguredIsOpen(t *testing.T) {
	status := &fakeStatus{}
	h := newTestServer(status, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/check", nil))
	if rr.Code != 200 {
		t.Fatalf("want 200 with no keys configured, got %d", rr.Code)
	}
}
