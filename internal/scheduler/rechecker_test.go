package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/KothaGPT/monitoring/internal/domain"
)

var thresholds = domain.Thresholds{ExpectedResponseTime: 2.0, MaxErrorRate: 0.05}

// scriptedRunner returns one canned result set per pass.
type scriptedRunner struct {
	passes [][]domain.EndpointResult
	calls  int
}

func (s *scriptedRunner) Run(ctx context.Context) []domain.EndpointResult {
	i := s.calls
	if i >= len(s.passes) {
		i = len(s.passes) - 1
	}
	s.calls++
	return s.passes[i]
}

type fakeNotifier struct {
	titles []string
	texts  []string
}

func (f *fakeNotifier) Send(ctx context.Context, title, text string) error {
	f.titles = append(f.titles, title)
	f.texts = append(f.texts, text)
	return nil
}

func up(endpoint string) domain.EndpointResult {
	return domain.EndpointResult{Endpoint: endpoint, Available: true, ResponseTime: 0.1, StatusCode: 200}
}

func down(endpoint, msg string) domain.EndpointResult {
	return domain.EndpointResult{Endpoint: endpoint, Available: false, ErrorRate: 1.0, ErrorMessage: msg}
}

func TestCheckNow_StoresLatestAndEvaluates(t *testing.T) {
	runner := &scriptedRunner{passes: [][]domain.EndpointResult{
		{up("http://m1.example/predict"), up("https://docs.example")},
	}}
	r := NewRechecker(zap.NewNop(), runner, thresholds, nil, nil, Config{})

	if r.Latest() != nil {
		t.Fatal("latest must be nil before the first pass")
	}

	report := r.CheckNow(context.Background())
	if !report.AllHealthy {
		t.Fatalf("want healthy report, got %+v", report)
	}
	if report.Summary != "Checked 2 endpoints: 2 healthy" {
		t.Fatalf("summary wrong: %q", report.Summary)
	}
	if r.Latest() != report {
		t.Fatal("latest must hold the newest report")
	}
	if report.Timestamp <= 0 {
		t.Fatalf("timestamp not set: %g", report.Timestamp)
	}
}

func TestCheckNow_WritesArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_report.json")
	runner := &scriptedRunner{passes: [][]domain.EndpointResult{{up("http://m1.example")}}}
	r := NewRechecker(zap.NewNop(), runner, thresholds, nil, nil, Config{OutputPath: path})

	r.CheckNow(context.Background())

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(data), `"all_healthy": true`) {
		t.Fatalf("artifact content wrong: %s", data)
	}
}

func TestAlert_Transitions(t *testing.T) {
	runner := &scriptedRunner{passes: [][]domain.EndpointResult{
		{up("http://m1.example")},                          // healthy
		{down("http://m1.example", "Connection refused")},  // down -> alert
		{down("http://m1.example", "Connection refused")},  // still down -> silent
		{up("http://m1.example")},                          // recovered -> alert
	}}
	n := &fakeNotifier{}
	r := NewRechecker(zap.NewNop(), runner, thresholds, n, nil, Config{AlertOnRecovery: true})

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		r.CheckNow(ctx)
	}

	if len(n.titles) != 2 {
		t.Fatalf("want 2 alerts, got %d: %v", len(n.titles), n.titles)
	}
	if !strings.Contains(n.titles[0], "FAILED") {
		t.Fatalf("first alert should be a down alert: %q", n.titles[0])
	}
	if !strings.Contains(n.texts[0], "http://m1.example: Connection refused") {
		t.Fatalf("down alert should list failing endpoints: %q", n.texts[0])
	}
	if !strings.Contains(n.titles[1], "RECOVERED") {
		t.Fatalf("second alert should be a recovery: %q", n.titles[1])
	}
}

func TestAlert_FirstPassDownAlerts(t *testing.T) {
	runner := &scriptedRunner{passes: [][]domain.EndpointResult{
		{down("http://m1.example", "Request timeout")},
	}}
	n := &fakeNotifier{}
	r := NewRechecker(zap.NewNop(), runner, thresholds, n, nil, Config{})

	r.CheckNow(context.Background())
	if len(n.titles) != 1 || !strings.Contains(n.titles[0], "FAILED") {
		t.Fatalf("first unhealthy pass must alert, got %v", n.titles)
	}
}

func TestAlert_RecoveryDisabledStaysSilent(t *testing.T) {
	runner := &scriptedRunner{passes: [][]domain.EndpointResult{
		{down("http://m1.example", "Request timeout")},
		{up("http://m1.example")},
	}}
	n := &fakeNotifier{}
	r := NewRechecker(zap.NewNop(), runner, thresholds, n, nil, Config{AlertOnRecovery: false})

	ctx := context.Background()
	r.CheckNow(ctx)
	r.CheckNow(ctx)

	if len(n.titles) != 1 {
		t.Fatalf("recovery alert must be suppressed when disabled: %v", n.titles)
	}
}

func TestAlert_FirstPassHealthySendsNothing(t *testing.T) {
	runner := &scriptedRunner{passes: [][]domain.EndpointResult{{up("http://m1.example")}}}
	n := &fakeNotifier{}
	r := NewRechecker(zap.NewNop(), runner, thresholds, n, nil, Config{AlertOnRecovery: true})

	r.CheckNow(context.Background())
	if len(n.titles) != 0 {
		t.Fatalf("healthy first pass must not alert: %v", n.titles)
	}
}

func TestRun_ZeroIntervalDisabled(t *testing.T) {
	runner := &scriptedRunner{passes: [][]domain.EndpointResult{{up("http://m1.example")}}}
	r := NewRechecker(zap.NewNop(), runner, thresholds, nil, nil, Config{Interval: 0})

	r.Run(context.Background()) // must return immediately
	if runner.calls != 0 {
		t.Fatalf("disabled loop must not probe, got %d calls", runner.calls)
	}
}
