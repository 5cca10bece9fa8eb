package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KothaGPT/monitoring/internal/domain"
)

func TestWriteThenLoadHealth_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	results := []domain.EndpointResult{
		{
			Endpoint:     "https://api.kothagpt.com/predict",
			Available:    true,
			ResponseTime: 0.4217311,
			ErrorRate:    0.0,
			StatusCode:   200,
		},
		{
			Endpoint:     "https://kothagpt.github.io",
			Available:    false,
			ResponseTime: 1.02,
			ErrorRate:    1.0,
			StatusCode:   502,
			ErrorMessage: "GitHub Pages site returned status 502",
		},
	}
	want := domain.NewHealthReport(
		domain.Verdict{AllHealthy: false, Summary: "Checked 2 endpoints: 1 healthy"},
		results,
		time.Now(),
	)

	if err := Write(filepath.Join(dir, HealthFile), want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := LoadHealth(dir)
	if err != nil {
		t.Fatalf("LoadHealth: %v", err)
	}
	if got.Summary != want.Summary || got.AllHealthy != want.AllHealthy {
		t.Fatalf("verdict mismatch:\nwant=%+v\ngot =%+v", want, got)
	}
	if got.Timestamp != want.Timestamp {
		t.Fatalf("timestamp changed: want %v, got %v", want.Timestamp, got.Timestamp)
	}
	if len(got.Results) != 2 {
		t.Fatalf("want 2 results, got %d", len(got.Results))
	}
	for i := range want.Results {
		if got.Results[i] != want.Results[i] {
			t.Fatalf("result %d mismatch:\nwant=%+v\ngot =%+v", i, want.Results[i], got.Results[i])
		}
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Write(filepath.Join(dir, HealthFile), &domain.HealthReport{Summary: "x"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != HealthFile {
		t.Fatalf("unexpected files after write: %v", entries)
	}
}

func TestLoad_MissingFileIsErrNotExist(t *testing.T) {
	dir := t.TempDir()
	for _, loadFn := range []func(string) error{
		func(d string) error { _, err := LoadHealth(d); return err },
		func(d string) error { _, err := LoadBenchmark(d); return err },
		func(d string) error { _, err := LoadDrift(d); return err },
	} {
		if err := loadFn(dir); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("want fs.ErrNotExist, got %v", err)
		}
	}
}

func TestLoad_MalformedFileIsNotErrNotExist(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DriftFile), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadDrift(dir)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want a parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), DriftFile) {
		t.Fatalf("parse error should name the file: %v", err)
	}
}

func TestLoadBenchmark_LooseShape(t *testing.T) {
	dir := t.TempDir()
	body := `{
		"summary": "2 of 3 improved",
		"benchmarks": [
			{"model": "kotha-7b", "metric": "latency_p95", "value": 0.83, "baseline": "0.90", "status": "pass"}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, BenchmarkFile), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadBenchmark(dir)
	if err != nil {
		t.Fatalf("LoadBenchmark: %v", err)
	}
	if got.Summary != "2 of 3 improved" || len(got.Benchmarks) != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
	// numeric and string leaves both survive
	if got.Benchmarks[0].Value != 0.83 || got.Benchmarks[0].Baseline != "0.90" {
		t.Fatalf("untyped leaves mangled: %+v", got.Benchmarks[0])
	}
}
