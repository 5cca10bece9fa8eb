// Package artifact reads and writes the JSON documents the two processes
// exchange on disk. Writes go through a temp-file rename so a crashed run
// never leaves a half-written artifact behind.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// Fixed artifact filenames, resolved against the reporter's input directory.
const (
	HealthFile    = "health_report.json"
	BenchmarkFile = "benchmark_report.json"
	DriftFile     = "drift_report.json"
)

// Write marshals v as indented JSON to path atomically.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// LoadHealth reads the health report artifact from dir. A missing file
// surfaces as fs.ErrNotExist so callers can tell "absent" from "malformed".
func LoadHealth(dir string) (*domain.HealthReport, error) {
	var r domain.HealthReport
	if err := load(filepath.Join(dir, HealthFile), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadBenchmark reads the benchmark report artifact from dir.
func LoadBenchmark(dir string) (*domain.BenchmarkReport, error) {
	var r domain.BenchmarkReport
	if err := load(filepath.Join(dir, BenchmarkFile), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadDrift reads the drift report artifact from dir.
func LoadDrift(dir string) (*domain.DriftReport, error) {
	var r domain.DriftReport
	if err := load(filepath.Join(dir, DriftFile), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
