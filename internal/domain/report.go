package domain

import "time"

// HealthReport is the JSON artifact written by the healthcheck CLI and read
// back by the reporter. Timestamp is float unix seconds so artifacts written
// by the earlier tooling parse unchanged. ModelPerformance is filled by
// external tooling only; the probe never writes it.
type HealthReport struct {
	Summary          string           `json:"summary"`
	AllHealthy       bool             `json:"all_healthy"`
	Timestamp        float64          `json:"timestamp"`
	Results          []EndpointResult `json:"results"`
	ModelPerformance map[string]any   `json:"model_performance,omitempty"`
}

// NewHealthReport assembles the artifact for one completed probe pass.
func NewHealthReport(v Verdict, results []EndpointResult, now time.Time) *HealthReport {
	return &HealthReport{
		Summary:    v.Summary,
		AllHealthy: v.AllHealthy,
		Timestamp:  float64(now.UnixNano()) / 1e9,
		Results:    results,
	}
}

// BenchmarkReport is produced by external benchmark tooling. Its shape is
// assumed rather than validated; value and baseline may be numbers or
// strings, so they stay untyped.
type BenchmarkReport struct {
	Summary    string           `json:"summary,omitempty"`
	Benchmarks []BenchmarkEntry `json:"benchmarks,omitempty"`
}

type BenchmarkEntry struct {
	Model    string `json:"model,omitempty"`
	Metric   string `json:"metric,omitempty"`
	Value    any    `json:"value,omitempty"`
	Baseline any    `json:"baseline,omitempty"`
	Status   string `json:"status,omitempty"`
}

// DriftReport is produced by external drift-detection tooling. DriftDetected
// is a pointer: a missing field and an explicit false render differently.
type DriftReport struct {
	DriftDetected *bool                  `json:"drift_detected,omitempty"`
	DriftMetrics  map[string]DriftMetric `json:"drift_metrics,omitempty"`
}

type DriftMetric struct {
	Threshold    any    `json:"threshold,omitempty"`
	CurrentValue any    `json:"current_value,omitempty"`
	Status       string `json:"status,omitempty"`
}
