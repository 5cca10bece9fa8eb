// Package report renders the monitoring artifacts into the fixed-section
// Markdown document posted to GitHub issues and Slack. It formats, it does
// not evaluate: every verdict in the output was computed upstream.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KothaGPT/monitoring/internal/artifact"
	"github.com/KothaGPT/monitoring/internal/domain"
)

// Generator assembles the Markdown report from whatever artifacts exist
// under InputDir. Missing or unreadable artifacts degrade to "no data
// available" sections; only assembly or write failures are fatal.
type Generator struct {
	Log           *zap.Logger
	InputDir      string
	IncludeSystem bool

	now func() time.Time
}

func NewGenerator(log *zap.Logger, inputDir string, includeSystem bool) *Generator {
	return &Generator{
		Log:           log,
		InputDir:      inputDir,
		IncludeSystem: includeSystem,
		now:           time.Now,
	}
}

// WriteFile generates the report and writes it to path.
func (g *Generator) WriteFile(path string) error {
	text, err := g.Generate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Generate renders the full document.
func (g *Generator) Generate() (string, error) {
	health := g.loadHealth()
	bench := g.loadBenchmark()
	drift := g.loadDrift()

	var sections []string
	sections = append(sections, g.header())
	if g.IncludeSystem {
		sections = append(sections, g.systemSection())
	}
	sections = append(sections,
		g.modelSection(health),
		g.benchmarkSection(bench),
		g.driftSection(drift),
		g.recommendationsSection(health, bench, drift),
		g.footer(),
	)
	return strings.Join(sections, "\n"), nil
}

func (g *Generator) loadHealth() *domain.HealthReport {
	r, err := artifact.LoadHealth(g.InputDir)
	g.warnLoad(artifact.HealthFile, err)
	return r
}

func (g *Generator) loadBenchmark() *domain.BenchmarkReport {
	r, err := artifact.LoadBenchmark(g.InputDir)
	g.warnLoad(artifact.BenchmarkFile, err)
	return r
}

func (g *Generator) loadDrift() *domain.DriftReport {
	r, err := artifact.LoadDrift(g.InputDir)
	g.warnLoad(artifact.DriftFile, err)
	return r
}

func (g *Generator) warnLoad(name string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		g.Log.Debug("artifact_absent", zap.String("file", name))
	default:
		g.Log.Warn("artifact_unreadable", zap.String("file", name), zap.Error(err))
	}
}

func (g *Generator) header() string {
	var b strings.Builder
	b.WriteString("# 🚨 AI Model Monitoring Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", g.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString("**Monitoring Period:** Last 6 hours\n")
	return b.String()
}

func (g *Generator) systemSection() string {
	var b strings.Builder
	b.WriteString("## 🔍 System Health Overview\n\n")

	stats, err := collectSystemStats()
	if err != nil {
		fmt.Fprintf(&b, "Error collecting system metrics: %v\n", err)
		return b.String()
	}

	fmt.Fprintf(&b, "**CPU Usage:** %.1f%%\n", stats.CPUPercent)
	fmt.Fprintf(&b, "**Memory Usage:** %.1f%% (%.1fGB / %.1fGB)\n", stats.MemPercent, stats.MemUsedGB, stats.MemTotalGB)
	fmt.Fprintf(&b, "**Disk Usage:** %.1f%% (%.1fGB / %.1fGB)\n", stats.DiskPercent, stats.DiskUsedGB, stats.DiskTotalGB)
	b.WriteString("\n")

	if stats.CPUPercent > 90 {
		b.WriteString("⚠️ **High CPU Usage Detected**\n")
	}
	if stats.MemPercent > 90 {
		b.WriteString("⚠️ **High Memory Usage Detected**\n")
	}
	if stats.DiskPercent > 90 {
		b.WriteString("⚠️ **High Disk Usage Detected**\n")
	}
	return b.String()
}

func (g *Generator) modelSection(health *domain.HealthReport) string {
	var b strings.Builder
	b.WriteString("## 🤖 AI Model Status\n\n")

	if health == nil || len(health.Results) == 0 {
		b.WriteString("No model health data available.\n")
		return b.String()
	}

	if health.AllHealthy {
		b.WriteString("✅ **All models are healthy**\n")
	} else {
		b.WriteString("❌ **Issues detected with one or more models**\n")
	}
	summary := health.Summary
	if summary == "" {
		summary = "No summary available"
	}
	fmt.Fprintf(&b, "**Summary:** %s\n\n", summary)

	b.WriteString("### Endpoint Details\n\n")
	b.WriteString("| Endpoint | Status | Response Time | Error Rate | Details |\n")
	b.WriteString("|----------|--------|---------------|------------|---------|\n")
	for _, r := range health.Results {
		icon := "✅"
		if !r.Available {
			icon = "❌"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			endpointName(r.Endpoint), icon, formatResponseTime(r.ResponseTime),
			formatErrorRate(r.ErrorRate), truncate(r.ErrorMessage, 100))
	}
	b.WriteString("\n")

	if len(health.ModelPerformance) > 0 {
		b.WriteString("### Performance Metrics\n\n")
		for metric, value := range health.ModelPerformance {
			fmt.Fprintf(&b, "**%s:** %v\n", titleize(metric), value)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (g *Generator) benchmarkSection(bench *domain.BenchmarkReport) string {
	var b strings.Builder
	b.WriteString("## 📊 Performance Benchmarks\n\n")

	if bench == nil || (bench.Summary == "" && len(bench.Benchmarks) == 0) {
		b.WriteString("No benchmark data available.\n")
		return b.String()
	}

	if bench.Summary != "" {
		fmt.Fprintf(&b, "**Latest Results:** %s\n\n", bench.Summary)
	}
	if len(bench.Benchmarks) > 0 {
		b.WriteString("### Benchmark Details\n\n")
		b.WriteString("| Model | Metric | Value | Baseline | Status |\n")
		b.WriteString("|-------|--------|-------|----------|--------|\n")
		for _, e := range bench.Benchmarks {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				orUnknown(e.Model), orUnknown(e.Metric),
				orNA(e.Value), orNA(e.Baseline), orUnknown(e.Status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (g *Generator) driftSection(drift *domain.DriftReport) string {
	var b strings.Builder
	b.WriteString("## 🔄 Model Drift Detection\n\n")

	if drift == nil || (drift.DriftDetected == nil && len(drift.DriftMetrics) == 0) {
		b.WriteString("No drift detection data available.\n")
		return b.String()
	}

	if drift.DriftDetected != nil {
		if *drift.DriftDetected {
			b.WriteString("⚠️ **Model drift detected**\n\n")
			b.WriteString("Model performance has deviated from baseline. Consider retraining or model updates.\n")
		} else {
			b.WriteString("✅ **No significant drift detected**\n")
		}
		b.WriteString("\n")
	}

	if len(drift.DriftMetrics) > 0 {
		b.WriteString("### Drift Metrics\n\n")
		for metric, d := range drift.DriftMetrics {
			fmt.Fprintf(&b, "**%s:** %s (threshold: %s) - %s\n",
				metric, orNA(d.CurrentValue), orNA(d.Threshold), orUnknown(d.Status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (g *Generator) recommendationsSection(health *domain.HealthReport, bench *domain.BenchmarkReport, drift *domain.DriftReport) string {
	var b strings.Builder
	b.WriteString("## 💡 Recommendations\n\n")

	if health != nil && !health.AllHealthy {
		b.WriteString("### Immediate Actions Required\n")
		b.WriteString("- Investigate failed model endpoints\n")
		b.WriteString("- Check network connectivity and service status\n")
		b.WriteString("- Review error logs for detailed failure information\n\n")
	}
	if bench != nil && (bench.Summary != "" || len(bench.Benchmarks) > 0) {
		b.WriteString("### Performance Optimization\n")
		b.WriteString("- Monitor response times for slow endpoints\n")
		b.WriteString("- Consider scaling resources if consistently high CPU/memory usage\n")
		b.WriteString("- Review model inference optimization opportunities\n\n")
	}
	if drift != nil && drift.DriftDetected != nil && *drift.DriftDetected {
		b.WriteString("### Model Updates\n")
		b.WriteString("- Schedule model retraining with latest data\n")
		b.WriteString("- Update model baselines after retraining\n")
		b.WriteString("- Monitor drift metrics more frequently\n\n")
	}

	b.WriteString("### General Maintenance\n")
	b.WriteString("- Review and update monitoring thresholds as needed\n")
	b.WriteString("- Ensure backup systems are operational\n")
	b.WriteString("- Update dependencies and security patches\n")
	return b.String()
}

func (g *Generator) footer() string {
	return "---\n\n" +
		"*This report was generated automatically by the KothaGPT monitoring system.*\n" +
		"*For questions or issues, please contact the ML team.*\n"
}

// endpointName shortens a URL to its host for the status table.
func endpointName(endpoint string) string {
	name := strings.TrimPrefix(endpoint, "https://")
	name = strings.TrimPrefix(name, "http://")
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}
	return name
}

func formatResponseTime(seconds float64) string {
	if seconds <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2fs", seconds)
}

func formatErrorRate(rate float64) string {
	if rate <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// titleize turns a snake_case metric key into a heading, e.g.
// "avg_latency" -> "Avg Latency".
func titleize(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func orNA(v any) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%v", v)
}
