// Command healthcheck probes the configured model, GitHub Pages, and GitHub
// API endpoints once, prints the aggregate verdict, and optionally writes
// the health JSON artifact.
//
// Exit codes:
//
//	0 - all health checks passed
//	1 - one or more health checks failed
//	2 - configuration error (no endpoints to check)
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KothaGPT/monitoring/internal/artifact"
	"github.com/KothaGPT/monitoring/internal/config"
	"github.com/KothaGPT/monitoring/internal/domain"
	"github.com/KothaGPT/monitoring/internal/health"
	"github.com/KothaGPT/monitoring/internal/logging"
	"github.com/KothaGPT/monitoring/internal/probe"
)

func main() {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, config.ErrNoEndpoints):
		fmt.Fprintln(os.Stderr, "ERROR: No endpoints configured")
		fmt.Fprintln(os.Stderr, "Configure model_endpoints, github_pages_endpoints, or github_api_endpoints")
		os.Exit(2)
	case errors.Is(err, health.ErrUnhealthy):
		os.Exit(1)
	case isConfigError(err):
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// configError wraps load/validation failures so main can map them to the
// misconfiguration exit code, distinct from a monitored failure.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func isConfigError(err error) bool {
	var ce configError
	return errors.As(err, &ce)
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		outputPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "healthcheck",
		Short:         "Check AI model health and performance",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, outputPath, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file for results (JSON)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

func run(configPath, outputPath string, verbose bool) error {
	log, err := logging.New("", verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(configPath)
	if err != nil {
		return configError{err}
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNoEndpoints) {
			return config.ErrNoEndpoints
		}
		return configError{err}
	}

	runner := probe.NewRunner(log, probe.Batch{
		ModelEndpoints: cfg.ModelEndpoints,
		PagesEndpoints: cfg.GitHubPagesEndpoints,
		APIEndpoints:   cfg.GitHubAPIEndpoints,
		APIKeys:        cfg.APIKeys,
		TestQuery:      cfg.FirstTestQuery(),
		Timeout:        cfg.TimeoutDuration(),
	})

	results := runner.Run(context.Background())
	verdict := health.Evaluate(results, cfg.Thresholds())

	printResults(verdict, results)

	if outputPath != "" {
		report := domain.NewHealthReport(verdict, results, time.Now())
		if err := artifact.Write(outputPath, report); err != nil {
			return err
		}
	}

	if !verdict.AllHealthy {
		fmt.Printf("\n❌ HEALTH CHECK FAILED: %s\n", verdict.Summary)
		return health.ErrUnhealthy
	}
	fmt.Printf("\n✅ ALL HEALTH CHECKS PASSED: %s\n", verdict.Summary)
	return nil
}

func printResults(verdict domain.Verdict, results []domain.EndpointResult) {
	fmt.Printf("Health Check Summary: %s\n", verdict.Summary)
	fmt.Println("\nDetailed Results:")
	for _, r := range results {
		status := "✅ HEALTHY"
		if !r.Available {
			status = "❌ UNHEALTHY"
		}
		fmt.Printf("  %s: %s\n", r.Endpoint, status)
		fmt.Printf("    Response time: %.2fs\n", r.ResponseTime)
		fmt.Printf("    Error rate: %.1f%%\n", r.ErrorRate*100)
		if r.ErrorMessage != "" {
			fmt.Printf("    Error: %s\n", r.ErrorMessage)
		}
	}
}
