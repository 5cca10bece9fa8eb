// Package config loads the health-check configuration from a JSON file, an
// environment fallback, or defaults, and validates it before a run starts.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// ErrNoEndpoints marks a configuration with nothing to check. Callers map it
// to exit code 2: operator misconfiguration, not a monitored-system outage.
var ErrNoEndpoints = errors.New("no endpoints configured")

// defaultModelEndpoint is probed when neither a config file nor the
// MODEL_ENDPOINTS variable names any endpoints.
const defaultModelEndpoint = "http://localhost:8000/predict"

// Config is the health-check configuration. The JSON keys are a shared
// contract with the config files already in use by the monitoring workflows.
type Config struct {
	ModelEndpoints       []string          `json:"model_endpoints"`
	GitHubPagesEndpoints []string          `json:"github_pages_endpoints"`
	GitHubAPIEndpoints   []string          `json:"github_api_endpoints"`
	ExpectedResponseTime float64           `json:"expected_response_time"` // seconds
	MaxErrorRate         float64           `json:"max_error_rate"`         // fraction
	TestQueries          []string          `json:"test_queries"`
	APIKeys              map[string]string `json:"api_keys"`
	Timeout              float64           `json:"timeout"` // seconds
}

// Default returns the configuration used when a field is absent from the
// config file.
func Default() Config {
	return Config{
		ExpectedResponseTime: 2.0,
		MaxErrorRate:         0.05,
		TestQueries: []string{
			"Hello, how are you?",
			"What is the capital of France?",
			"Explain quantum computing in simple terms.",
		},
		APIKeys: map[string]string{},
		Timeout: 30,
	}
}

// Load reads the config file at path, overlaying defaults. When path is
// empty or the file does not exist, it falls back to the MODEL_ENDPOINTS
// environment variable: unset means the default local endpoint, explicitly
// empty means no endpoints at all. A `.env` file in the working directory is
// applied first, if present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
			if cfg.APIKeys == nil {
				cfg.APIKeys = map[string]string{}
			}
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	raw, set := os.LookupEnv("MODEL_ENDPOINTS")
	if !set {
		raw = defaultModelEndpoint
	}
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			cfg.ModelEndpoints = append(cfg.ModelEndpoints, e)
		}
	}
	return cfg, nil
}

// Validate collects every problem with the configuration rather than
// stopping at the first. An empty endpoint set surfaces as ErrNoEndpoints.
func (c Config) Validate() error {
	var err error
	if len(c.ModelEndpoints)+len(c.GitHubPagesEndpoints)+len(c.GitHubAPIEndpoints) == 0 {
		err = multierr.Append(err, ErrNoEndpoints)
	}
	if c.ExpectedResponseTime <= 0 {
		err = multierr.Append(err, fmt.Errorf("expected_response_time must be positive, got %g", c.ExpectedResponseTime))
	}
	if c.MaxErrorRate < 0 || c.MaxErrorRate > 1 {
		err = multierr.Append(err, fmt.Errorf("max_error_rate must be within [0, 1], got %g", c.MaxErrorRate))
	}
	if c.Timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must be positive, got %g", c.Timeout))
	}
	return err
}

// Thresholds returns the two knobs the aggregate verdict is judged against.
func (c Config) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		ExpectedResponseTime: c.ExpectedResponseTime,
		MaxErrorRate:         c.MaxErrorRate,
	}
}

// TimeoutDuration converts the configured timeout to a time.Duration.
func (c Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// FirstTestQuery picks the query the functional model probe posts.
func (c Config) FirstTestQuery() string {
	if len(c.TestQueries) == 0 {
		return ""
	}
	return c.TestQueries[0]
}
