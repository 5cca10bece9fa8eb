package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig configures the status API daemon. Everything comes from the
// environment; a `.env` file is applied first via Load.
type ServerConfig struct {
	Addr            string        // API bind address
	LogDir          string        // logs directory
	HealthConfig    string        // path to the health-check JSON config
	OutputPath      string        // health artifact path; empty disables writes
	CheckInterval   time.Duration // 0 disables the periodic re-check loop
	StatusAPIKeys   []string      // keys accepted by POST /api/check
	RateLimitRPM    int           // per-IP requests per minute; 0 disables
	SlackWebhookURL string
	GitHubIssuesURL string
	GitHubToken     string
	AlertOnRecovery bool
}

// FromEnv reads the server configuration with Windows-friendly defaults for
// local runs.
func FromEnv() ServerConfig {
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	interval := 5 * time.Minute
	if v := os.Getenv("CHECK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}

	rpm := 60
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			rpm = n
		}
	}

	return ServerConfig{
		Addr:            addr,
		LogDir:          logDir,
		HealthConfig:    os.Getenv("HEALTH_CONFIG"),
		OutputPath:      os.Getenv("OUTPUT"),
		CheckInterval:   interval,
		StatusAPIKeys:   splitList(os.Getenv("STATUS_API_KEYS")),
		RateLimitRPM:    rpm,
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
		GitHubIssuesURL: os.Getenv("GITHUB_ISSUES_URL"),
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		AlertOnRecovery: boolEnv("ALERT_ON_RECOVERY"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func boolEnv(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
