package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/KothaGPT/monitoring/internal/domain"
)

const userAgent = "KothaGPT-Monitoring/1.0"

// APIChecker probes a GitHub REST endpoint. A 404 proves the API itself is
// reachable, so it counts as available with an annotation.
type APIChecker struct {
	Client  *http.Client
	APIKeys map[string]string
}

func NewAPIChecker(timeout time.Duration, apiKeys map[string]string) *APIChecker {
	return &APIChecker{Client: newClient(timeout), APIKeys: apiKeys}
}

func (a *APIChecker) Check(ctx context.Context, endpoint string) domain.EndpointResult {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failure(endpoint, time.Since(start), err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if key := a.APIKeys[endpoint]; key != "" {
		req.Header.Set("Authorization", "token "+key)
	}

	resp, err := a.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return failure(endpoint, elapsed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNotFound:
		msg := ""
		if resp.StatusCode == http.StatusNotFound {
			msg = "Repository or API endpoint not found"
		}
		return domain.EndpointResult{
			Endpoint:     endpoint,
			Available:    true,
			ResponseTime: elapsed.Seconds(),
			ErrorRate:    0.0,
			StatusCode:   resp.StatusCode,
			ErrorMessage: msg,
		}
	default:
		return domain.EndpointResult{
			Endpoint:     endpoint,
			Available:    false,
			ResponseTime: elapsed.Seconds(),
			ErrorRate:    1.0,
			StatusCode:   resp.StatusCode,
			ErrorMessage: fmt.Sprintf("GitHub API returned status %d", resp.StatusCode),
		}
	}
}
