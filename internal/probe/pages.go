package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// PagesChecker probes a static documentation site. GitHub throttling
// answers (403, 429) still prove the site is being served, so they count as
// available with an explanatory message.
type PagesChecker struct {
	Client  *http.Client
	APIKeys map[string]string
}

func NewPagesChecker(timeout time.Duration, apiKeys map[string]string) *PagesChecker {
	return &PagesChecker{Client: newClient(timeout), APIKeys: apiKeys}
}

func (p *PagesChecker) Check(ctx context.Context, endpoint string) domain.EndpointResult {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failure(endpoint, time.Since(start), err)
	}
	if key := p.APIKeys[endpoint]; key != "" {
		req.Header.Set("Authorization", "token "+key)
	}

	resp, err := p.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return failure(endpoint, elapsed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusForbidden, http.StatusTooManyRequests:
		msg := ""
		if resp.StatusCode == http.StatusForbidden {
			msg = "Rate limited by GitHub API"
		} else if resp.StatusCode == http.StatusTooManyRequests {
			msg = "Too many requests to GitHub"
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
			ErrorMessage: fmt.Sprintf("GitHub Pages site returned status %d", resp.StatusCode),
		}
	}
}
