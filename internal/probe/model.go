package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// ModelChecker probes a model-serving endpoint in two stages: a GET against
// its /health route, then a real prediction request against the endpoint
// itself to prove the model actually answers.
type ModelChecker struct {
	Client    *http.Client
	APIKeys   map[string]string
	TestQuery string
}

func NewModelChecker(timeout time.Duration, apiKeys map[string]string, testQuery string) *ModelChecker {
	return &ModelChecker{
		Client:    newClient(timeout),
		APIKeys:   apiKeys,
		TestQuery: testQuery,
	}
}

func (m *ModelChecker) Check(ctx context.Context, endpoint string) domain.EndpointResult {
	health := m.checkHealth(ctx, endpoint)
	if !health.Available {
		return health
	}
	ok, msg := m.checkPrediction(ctx, endpoint)
	return combine(health, ok, msg)
}

// checkHealth measures the /health route. The route is public; credentials
// are only presented on the prediction call.
func (m *ModelChecker) checkHealth(ctx context.Context, endpoint string) domain.EndpointResult {
	target := strings.TrimRight(endpoint, "/") + "/health"

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return failure(endpoint, time.Since(start), err)
	}
	resp, err := m.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return failure(endpoint, elapsed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.EndpointResult{
			Endpoint:     endpoint,
			Available:    false,
			ResponseTime: elapsed.Seconds(),
			ErrorRate:    1.0,
			StatusCode:   resp.StatusCode,
			ErrorMessage: fmt.Sprintf("Health check failed with status %d", resp.StatusCode),
		}
	}
	return domain.EndpointResult{
		Endpoint:     endpoint,
		Available:    true,
		ResponseTime: elapsed.Seconds(),
		ErrorRate:    0.0,
		StatusCode:   resp.StatusCode,
	}
}

// checkPrediction posts a small query and verifies the body carries a model
// answer. A failed prediction is reported as (false, reason), not an error;
// combine turns it into the downgraded result.
func (m *ModelChecker) checkPrediction(ctx context.Context, endpoint string) (bool, string) {
	payload, err := json.Marshal(map[string]any{
		"query":      m.TestQuery,
		"max_tokens": 50,
	})
	if err != nil {
		return false, err.Error()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")
	if key := m.APIKeys[endpoint]; key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("Prediction failed with status %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err.Error()
	}
	if _, ok := body["response"]; ok {
		return true, ""
	}
	if _, ok := body["prediction"]; ok {
		return true, ""
	}
	return false, "Invalid response format"
}

// combine downgrades a passing health result when the prediction check
// failed. Response time and status code keep the health-check values; only
// availability, error rate and message change.
func combine(health domain.EndpointResult, ok bool, msg string) domain.EndpointResult {
	if ok {
		return health
	}
	health.Available = false
	health.ErrorRate = 1.0
	health.ErrorMessage = msg
	return health
}
