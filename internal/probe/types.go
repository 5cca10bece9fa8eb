package probe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// Transport-level failure messages recorded in the artifact.
const (
	msgTimeout           = "Request timeout"
	msgConnectionRefused = "Connection refused"
)

// Checker probes a single endpoint. Failures come back as data in the
// result, never as an error: one bad endpoint must not abort a batch.
type Checker interface {
	Check(ctx context.Context, endpoint string) domain.EndpointResult
}

func newClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// failure builds the result for a request that got no response at all.
// StatusCode stays 0 to mark the absence of an HTTP answer.
func failure(endpoint string, elapsed time.Duration, err error) domain.EndpointResult {
	return domain.EndpointResult{
		Endpoint:     endpoint,
		Available:    false,
		ResponseTime: elapsed.Seconds(),
		ErrorRate:    1.0,
		StatusCode:   0,
		ErrorMessage: failureMessage(err),
	}
}

// failureMessage classifies a transport error. Timeouts are checked first: a
// dial that timed out reads as a timeout, not a refused connection.
func failureMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return msgTimeout
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return msgConnectionRefused
	}
	return err.Error()
}
