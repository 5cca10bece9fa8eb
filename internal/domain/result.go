package domain

// EndpointResult records the outcome of a single endpoint probe.
// StatusCode 0 means no response was received (transport failure).
// An available result always carries ErrorRate 0.0; every unavailable
// path sets it to 1.0.
type EndpointResult struct {
	Endpoint     string  `json:"endpoint"`
	Available    bool    `json:"available"`
	ResponseTime float64 `json:"response_time"` // seconds
	ErrorRate    float64 `json:"error_rate"`    // 0.0 .. 1.0
	StatusCode   int     `json:"status_code"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// Thresholds are the two knobs the aggregate verdict is judged against.
// They are static configuration, never derived from the data.
type Thresholds struct {
	ExpectedResponseTime float64 // seconds
	MaxErrorRate         float64 // fraction, e.g. 0.05
}

// Verdict is the single healthy/unhealthy decision over one result set.
// It is recomputed from the full set on every evaluation, never mutated.
type Verdict struct {
	AllHealthy bool   `json:"all_healthy"`
	Summary    string `json:"summary"`
}
