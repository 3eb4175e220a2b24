package domain

import "time"

// ServiceName is reported by every probe response
const ServiceName = "frontend"

const (
	StatusHealthy = "healthy"
	StatusReady   = "ready"
)

// ProbeResponse represents the body of the liveness and readiness endpoints
type ProbeResponse struct {
	Status    string `json:"status" example:"healthy"`
	Service   string `json:"service" example:"frontend"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00.000Z"`
}

// NewProbeResponse builds a probe body stamped with now
func NewProbeResponse(status string, now time.Time) ProbeResponse {
	return ProbeResponse{
		Status:    status,
		Service:   ServiceName,
		Timestamp: FormatTimestamp(now),
	}
}
