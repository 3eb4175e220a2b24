package domain

import (
	"context"
	"time"
)

// AccessRecord describes a finished request, shipped to access-log sinks
type AccessRecord struct {
	Method   string        `json:"method"`
	Path     string        `json:"path"`
	Status   int           `json:"status"`
	Duration time.Duration `json:"duration"`
	Time     time.Time     `json:"time"`
}

// AccessLogSink receives one record per finished request.
// Implementations must not block request handling for long.
type AccessLogSink interface {
	Record(ctx context.Context, record AccessRecord) error
}
