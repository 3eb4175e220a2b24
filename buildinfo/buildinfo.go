package buildinfo

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// Build information variables set via ldflags during compilation
var (
	Version   = "1.0.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var startTime = time.Now()

// Info contains build and runtime information
type Info struct {
	Version   string        `json:"version" example:"1.0.0"`
	Commit    string        `json:"commit" example:"abc123def456"`
	BuildDate string        `json:"buildDate" example:"2025-11-22T10:00:00Z"`
	GoVersion string        `json:"goVersion" example:"go1.25.4"`
	Hostname  string        `json:"hostname" example:"frontend-7c9d8f-abcde"`
	Uptime    time.Duration `json:"uptime" swaggertype:"integer" example:"3600000000000"`
}

// GetInfo returns complete build and runtime information
func GetInfo() Info {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Hostname:  hostname,
		Uptime:    time.Since(startTime),
	}
}

// SetStartTime overrides the start time used for uptime
func SetStartTime(t time.Time) {
	startTime = t
}

// String renders the info on one line, uptime rounded to the second
func (i Info) String() string {
	return fmt.Sprintf("frontend %s (commit %s, built %s, %s) on %s, up %s",
		i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Hostname, i.Uptime.Round(time.Second))
}
