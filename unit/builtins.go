package unit

import (
	"context"
	"os"
	"runtime"
	"time"
)

// Built-in handlers give definition files something to bind to out of the
// box and give tests a stable in-process target. Real deployments register
// their own handlers from init functions.
func init() {
	RegisterHandler("echo", echoHandler)
	RegisterHandler("host_info", hostInfoHandler)
}

func echoHandler(_ context.Context, req RunRequest) (map[string]any, error) {
	return map[string]any{
		"unit_name": req.UnitName,
		"cycle_id":  req.CycleID,
	}, nil
}

func hostInfoHandler(_ context.Context, _ RunRequest) (map[string]any, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return map[string]any{
		"hostname": hostname,
		"os":       runtime.GOOS,
		"arch":     runtime.GOARCH,
		"time_utc": time.Now().UTC().Format(time.RFC3339),
	}, nil
}
