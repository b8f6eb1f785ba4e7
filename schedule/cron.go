// Package schedule runs scheduled dispatch cycles for units that declare a
// cron expression. It reads the cached registry and dispatches through the
// same contained path as interactive selection; it never re-runs discovery.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var standardCronParser = cron.NewParser(
	cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow,
)

// ParseExpressionUTC parses a 5-field cron expression. Timezone prefixes are
// rejected; scheduled dispatch is UTC-only.
func ParseExpressionUTC(expr string) (cron.Schedule, error) {
	clean := strings.TrimSpace(expr)
	if clean == "" {
		return nil, fmt.Errorf("cron expression is required")
	}

	upper := strings.ToUpper(clean)
	if strings.Contains(upper, "CRON_TZ=") || strings.Contains(upper, "TZ=") {
		return nil, fmt.Errorf("cron expression must be UTC-only (timezone prefixes are not allowed)")
	}

	schedule, err := standardCronParser.Parse(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule, nil
}

// NextRunUTC returns the next fire time for expr strictly after now.
func NextRunUTC(expr string, now time.Time) (time.Time, error) {
	schedule, err := ParseExpressionUTC(expr)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(now.UTC()), nil
}
