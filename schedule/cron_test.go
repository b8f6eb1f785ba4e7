package schedule

import (
	"testing"
	"time"
)

func TestParseExpressionUTC(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "every minute", expr: "* * * * *"},
		{name: "hourly", expr: "0 * * * *"},
		{name: "weekday mornings", expr: "30 6 * * 1-5"},
		{name: "empty", expr: "  ", wantErr: true},
		{name: "six fields", expr: "0 0 * * * *", wantErr: true},
		{name: "garbage", expr: "not a cron", wantErr: true},
		{name: "timezone prefix", expr: "CRON_TZ=America/New_York 0 * * * *", wantErr: true},
		{name: "tz prefix", expr: "TZ=UTC 0 * * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpressionUTC(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExpressionUTC(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestNextRunUTC(t *testing.T) {
	now := time.Date(2026, 8, 30, 11, 15, 30, 0, time.UTC)

	next, err := NextRunUTC("0 * * * *", now)
	if err != nil {
		t.Fatalf("NextRunUTC() error = %v", err)
	}
	want := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("NextRunUTC() = %v, want %v", next, want)
	}
	if next.Location() != time.UTC {
		t.Fatalf("NextRunUTC() location = %v, want UTC", next.Location())
	}
}
