package main

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "milliseconds",
			duration: 500 * time.Millisecond,
			want:     "500ms",
		},
		{
			name:     "seconds",
			duration: 5 * time.Second,
			want:     "5.00s",
		},
		{
			name:     "minutes",
			duration: 2*time.Minute + 30*time.Second,
			want:     "2m 30s",
		},
		{
			name:     "hours",
			duration: 1*time.Hour + 15*time.Minute,
			want:     "1h 15m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	latencies := []time.Duration{
		40 * time.Millisecond,
		10 * time.Millisecond,
		30 * time.Millisecond,
		20 * time.Millisecond,
		50 * time.Millisecond,
	}

	if got := percentile(latencies, 50); got != 30*time.Millisecond {
		t.Errorf("percentile(50) = %v, want 30ms", got)
	}
	if got := percentile(latencies, 100); got != 50*time.Millisecond {
		t.Errorf("percentile(100) = %v, want 50ms", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(empty) = %v, want 0", got)
	}
}

func TestPercentageString(t *testing.T) {
	if got := percentageString(1, 4); got != "25.00%" {
		t.Errorf("percentageString(1, 4) = %v, want 25.00%%", got)
	}
	if got := percentageString(3, 0); got != "0.00%" {
		t.Errorf("percentageString(3, 0) = %v, want 0.00%%", got)
	}
}

func TestParseBBox(t *testing.T) {
	box, err := parseBBox("-122.52,37.70,-122.35,37.83")
	if err != nil {
		t.Fatalf("parseBBox() error = %v", err)
	}
	if box.minLon != -122.52 || box.maxLat != 37.83 {
		t.Errorf("parseBBox() = %+v", box)
	}

	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "-122.35,37.70,-122.52,37.83"} {
		if _, err := parseBBox(bad); err == nil {
			t.Errorf("parseBBox(%q) expected error", bad)
		}
	}
}

func TestRandomCell(t *testing.T) {
	box := boundingBox{minLon: -122.52, minLat: 37.70, maxLon: -122.35, maxLat: 37.83}

	for i := 0; i < 10; i++ {
		cellID := randomCell(box, 9)
		if cellID == "" || cellID == "0" {
			t.Fatalf("randomCell() produced invalid cell %q", cellID)
		}
	}
}

func TestRandomAddress(t *testing.T) {
	addr := randomAddress()
	if len(addr) != 34 {
		t.Errorf("randomAddress() length = %d, want 34", len(addr))
	}
	if addr[0] != 'r' {
		t.Errorf("randomAddress() = %q, want leading r", addr)
	}
}
