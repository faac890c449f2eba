package departures

import (
	"testing"
	"time"
)

func TestDelayMinutes(t *testing.T) {
	tests := []struct {
		name      string
		scheduled string
		expected  string
		want      int
		wantOK    bool
	}{
		{
			name:      "five minutes late",
			scheduled: "2024-03-01T10:00:00Z",
			expected:  "2024-03-01T10:05:00Z",
			want:      5,
			wantOK:    true,
		},
		{
			name:      "two minutes early",
			scheduled: "2024-03-01T10:00:00Z",
			expected:  "2024-03-01T09:58:00Z",
			want:      -2,
			wantOK:    true,
		},
		{
			name:      "on time",
			scheduled: "2024-03-01T10:00:00Z",
			expected:  "2024-03-01T10:00:00Z",
			want:      0,
			wantOK:    true,
		},
		{
			name:      "sub-minute delay truncates toward zero",
			scheduled: "2024-03-01T10:00:00Z",
			expected:  "2024-03-01T10:00:59Z",
			want:      0,
			wantOK:    true,
		},
		{
			name:      "sub-minute early truncates toward zero",
			scheduled: "2024-03-01T10:00:00Z",
			expected:  "2024-03-01T09:59:01Z",
			want:      0,
			wantOK:    true,
		},
		{
			name:      "naive timestamps",
			scheduled: "2024-03-01T10:00:00",
			expected:  "2024-03-01T10:07:00",
			want:      7,
			wantOK:    true,
		},
		{
			name:      "missing scheduled",
			scheduled: "",
			expected:  "2024-03-01T10:05:00Z",
			wantOK:    false,
		},
		{
			name:      "missing expected",
			scheduled: "2024-03-01T10:00:00Z",
			expected:  "",
			wantOK:    false,
		},
		{
			name:      "unparsable expected",
			scheduled: "2024-03-01T10:00:00Z",
			expected:  "not-a-timestamp",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DelayMinutes(tt.scheduled, tt.expected)
			if ok != tt.wantOK {
				t.Fatalf("DelayMinutes ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("DelayMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDelayMinutesAntisymmetric(t *testing.T) {
	a := "2024-03-01T10:00:00Z"
	b := "2024-03-01T10:09:00Z"

	forward, ok := DelayMinutes(a, b)
	if !ok {
		t.Fatal("forward delay should parse")
	}
	backward, ok := DelayMinutes(b, a)
	if !ok {
		t.Fatal("backward delay should parse")
	}
	if forward != -backward {
		t.Errorf("swapping scheduled/expected should flip the sign: %d vs %d", forward, backward)
	}
}

func TestMinutesUntil(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expected string
		want     int
	}{
		{name: "ten minutes out", expected: "2024-03-01T10:10:00Z", want: 10},
		{name: "floors partial minutes", expected: "2024-03-01T10:10:59Z", want: 10},
		{name: "departure in the past clamps to zero", expected: "2024-03-01T09:30:00Z", want: 0},
		{name: "exactly now", expected: "2024-03-01T10:00:00Z", want: 0},
		{name: "missing", expected: "", want: 0},
		{name: "unparsable", expected: "garbage", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesUntil(tt.expected, now, time.UTC)
			if got != tt.want {
				t.Errorf("MinutesUntil = %d, want %d", got, tt.want)
			}
			if got < 0 {
				t.Errorf("MinutesUntil must never be negative, got %d", got)
			}
		})
	}
}

func TestMinutesUntilNaiveFrame(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		t.Fatal(err)
	}
	// A naive timestamp carries the display wall clock, so it compares
	// against a now expressed in the same zone.
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, loc)
	if got := MinutesUntil("2024-03-01T10:15:00", now, loc); got != 15 {
		t.Errorf("MinutesUntil = %d, want 15", got)
	}
}

func TestFormatClock(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		ts     string
		want   string
		wantOK bool
	}{
		{
			// 10:05 UTC is 11:05 in Stockholm during CET winter.
			name:   "zone-aware converts to display zone",
			ts:     "2024-03-01T10:05:00Z",
			want:   "11:05",
			wantOK: true,
		},
		{
			name:   "naive formats as-is",
			ts:     "2024-03-01T10:05:00",
			want:   "10:05",
			wantOK: true,
		},
		{name: "missing", ts: "", wantOK: false},
		{name: "unparsable", ts: "10 o'clock", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatClock(tt.ts, loc)
			if ok != tt.wantOK {
				t.Fatalf("FormatClock ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("FormatClock = %q, want %q", got, tt.want)
			}
		})
	}
}
