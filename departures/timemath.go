package departures

import "time"

// naiveLayout matches upstream timestamps without a zone offset. They are
// wall-clock times in the display zone.
const naiveLayout = "2006-01-02T15:04:05"

// parseTimestamp parses an ISO-8601 timestamp. Zone-aware values parse as
// RFC3339 absolute instants; naive values parse in loc so that later
// comparisons against the running clock stay in one frame. A naive and a
// zone-aware instant are never mixed: both sides become absolute times.
func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(naiveLayout, s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DelayMinutes is the difference between the expected and scheduled
// timestamps in whole minutes, truncated toward zero. Negative means an
// early departure. The second return is false when either timestamp is
// missing or unparsable.
func DelayMinutes(scheduled, expected string) (int, bool) {
	s, ok := parseTimestamp(scheduled, time.Local)
	if !ok {
		return 0, false
	}
	e, ok := parseTimestamp(expected, time.Local)
	if !ok {
		return 0, false
	}
	return int(e.Sub(s) / time.Minute), true
}

// MinutesUntil is the number of whole minutes from now until the expected
// timestamp, never negative. Missing or unparsable input degrades to 0.
func MinutesUntil(expected string, now time.Time, loc *time.Location) int {
	e, ok := parseTimestamp(expected, loc)
	if !ok {
		return 0
	}
	m := int(e.Sub(now) / time.Minute)
	if m < 0 {
		return 0
	}
	return m
}

// FormatClock renders a timestamp as HH:MM in the display zone. Zone-aware
// timestamps are converted into loc first; naive timestamps already carry
// the display wall clock and format as-is. The second return is false when
// the input is missing or unparsable.
func FormatClock(ts string, loc *time.Location) (string, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, ok := parseTimestamp(ts, loc)
	if !ok {
		return "", false
	}
	return t.In(loc).Format("15:04"), true
}
