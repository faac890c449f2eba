package departures

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/sl-departures/sl"
)

var viewNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func utcView(slots int) View {
	return View{Slots: slots, Location: time.UTC}
}

func fullDep(line, destination, scheduled, expected, display string) sl.Departure {
	return sl.Departure{
		Destination:   destination,
		DirectionCode: 2,
		Direction:     "Stockholm City",
		State:         "EXPECTED",
		Display:       display,
		Scheduled:     scheduled,
		Expected:      expected,
		Journey:       &sl.Journey{State: "NORMALPROGRESS", PredictionState: "NORMAL"},
		StopPoint:     &sl.StopPoint{Designation: "3"},
		StopArea:      &sl.StopArea{Name: "Flemingsberg"},
		Line:          &sl.Line{Designation: line, TransportMode: "TRAIN"},
	}
}

func cancelledDep(line, display string) sl.Departure {
	d := fullDep(line, "Märsta", "2024-03-01T10:02:00Z", "2024-03-01T10:02:00Z", display)
	d.Journey = &sl.Journey{State: "CANCELLED"}
	return d
}

func TestIsCanceled(t *testing.T) {
	tests := []struct {
		name string
		dep  sl.Departure
		want bool
	}{
		{
			name: "journey state cancelled",
			dep:  sl.Departure{Journey: &sl.Journey{State: "CANCELLED"}},
			want: true,
		},
		{
			name: "journey state normal",
			dep:  sl.Departure{Journey: &sl.Journey{State: "NORMALPROGRESS"}},
			want: false,
		},
		{
			name: "journey absent",
			dep:  sl.Departure{},
			want: false,
		},
		{
			// The nested journey state is canonical; a top-level state of
			// CANCELLED on its own does not cancel the departure.
			name: "top-level state ignored",
			dep:  sl.Departure{State: "CANCELLED", Journey: &sl.Journey{State: "NORMALPROGRESS"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCanceled(tt.dep); got != tt.want {
				t.Errorf("IsCanceled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	d := fullDep("41", "Södertälje centrum", "2024-03-01T10:00:00Z", "2024-03-01T10:05:00Z", "5 min")
	d.Deviations = []sl.Deviation{{Message: "Shortened train"}, {Message: ""}}

	a := utcView(3).Attributes(d, viewNow)

	if a.Line != "41" || a.Destination != "Södertälje centrum" {
		t.Errorf("line/destination = %q/%q", a.Line, a.Destination)
	}
	if a.DelayMinutes != 5 {
		t.Errorf("DelayMinutes = %d, want 5", a.DelayMinutes)
	}
	if a.MinutesUntil != 5 {
		t.Errorf("MinutesUntil = %d, want 5", a.MinutesUntil)
	}
	if a.TimeFormatted != "10:05" {
		t.Errorf("TimeFormatted = %q, want 10:05", a.TimeFormatted)
	}
	if !a.RealTime {
		t.Error("RealTime should be true for prediction_state NORMAL")
	}
	if a.Canceled {
		t.Error("departure should not be cancelled")
	}
	if a.Platform != "3" {
		t.Errorf("Platform = %q, want 3", a.Platform)
	}
	if a.Agency != Agency {
		t.Errorf("Agency = %q, want %q", a.Agency, Agency)
	}
	if a.StopArea != "Flemingsberg" {
		t.Errorf("StopArea = %q", a.StopArea)
	}
	if len(a.Deviations) != 1 || a.Deviations[0] != "Shortened train" {
		t.Errorf("Deviations = %v, want the one non-empty message", a.Deviations)
	}
}

func TestAttributesDegradedTimestamps(t *testing.T) {
	// Absent journey state and unparsable timestamps degrade instead of
	// failing: delay renders as 0, minutes as 0, formatted time empty.
	d := sl.Departure{
		Destination: "Bålsta",
		Scheduled:   "bad",
		Expected:    "",
		Line:        &sl.Line{Designation: "38", TransportMode: "TRAIN"},
	}

	a := utcView(3).Attributes(d, viewNow)
	if a.DelayMinutes != 0 {
		t.Errorf("DelayMinutes = %d, want 0", a.DelayMinutes)
	}
	if a.MinutesUntil != 0 {
		t.Errorf("MinutesUntil = %d, want 0", a.MinutesUntil)
	}
	if a.TimeFormatted != "" {
		t.Errorf("TimeFormatted = %q, want empty", a.TimeFormatted)
	}
	if a.RealTime {
		t.Error("RealTime should be false without journey info")
	}
	if a.Canceled {
		t.Error("Canceled should be false without journey info")
	}
}

func TestScenarioTrainDelay(t *testing.T) {
	// One TRAIN departure scheduled 10:00:00Z, expected 10:05:00Z, no
	// journey state: delay 5, not cancelled.
	d := sl.Departure{
		Scheduled: "2024-03-01T10:00:00Z",
		Expected:  "2024-03-01T10:05:00Z",
		Line:      &sl.Line{Designation: "41", TransportMode: "TRAIN"},
	}
	a := utcView(3).Attributes(d, viewNow)
	if a.DelayMinutes != 5 {
		t.Errorf("DelayMinutes = %d, want 5", a.DelayMinutes)
	}
	if a.Canceled {
		t.Error("cancellation should be false with journey state absent")
	}
}

func TestSlotAvailability(t *testing.T) {
	list := []sl.Departure{
		fullDep("41", "Södertälje centrum", "2024-03-01T10:00:00Z", "2024-03-01T10:05:00Z", "5 min"),
		fullDep("43", "Nynäshamn", "2024-03-01T10:10:00Z", "2024-03-01T10:10:00Z", "10 min"),
	}
	v := utcView(4)

	for _, tt := range []struct {
		index int
		want  bool
	}{
		{0, true}, {1, true}, {2, false}, {3, false}, {7, false}, {-1, false},
	} {
		slot := v.Slot(list, tt.index, viewNow)
		if slot.Available != tt.want {
			t.Errorf("slot %d available = %v, want %v", tt.index, slot.Available, tt.want)
		}
	}

	slots := v.AllSlots(list, viewNow)
	if len(slots) != 4 {
		t.Fatalf("AllSlots returned %d slots, want 4", len(slots))
	}
	if slots[0].Value != "5 min" {
		t.Errorf("slot 0 value = %q, want upstream display string", slots[0].Value)
	}
	if slots[2].Value != "" || slots[2].Available {
		t.Errorf("slot 2 should be empty and unavailable")
	}
}

func TestNextView(t *testing.T) {
	v := utcView(3)

	empty := v.Next(nil, viewNow)
	if empty.Available || empty.Value != "" {
		t.Errorf("next over empty list should be unavailable with no value")
	}
	if len(empty.Upcoming) != 0 {
		t.Errorf("next over empty list should have no upcoming entries")
	}

	list := []sl.Departure{
		fullDep("41", "Södertälje centrum", "2024-03-01T10:00:00Z", "2024-03-01T10:05:00Z", "5 min"),
		fullDep("43", "Nynäshamn", "2024-03-01T10:10:00Z", "2024-03-01T10:10:00Z", "10 min"),
	}
	next := v.Next(list, viewNow)
	if !next.Available {
		t.Fatal("next should be available")
	}
	if next.Value != "5 min" {
		t.Errorf("next value = %q, want the first display string", next.Value)
	}
	if len(next.Upcoming) != 2 {
		t.Errorf("upcoming = %d entries, want 2", len(next.Upcoming))
	}
}

func TestNextActiveSkipsCancelled(t *testing.T) {
	list := []sl.Departure{
		cancelledDep("41", "2 min"),
		cancelledDep("41", "7 min"),
		fullDep("41", "Södertälje centrum", "2024-03-01T10:10:00Z", "2024-03-01T10:12:00Z", "12 min"),
		fullDep("43", "Nynäshamn", "2024-03-01T10:20:00Z", "2024-03-01T10:20:00Z", "20 min"),
	}

	s := utcView(3).NextActive(list, viewNow)
	if !s.Available {
		t.Fatal("next-active should be available")
	}
	if s.Value != "12 min" {
		t.Errorf("value = %q, want countdown of the first active departure", s.Value)
	}
	if len(s.Upcoming) != 4 {
		t.Errorf("upcoming should still list all %d entries, got %d", len(list), len(s.Upcoming))
	}
	if !s.Upcoming[0].Canceled || s.Upcoming[2].Canceled {
		t.Errorf("upcoming cancellation flags wrong: %+v", s.Upcoming)
	}
}

func TestNextActiveAllCancelled(t *testing.T) {
	list := []sl.Departure{cancelledDep("41", "2 min"), cancelledDep("41", "7 min")}

	s := utcView(3).NextActive(list, viewNow)
	if !s.Available {
		t.Error("an all-cancelled list is still available")
	}
	if s.Value != "" {
		t.Errorf("value = %q, want empty with no active departure", s.Value)
	}
	if len(s.Upcoming) != 2 {
		t.Errorf("upcoming = %d entries, want 2", len(s.Upcoming))
	}
}

func TestNextActiveCountdownRendering(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		display  string
		want     string
	}{
		{name: "departing now", expected: "2024-03-01T10:00:30Z", display: "Nu", want: DepartingNow},
		{name: "under an hour", expected: "2024-03-01T10:25:00Z", display: "25 min", want: "25 min"},
		{name: "an hour or more", expected: "2024-03-01T11:30:00Z", display: "11:30", want: "11:30"},
		{name: "no expected falls back to display", expected: "", display: "10:05", want: "10:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := fullDep("41", "Södertälje centrum", "2024-03-01T10:00:00Z", tt.expected, tt.display)
			s := utcView(3).NextActive([]sl.Departure{d}, viewNow)
			if s.Value != tt.want {
				t.Errorf("value = %q, want %q", s.Value, tt.want)
			}
		})
	}
}

func TestPositionLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "Next"}, {1, "2nd"}, {2, "3rd"}, {3, "4th"}, {9, "10th"},
	}
	for _, tt := range tests {
		if got := PositionLabel(tt.index); got != tt.want {
			t.Errorf("PositionLabel(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestViewsOverEmptySnapshot(t *testing.T) {
	// An empty departures page filters to an empty list; every policy
	// reports unavailable or empty positions.
	v := utcView(2)
	var list []sl.Departure

	for _, slot := range v.AllSlots(list, viewNow) {
		if slot.Available {
			t.Errorf("slot %d available over empty list", slot.Index)
		}
	}
	if v.Next(list, viewNow).Available {
		t.Error("next available over empty list")
	}
	if v.NextActive(list, viewNow).Available {
		t.Error("next-active available over empty list")
	}
}
