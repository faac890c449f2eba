package departures

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/sl-departures/sl"
)

// Agency is the attribute constant identifying the operator.
const Agency = "SL"

// DepartingNow is the next-active display value for a departure whose
// expected time is within the current minute.
const DepartingNow = "Now"

// Policy selects how a board's filtered list is presented.
type Policy string

const (
	// PolicySlots exposes a fixed number of positions, one departure each.
	PolicySlots Policy = "slots"
	// PolicyNext exposes the first departure of the list.
	PolicyNext Policy = "next"
	// PolicyNextActive exposes the first departure that is not cancelled.
	PolicyNextActive Policy = "next_active"
)

// ValidPolicy reports whether p is one of the known presentation policies.
func ValidPolicy(p Policy) bool {
	return p == PolicySlots || p == PolicyNext || p == PolicyNextActive
}

// Attributes is the derived payload for one departure, shaped for
// timetable card rendering. All three presentation policies share it.
type Attributes struct {
	Line          string   `json:"line"`
	Destination   string   `json:"destination"`
	ScheduledTime string   `json:"scheduled_time"`
	ExpectedTime  string   `json:"expected_time"`
	TimeFormatted string   `json:"time_formatted"`
	MinutesUntil  int      `json:"minutes_until"`
	TransportMode string   `json:"transport_mode"`
	RealTime      bool     `json:"real_time"`
	DelayMinutes  int      `json:"delay_minutes"`
	Canceled      bool     `json:"canceled"`
	Platform      string   `json:"platform"`
	Agency        string   `json:"agency"`
	Direction     string   `json:"direction"`
	State         string   `json:"state"`
	StopArea      string   `json:"stop_area"`
	Deviations    []string `json:"deviations,omitempty"`
}

// IsCanceled reports whether a departure is cancelled. The nested journey
// state is the canonical source; the top-level state field disagrees with
// it across upstream payload variants and is exposed verbatim in the
// attribute payload instead of being consulted here.
func IsCanceled(d sl.Departure) bool {
	return d.Journey != nil && d.Journey.State == "CANCELLED"
}

// SlotState is the presentation of one fixed board position.
type SlotState struct {
	Index      int        `json:"index"`
	Label      string     `json:"label"`
	Value      string     `json:"value"`
	Available  bool       `json:"available"`
	Attributes Attributes `json:"attributes"`
}

// NextState is the presentation of the next and next-active policies.
// Value is empty when no usable departure exists; Available tracks list
// presence, not value presence, so an all-cancelled list is still
// available with an empty value.
type NextState struct {
	Value     string       `json:"value"`
	Available bool         `json:"available"`
	Upcoming  []Attributes `json:"upcoming"`
}

// View derives presentation states from a filtered departure list. It
// holds no data, only display configuration, and every method is a pure
// function of (list, now).
type View struct {
	// Slots is the number of fixed positions for PolicySlots.
	Slots int
	// Location is the display zone for clock formatting and the parse
	// frame for naive timestamps. Nil means time.Local.
	Location *time.Location
}

func (v View) loc() *time.Location {
	if v.Location != nil {
		return v.Location
	}
	return time.Local
}

// Attributes derives the shared payload for one departure.
func (v View) Attributes(d sl.Departure, now time.Time) Attributes {
	a := Attributes{
		Destination:   d.Destination,
		ScheduledTime: d.Scheduled,
		ExpectedTime:  d.Expected,
		MinutesUntil:  MinutesUntil(d.Expected, now, v.loc()),
		Agency:        Agency,
		Direction:     d.Direction,
		State:         d.State,
		Canceled:      IsCanceled(d),
	}
	if d.Line != nil {
		a.Line = d.Line.Designation
		a.TransportMode = d.Line.TransportMode
	}
	if d.Journey != nil {
		a.RealTime = d.Journey.PredictionState == "NORMAL"
	}
	if d.StopPoint != nil {
		a.Platform = d.StopPoint.Designation
	}
	if d.StopArea != nil {
		a.StopArea = d.StopArea.Name
	}
	if formatted, ok := FormatClock(d.Expected, v.loc()); ok {
		a.TimeFormatted = formatted
	}
	if delay, ok := DelayMinutes(d.Scheduled, d.Expected); ok {
		a.DelayMinutes = delay
	}
	for _, dev := range d.Deviations {
		if dev.Message != "" {
			a.Deviations = append(a.Deviations, dev.Message)
		}
	}
	return a
}

// upcoming derives the attribute payload for every element of the list.
func (v View) upcoming(list []sl.Departure, now time.Time) []Attributes {
	out := make([]Attributes, 0, len(list))
	for _, d := range list {
		out = append(out, v.Attributes(d, now))
	}
	return out
}

// Slot derives the state of one fixed position. A position beyond the end
// of the list is unavailable with zero attributes.
func (v View) Slot(list []sl.Departure, index int, now time.Time) SlotState {
	s := SlotState{Index: index, Label: PositionLabel(index)}
	if index < 0 || index >= len(list) {
		return s
	}
	d := list[index]
	s.Value = d.Display
	s.Available = true
	s.Attributes = v.Attributes(d, now)
	return s
}

// AllSlots derives every configured position.
func (v View) AllSlots(list []sl.Departure, now time.Time) []SlotState {
	n := v.Slots
	if n <= 0 {
		n = DefaultSlots
	}
	slots := make([]SlotState, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, v.Slot(list, i, now))
	}
	return slots
}

// Next derives the next-departure state: the upstream display string of
// the first list element, with the full list as upcoming attributes.
func (v View) Next(list []sl.Departure, now time.Time) NextState {
	s := NextState{Upcoming: v.upcoming(list, now)}
	if len(list) == 0 {
		return s
	}
	s.Value = list[0].Display
	s.Available = true
	return s
}

// NextActive derives the next departure that is not cancelled. The value
// is a countdown rendering: "Now" within the current minute, "{m} min"
// under an hour, the clock time beyond that, and the upstream display
// string when no expected timestamp exists. Upcoming still lists the full
// list, cancelled entries included.
func (v View) NextActive(list []sl.Departure, now time.Time) NextState {
	s := NextState{
		Upcoming:  v.upcoming(list, now),
		Available: len(list) > 0,
	}
	for _, d := range list {
		if IsCanceled(d) {
			continue
		}
		s.Value = v.countdown(d, now)
		break
	}
	return s
}

func (v View) countdown(d sl.Departure, now time.Time) string {
	if d.Expected == "" {
		return d.Display
	}
	minutes := MinutesUntil(d.Expected, now, v.loc())
	switch {
	case minutes == 0:
		return DepartingNow
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	}
	if formatted, ok := FormatClock(d.Expected, v.loc()); ok {
		return formatted
	}
	return d.Display
}

// PositionLabel is the human-readable name of a slot position.
func PositionLabel(index int) string {
	switch index {
	case 0:
		return "Next"
	case 1:
		return "2nd"
	case 2:
		return "3rd"
	}
	return fmt.Sprintf("%dth", index+1)
}
