package sl

// Site is a transit stop or station in SL's network.
type Site struct {
	ID           int      `json:"id"`
	GID          int64    `json:"gid"`
	Name         string   `json:"name"`
	Note         string   `json:"note,omitempty"`
	Abbreviation string   `json:"abbreviation,omitempty"`
	Aliases      []string `json:"alias,omitempty"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
}

// Line identifies the transit line a departure runs on.
type Line struct {
	ID            int    `json:"id"`
	Designation   string `json:"designation"`
	TransportMode string `json:"transport_mode"`
	GroupOfLines  string `json:"group_of_lines,omitempty"`
}

// Journey carries the per-journey realtime state. Its State field is the
// canonical cancellation signal for a departure; the top-level
// Departure.State also reports CANCELLED in some payload variants but is
// not authoritative.
type Journey struct {
	ID              int64  `json:"id"`
	State           string `json:"state"`
	PredictionState string `json:"prediction_state"`
}

// StopPoint is the physical stop position, including the platform or bay
// designation shown on signage.
type StopPoint struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
}

// StopArea groups stop points under one named area.
type StopArea struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Deviation is a disruption message attached to a single departure.
type Deviation struct {
	ImportanceLevel int    `json:"importance_level,omitempty"`
	Consequence     string `json:"consequence,omitempty"`
	Message         string `json:"message"`
}

// Departure is one upstream departure record, immutable once decoded.
// Scheduled and Expected are ISO-8601 timestamps kept as strings; the
// upstream emits both naive local times and zone-aware variants, and the
// engine decides the comparison frame at derivation time.
type Departure struct {
	Destination   string      `json:"destination"`
	DirectionCode int         `json:"direction_code"`
	Direction     string      `json:"direction"`
	State         string      `json:"state"`
	Display       string      `json:"display"`
	Scheduled     string      `json:"scheduled"`
	Expected      string      `json:"expected"`
	Journey       *Journey    `json:"journey,omitempty"`
	StopArea      *StopArea   `json:"stop_area,omitempty"`
	StopPoint     *StopPoint  `json:"stop_point,omitempty"`
	Line          *Line       `json:"line,omitempty"`
	Deviations    []Deviation `json:"deviations,omitempty"`
}

// departuresResponse is the envelope of the departures endpoint. A missing
// departures key decodes to a nil slice and is treated as an empty page.
type departuresResponse struct {
	Departures []Departure `json:"departures"`
}
