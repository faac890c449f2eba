package departures

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/sl-departures/sl"
)

// Mode is an SL transport mode.
type Mode string

const (
	ModeTrain Mode = "TRAIN"
	ModeMetro Mode = "METRO"
	ModeBus   Mode = "BUS"
	ModeTram  Mode = "TRAM"
	ModeShip  Mode = "SHIP"
	ModeFerry Mode = "FERRY"
)

// ModeLabels maps each mode to its display label.
var ModeLabels = map[Mode]string{
	ModeTrain: "Train (Pendeltåg)",
	ModeMetro: "Metro (Tunnelbana)",
	ModeBus:   "Bus",
	ModeTram:  "Tram (Spårvagn)",
	ModeShip:  "Ship",
	ModeFerry: "Ferry",
}

// Modes lists all transport modes in display order.
func Modes() []Mode {
	return []Mode{ModeTrain, ModeMetro, ModeBus, ModeTram, ModeShip, ModeFerry}
}

// FilterSpec narrows a raw departures page. The mode set is never empty
// when built through NewFilterSpec; an empty DirectionCode or Lines list
// accepts everything for that dimension. A spec is fixed at configuration
// time and never mutated mid-fetch.
type FilterSpec struct {
	Modes         []Mode
	DirectionCode string
	Lines         []string
}

// NewFilterSpec builds a spec from configuration input. An empty mode set
// defaults to TRAIN. lineFilter is a comma-separated list of line
// designations; entries are trimmed of surrounding whitespace here, once.
func NewFilterSpec(modes []Mode, directionCode, lineFilter string) FilterSpec {
	if len(modes) == 0 {
		modes = []Mode{ModeTrain}
	}
	return FilterSpec{
		Modes:         modes,
		DirectionCode: strings.TrimSpace(directionCode),
		Lines:         ParseLineFilter(lineFilter),
	}
}

// ParseLineFilter splits a comma-separated line filter into trimmed
// designations, dropping empty entries. Empty input means no line filter.
func ParseLineFilter(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// Filter applies the spec to a raw departures page as three independent
// narrowing passes: transport mode, direction code, line designation.
// Output order equals input order; records are never mutated. Records
// missing a sub-field never match a non-empty filter for that dimension.
func Filter(raw []sl.Departure, spec FilterSpec) []sl.Departure {
	filtered := make([]sl.Departure, 0, len(raw))
	for _, d := range raw {
		if d.Line != nil && modeAccepted(spec.Modes, d.Line.TransportMode) {
			filtered = append(filtered, d)
		}
	}

	if spec.DirectionCode != "" {
		kept := filtered[:0]
		for _, d := range filtered {
			if strconv.Itoa(d.DirectionCode) == spec.DirectionCode {
				kept = append(kept, d)
			}
		}
		filtered = kept
	}

	if len(spec.Lines) > 0 {
		kept := filtered[:0]
		for _, d := range filtered {
			if d.Line != nil && lineAccepted(spec.Lines, d.Line.Designation) {
				kept = append(kept, d)
			}
		}
		filtered = kept
	}

	return filtered
}

func modeAccepted(modes []Mode, transportMode string) bool {
	for _, m := range modes {
		if string(m) == transportMode {
			return true
		}
	}
	return false
}

func lineAccepted(lines []string, designation string) bool {
	if designation == "" {
		return false
	}
	for _, l := range lines {
		if l == designation {
			return true
		}
	}
	return false
}
