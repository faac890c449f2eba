package sl

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// ErrSearchTooShort is returned by SearchSites for terms under two
// characters, which would match most of the directory.
var ErrSearchTooShort = errors.New("search term must be at least 2 characters")

// LineOption is one selectable line at a site, projected from a
// departures page during configuration.
type LineOption struct {
	Designation  string
	GroupOfLines string
}

// DirectionOption is one selectable direction at a site, keyed by the
// upstream numeric direction code.
type DirectionOption struct {
	Code        string
	Destination string
}

// SearchSites fetches the site directory and keeps sites whose name
// contains the term, case-insensitively.
func (c *Client) SearchSites(ctx context.Context, term string) ([]Site, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if len(term) < 2 {
		return nil, ErrSearchTooShort
	}
	sites, err := c.Sites(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]Site, 0)
	for _, s := range sites {
		if strings.Contains(strings.ToLower(s.Name), term) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

// Lines projects the unique lines of one transport mode serving a site,
// first seen wins, in departures-page order.
func (c *Client) Lines(ctx context.Context, siteID int, transportMode string) ([]LineOption, error) {
	deps, err := c.Departures(ctx, siteID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	lines := make([]LineOption, 0)
	for _, d := range deps {
		if d.Line == nil || d.Line.TransportMode != transportMode {
			continue
		}
		if d.Line.Designation == "" || seen[d.Line.Designation] {
			continue
		}
		seen[d.Line.Designation] = true
		lines = append(lines, LineOption{
			Designation:  d.Line.Designation,
			GroupOfLines: d.Line.GroupOfLines,
		})
	}
	return lines, nil
}

// Directions projects the unique direction codes of one transport mode at
// a site, optionally narrowed to a single line designation. First seen
// wins, in departures-page order.
func (c *Client) Directions(ctx context.Context, siteID int, transportMode, line string) ([]DirectionOption, error) {
	deps, err := c.Departures(ctx, siteID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	dirs := make([]DirectionOption, 0)
	for _, d := range deps {
		if d.Line == nil || d.Line.TransportMode != transportMode {
			continue
		}
		if line != "" && d.Line.Designation != line {
			continue
		}
		code := strconv.Itoa(d.DirectionCode)
		if d.DirectionCode == 0 || d.Destination == "" || seen[code] {
			continue
		}
		seen[code] = true
		dirs = append(dirs, DirectionOption{Code: code, Destination: d.Destination})
	}
	return dirs, nil
}
