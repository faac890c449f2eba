// Package server exposes a read-only JSON surface over a group of
// departure boards: health, the board directory, and the rendered state
// of a single board under its configured presentation policy. It is a
// consumer of the departures engine, not part of it.
package server
