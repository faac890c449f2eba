// Package departures is the departure aggregation and presentation engine.
//
// It turns raw SL departure records into a filtered, display-ready view of
// upcoming departures, refreshed on a fixed interval:
//
//   - Filter narrows a raw departures page by transport mode, direction
//     code and line designation, preserving upstream order.
//   - View derives the presentation states: a fixed number of slots, a
//     single next departure, or the next departure that is not cancelled.
//   - Board owns the polling loop for one configured target: it fetches,
//     filters, publishes an immutable snapshot, and retains the previous
//     snapshot across transient refresh failures.
//   - Group runs several independent boards concurrently.
//
// Derivations are pure functions of a snapshot and a clock reading; they
// never fail and may be recomputed on every read.
package departures
