// Package sl is a client for the SL Transport integration API
// (https://transport.integration.sl.se/v1).
//
// It covers the two surfaces the departures engine needs:
//   - the departures endpoint for a site, fetched during steady-state polling
//   - the discovery endpoints used while configuring a board: site lookup,
//     and line/direction projections derived from one departures page
//
// The API is public and unauthenticated. All calls take a context and fail
// with either a *FetchError (network, timeout, non-2xx) or a *ParseError
// (malformed response body).
package sl
