// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct
// tags. It describes one or more departure boards (site, filter, polling
// interval, presentation policy) plus the optional HTTP read surface.
package config
