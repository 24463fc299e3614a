// Package timeouts centralizes the context deadlines handlers apply to
// store and asset-host I/O.
//
// Guidelines:
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries and multi-step writes
//   - Long: multi-file uploads to the asset host
package timeouts

import "time"

const (
	Ping   = 2 * time.Second
	Short  = 5 * time.Second
	Medium = 10 * time.Second
	Long   = 60 * time.Second
)
