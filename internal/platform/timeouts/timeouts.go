// Package timeouts defines shared timeout constants for the HTTP surfaces.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Request caps the time spent answering a single lookup request.
const Request = 10 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreOpen caps opening and migrating the catalog database.
const StoreOpen = 15 * time.Second
