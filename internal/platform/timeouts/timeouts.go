// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Generation caps a single description generation call to the model API.
const Generation = 20 * time.Second

// StoreOpen caps how long a SQLite store may take to open and migrate.
const StoreOpen = 10 * time.Second
