// Package lifecycle holds shared constants for application startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as server shutdown and
// database connectivity checks.
const DefaultTimeout = 30 * time.Second
