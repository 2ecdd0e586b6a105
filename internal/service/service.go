// Package service holds the vault use cases: authentication and document handling.
// Every operation waits out its configured latency before touching state.
package service

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("docvault/internal/service")
