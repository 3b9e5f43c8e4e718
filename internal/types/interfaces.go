// Package types defines the core types and interfaces for serverhub
package types

import (
	"context"
	"net/http"
	"time"
)

// RecordSource provides the ordered server list
type RecordSource interface {
	// List returns all records in display order
	List(ctx context.Context) ([]ServerRecord, error)
	// Close releases any resources held by the source
	Close() error
}

// Middleware wraps HTTP handlers
type Middleware func(http.Handler) http.Handler

// MiddlewareChain manages middleware execution order
type MiddlewareChain interface {
	// Use adds middleware to the chain
	Use(middleware ...Middleware)
	// Then creates the final handler
	Then(handler http.Handler) http.Handler
}

// MetricsCollector gathers performance metrics
type MetricsCollector interface {
	// RecordRequest records request metrics
	RecordRequest(method, path string, statusCode int, duration time.Duration)
	// Handler returns the metrics endpoint handler
	Handler() http.Handler
}

// Logger provides structured logging
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}
