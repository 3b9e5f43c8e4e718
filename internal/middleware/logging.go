package middleware

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"serverhub/internal/types"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// loggingResponseWriter captures response details for logging
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if lrw.statusCode == 0 {
		lrw.statusCode = code
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.statusCode == 0 {
		lrw.statusCode = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytes += n
	return n, err
}

func (lrw *loggingResponseWriter) Flush() {
	if f, ok := lrw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (lrw *loggingResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := lrw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("response writer does not support hijacking")
}

// AccessLogging logs one line per request, tagged with a request ID.
// Incoming X-Request-ID values are kept; otherwise a UUID is generated.
func AccessLogging(logger types.Logger) types.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(RequestIDHeader, requestID)
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLogger := logger.With("request_id", requestID)
			ctx := ContextWithLogger(r.Context(), reqLogger)

			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r.WithContext(ctx))

			if lrw.statusCode == 0 {
				lrw.statusCode = http.StatusOK
			}

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = path + "?" + r.URL.RawQuery
			}

			fields := []any{
				"method", r.Method,
				"path", path,
				"status", lrw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", lrw.bytes,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			}

			switch {
			case lrw.statusCode >= 500:
				reqLogger.Error("request failed", fields...)
			case lrw.statusCode >= 400:
				reqLogger.Warn("request error", fields...)
			default:
				reqLogger.Info("request completed", fields...)
			}
		})
	}
}

type contextKey string

const loggerKey contextKey = "logger"

// ContextWithLogger adds a logger to the context
func ContextWithLogger(ctx context.Context, logger types.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the request logger, or fallback when none is set
func LoggerFromContext(ctx context.Context, fallback types.Logger) types.Logger {
	if logger, ok := ctx.Value(loggerKey).(types.Logger); ok {
		return logger
	}
	return fallback
}
