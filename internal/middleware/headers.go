package middleware

import (
	"net/http"

	"serverhub/internal/types"
)

// DefaultCSP allows the page's inline style attributes and same-origin assets
const DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'"

// SecurityHeaders adds security-related headers
func SecurityHeaders(csp string) types.Middleware {
	if csp == "" {
		csp = DefaultCSP
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", csp)
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			if r.TLS != nil {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CustomHeaders adds fixed headers to responses
func CustomHeaders(headers map[string]string) types.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, value := range headers {
				w.Header().Set(key, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ServerHeader sets the Server header
func ServerHeader(name string) types.Middleware {
	return CustomHeaders(map[string]string{"Server": name})
}

// Headers creates header middleware from configuration
func Headers(config *types.HubConfig) types.Middleware {
	cfg := config.Middleware.Headers
	custom := CustomHeaders(cfg.Custom)
	if !cfg.Security {
		return custom
	}
	security := SecurityHeaders(cfg.CSP)
	return func(next http.Handler) http.Handler {
		return security(custom(next))
	}
}
