// Package config provides configuration management for serverhub
package config

import (
	"github.com/spf13/viper"
)

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("read_timeout", "15s")
	v.SetDefault("write_timeout", "15s")
	v.SetDefault("idle_timeout", "120s")
	v.SetDefault("shutdown_timeout", "30s")

	// TLS defaults
	v.SetDefault("tls.enabled", false)
	v.SetDefault("tls.min_version", "1.2")

	// HTTP/2 defaults
	v.SetDefault("http2.enabled", true)

	// Rate limiting defaults
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)

	// Middleware defaults
	v.SetDefault("middleware.compression.enabled", true)
	v.SetDefault("middleware.compression.level", 5)
	v.SetDefault("middleware.compression.types", []string{"text/html", "text/css", "text/javascript", "application/javascript", "application/json", "text/plain"})
	v.SetDefault("middleware.compression.algorithms", []string{"br", "zstd", "gzip"})
	v.SetDefault("middleware.headers.security", true)
	v.SetDefault("middleware.headers.csp", "default-src 'self'; style-src 'self' 'unsafe-inline'")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.access_logs", true)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.dsn", "serverhub.db")

	// Page defaults
	v.SetDefault("page.title", "GAME SERVER")
	v.SetDefault("page.default_locale", "ru")
	v.SetDefault("page.support_label", "24/7")
}
