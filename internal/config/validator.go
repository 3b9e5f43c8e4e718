package config

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/text/language"

	"serverhub/internal/types"
)

// Validate validates a HubConfig
func Validate(cfg *types.HubConfig) error {
	if cfg.ListenAddr == "" {
		return fmt.Errorf("%w: listen_addr is required", types.ErrInvalidConfiguration)
	}

	if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		return fmt.Errorf("%w: invalid listen_addr: %v", types.ErrInvalidConfiguration, err)
	}

	// Validate timeouts
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read_timeout must be positive", types.ErrInvalidConfiguration)
	}

	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("%w: write_timeout must be positive", types.ErrInvalidConfiguration)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", types.ErrInvalidConfiguration)
	}

	// Validate rate limiting
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RPS <= 0 {
			return fmt.Errorf("%w: rate_limit.rps must be positive", types.ErrInvalidConfiguration)
		}

		if cfg.RateLimit.Burst < cfg.RateLimit.RPS {
			return fmt.Errorf("%w: rate_limit.burst must be >= rps", types.ErrInvalidConfiguration)
		}
	}

	// Validate compression
	if cfg.Middleware.Compression.Enabled {
		validAlgorithms := map[string]bool{"br": true, "zstd": true, "gzip": true}
		for _, algo := range cfg.Middleware.Compression.Algorithms {
			if !validAlgorithms[algo] {
				return fmt.Errorf("%w: invalid compression algorithm: %s", types.ErrInvalidConfiguration, algo)
			}
		}
		if cfg.Middleware.Compression.Level < 1 || cfg.Middleware.Compression.Level > 11 {
			return fmt.Errorf("%w: middleware.compression.level must be between 1 and 11", types.ErrInvalidConfiguration)
		}
	}

	// Validate TLS
	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
			return fmt.Errorf("%w: tls.cert_file and tls.key_file are required", types.ErrInvalidConfiguration)
		}

		validVersions := map[string]bool{
			"1.2": true,
			"1.3": true,
		}

		if !validVersions[cfg.TLS.MinVersion] {
			return fmt.Errorf("%w: invalid tls.min_version: %s", types.ErrInvalidConfiguration, cfg.TLS.MinVersion)
		}
	}

	// Validate storage
	validStorageTypes := map[string]bool{
		"sqlite": true,
		"memory": true,
	}

	if !validStorageTypes[cfg.Storage.Type] {
		return fmt.Errorf("%w: invalid storage.type: %s", types.ErrInvalidConfiguration, cfg.Storage.Type)
	}

	// Validate metrics
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", types.ErrInvalidConfiguration)
	}

	// Validate logging
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("%w: invalid logging.level: %s", types.ErrInvalidConfiguration, cfg.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}

	if !validLogFormats[strings.ToLower(cfg.Logging.Format)] {
		return fmt.Errorf("%w: invalid logging.format: %s", types.ErrInvalidConfiguration, cfg.Logging.Format)
	}

	// Validate page
	if _, err := language.Parse(cfg.Page.DefaultLocale); err != nil {
		return fmt.Errorf("%w: invalid page.default_locale: %s", types.ErrInvalidConfiguration, cfg.Page.DefaultLocale)
	}

	// Validate servers
	if len(cfg.Servers) > 0 {
		if err := types.ValidateRecords(cfg.Servers); err != nil {
			return fmt.Errorf("%w: servers: %v", types.ErrInvalidConfiguration, err)
		}
	}

	return nil
}
