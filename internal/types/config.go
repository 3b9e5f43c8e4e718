package types

import "time"

// HubConfig represents the complete serverhub configuration
type HubConfig struct {
	// Server configuration
	ListenAddr      string        `yaml:"listen_addr" mapstructure:"listen_addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// TLS with static certificates
	TLS struct {
		Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
		CertFile   string `yaml:"cert_file,omitempty" mapstructure:"cert_file"`
		KeyFile    string `yaml:"key_file,omitempty" mapstructure:"key_file"`
		MinVersion string `yaml:"min_version" mapstructure:"min_version"`
	} `yaml:"tls" mapstructure:"tls"`

	HTTP2 struct {
		Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	} `yaml:"http2" mapstructure:"http2"`

	// Rate limiting
	RateLimit struct {
		Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
		RPS      int    `yaml:"rps" mapstructure:"rps"`
		Burst    int    `yaml:"burst" mapstructure:"burst"`
		ByHeader string `yaml:"by_header,omitempty" mapstructure:"by_header"`
	} `yaml:"rate_limit" mapstructure:"rate_limit"`

	// Middleware configuration
	Middleware struct {
		Compression struct {
			Enabled    bool     `yaml:"enabled" mapstructure:"enabled"`
			Level      int      `yaml:"level" mapstructure:"level"`
			Types      []string `yaml:"types" mapstructure:"types"`
			Algorithms []string `yaml:"algorithms" mapstructure:"algorithms"` // gzip, br, zstd
		} `yaml:"compression" mapstructure:"compression"`

		Headers struct {
			Security bool              `yaml:"security" mapstructure:"security"`
			CSP      string            `yaml:"csp" mapstructure:"csp"`
			Custom   map[string]string `yaml:"custom,omitempty" mapstructure:"custom"`
		} `yaml:"headers" mapstructure:"headers"`
	} `yaml:"middleware" mapstructure:"middleware"`

	// Logging and monitoring
	Logging struct {
		Level      string `yaml:"level" mapstructure:"level"`
		Format     string `yaml:"format" mapstructure:"format"` // json, text
		AccessLogs bool   `yaml:"access_logs" mapstructure:"access_logs"`
	} `yaml:"logging" mapstructure:"logging"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"metrics" mapstructure:"metrics"`

	// Record source
	Storage struct {
		Type string `yaml:"type" mapstructure:"type"` // memory, sqlite
		DSN  string `yaml:"dsn,omitempty" mapstructure:"dsn"`
	} `yaml:"storage" mapstructure:"storage"`

	// Page content
	Page struct {
		Title         string `yaml:"title" mapstructure:"title"`
		DefaultLocale string `yaml:"default_locale" mapstructure:"default_locale"`
		SupportLabel  string `yaml:"support_label" mapstructure:"support_label"`
		CommunityURL  string `yaml:"community_url,omitempty" mapstructure:"community_url"`
	} `yaml:"page" mapstructure:"page"`

	// Servers is the bootstrap server list; empty means the built-in list
	Servers []ServerRecord `yaml:"servers,omitempty" mapstructure:"servers"`
}

// Records returns the configured servers or the built-in list
func (c *HubConfig) Records() []ServerRecord {
	if len(c.Servers) == 0 {
		return DefaultRecords()
	}
	out := make([]ServerRecord, len(c.Servers))
	copy(out, c.Servers)
	return out
}
