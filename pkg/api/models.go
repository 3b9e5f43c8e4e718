package api

import (
	"serverhub/internal/roster"
	"serverhub/internal/types"
)

// ServerResponse is one server as exposed by the API
type ServerResponse struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Address    string       `json:"address"`
	Status     types.Status `json:"status"`
	Players    int          `json:"players"`
	MaxPlayers int          `json:"max_players"`
	Version    string       `json:"version"`
	Mode       string       `json:"mode"`
	// Occupancy is players/max as a 0-100 percentage
	Occupancy      float64 `json:"occupancy"`
	ConnectEnabled bool    `json:"connect_enabled"`
}

func newServerResponse(rec types.ServerRecord) ServerResponse {
	card := roster.NewCard(0, rec)
	return ServerResponse{
		ID:             rec.ID,
		Name:           rec.Name,
		Address:        rec.Address,
		Status:         rec.Status,
		Players:        rec.Players,
		MaxPlayers:     rec.MaxPlayers,
		Version:        rec.Version,
		Mode:           rec.Mode,
		Occupancy:      card.OccupancyPercent,
		ConnectEnabled: card.ConnectEnabled,
	}
}

// ServerListResponse is the response of GET /api/v1/servers
type ServerListResponse struct {
	Servers []ServerResponse `json:"servers"`
	Total   int              `json:"total"`
}

// StatsResponse is the response of GET /api/v1/stats
type StatsResponse struct {
	TotalPlayers  int             `json:"total_players"`
	OnlineServers int             `json:"online_servers"`
	ServerCount   int             `json:"server_count"`
	TotalCapacity int             `json:"total_capacity"`
	Uptime        string          `json:"uptime"`
	Requests      *RequestMetrics `json:"requests,omitempty"`
	System        *SystemMetrics  `json:"system,omitempty"`
}

// RequestMetrics represents request statistics
type RequestMetrics struct {
	Total        int64   `json:"total"`
	PerSecond    float64 `json:"per_second"`
	Errors       int64   `json:"errors"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
	P50LatencyMs float64 `json:"p50_latency_ms"`
	P95LatencyMs float64 `json:"p95_latency_ms"`
	P99LatencyMs float64 `json:"p99_latency_ms"`
	ErrorRate    float64 `json:"error_rate"`
}

// SystemMetrics represents host and process statistics
type SystemMetrics struct {
	Goroutines  int     `json:"goroutines"`
	MemoryMB    float64 `json:"memory_mb"`
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	CPUPercent  float64 `json:"cpu_percent"`
}

// HealthResponse is the response of GET /health
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	Version   string      `json:"version"`
	Build     BuildInfo   `json:"build"`
	Runtime   RuntimeInfo `json:"runtime"`
	Servers   int         `json:"servers"`
}

// BuildInfo is the build metadata in health responses
type BuildInfo struct {
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// RuntimeInfo is the process state in health responses
type RuntimeInfo struct {
	Goroutines int    `json:"goroutines"`
	GOMAXPROCS int    `json:"gomaxprocs"`
	Uptime     string `json:"uptime"`
	MemoryMB   uint64 `json:"memory_mb"`
	GCCount    uint32 `json:"gc_count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
