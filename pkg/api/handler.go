// Package api implements the read-only JSON API for serverhub
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"serverhub/internal/metrics"
	"serverhub/internal/middleware"
	"serverhub/internal/roster"
	"serverhub/internal/types"
	"serverhub/internal/version"
)

// Handler provides the REST API implementation
type Handler struct {
	holder    *roster.Holder
	collector *metrics.Collector
	logger    types.Logger
	config    *types.HubConfig
}

// New creates a new API handler instance
func New(holder *roster.Holder, collector *metrics.Collector, logger types.Logger, config *types.HubConfig) *Handler {
	return &Handler{
		holder:    holder,
		collector: collector,
		logger:    logger,
		config:    config,
	}
}

// Router returns the HTTP handler for the API
func (h *Handler) Router() http.Handler {
	mainRouter := mux.NewRouter()
	mainRouter.NotFoundHandler = jsonMiddleware(http.HandlerFunc(h.handleNotFound))
	mainRouter.MethodNotAllowedHandler = jsonMiddleware(http.HandlerFunc(h.handleMethodNotAllowed))

	// Prometheus exposition, outside the JSON middleware
	if h.config.Metrics.Enabled && h.collector != nil {
		mainRouter.Handle(h.config.Metrics.Path, h.collector.Handler()).Methods(http.MethodGet, http.MethodHead)
	}

	mainRouter.Handle("/health", jsonMiddleware(http.HandlerFunc(h.handleHealth))).Methods(http.MethodGet, http.MethodHead)

	// Full paths on the main router so a method mismatch reaches MethodNotAllowedHandler
	apiRoute := func(path string, fn http.HandlerFunc) {
		mainRouter.Handle(path, corsMiddleware(jsonMiddleware(fn))).Methods(http.MethodGet, http.MethodOptions)
	}
	apiRoute("/api/v1/servers", h.handleListServers)
	apiRoute("/api/v1/servers/{id}", h.handleGetServer)
	apiRoute("/api/v1/stats", h.handleStats)

	return mainRouter
}

// handleHealth handles GET /health
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.GetInfo()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   info.Version,
		Build: BuildInfo{
			GitCommit: info.GitCommit,
			BuildTime: info.BuildTime,
			GoVersion: info.GoVersion,
			Platform:  info.Platform,
		},
		Runtime: RuntimeInfo{
			Goroutines: runtime.NumGoroutine(),
			GOMAXPROCS: runtime.GOMAXPROCS(0),
			Uptime:     info.Uptime,
			MemoryMB:   mem.Alloc / 1024 / 1024,
			GCCount:    mem.NumGC,
		},
		Servers: h.holder.Load().Len(),
	})
}

// handleListServers handles GET /api/v1/servers
func (h *Handler) handleListServers(w http.ResponseWriter, r *http.Request) {
	records := h.holder.Load().Records()

	servers := make([]ServerResponse, 0, len(records))
	for _, rec := range records {
		servers = append(servers, newServerResponse(rec))
	}

	respondJSON(w, http.StatusOK, ServerListResponse{
		Servers: servers,
		Total:   len(servers),
	})
}

// handleGetServer handles GET /api/v1/servers/{id}
func (h *Handler) handleGetServer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondErrorWithCode(w, http.StatusBadRequest, "invalid server id", "invalid_request")
		return
	}

	rec, err := h.holder.Load().Get(id)
	if err != nil {
		if errors.Is(err, types.ErrServerNotFound) {
			respondErrorWithCode(w, http.StatusNotFound, types.ErrServerNotFound.Error(), "not_found")
			return
		}
		middleware.LoggerFromContext(r.Context(), h.logger).Error("failed to get server", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get server")
		return
	}

	respondJSON(w, http.StatusOK, newServerResponse(rec))
}

// handleStats handles GET /api/v1/stats
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := h.holder.Load()

	resp := StatsResponse{
		TotalPlayers:  snap.TotalPlayers(),
		OnlineServers: snap.OnlineServerCount(),
		ServerCount:   snap.Len(),
		TotalCapacity: snap.TotalCapacity(),
		Uptime:        version.GetInfo().Uptime,
	}

	if h.collector != nil {
		stats := h.collector.GetStats()
		resp.Uptime = version.FormatDuration(stats.Uptime)
		resp.Requests = &RequestMetrics{
			Total:        int64(stats.TotalRequests),
			PerSecond:    stats.RequestsPerSec,
			Errors:       int64(stats.TotalErrors),
			AvgLatencyMs: stats.AvgLatencyMs,
			P50LatencyMs: stats.P50LatencyMs,
			P95LatencyMs: stats.P95LatencyMs,
			P99LatencyMs: stats.P99LatencyMs,
			ErrorRate:    stats.ErrorRate,
		}
		resp.System = &SystemMetrics{
			Goroutines:  stats.Goroutines,
			MemoryMB:    stats.MemoryUsageMB,
			HeapAllocMB: stats.HeapAllocMB,
			CPUPercent:  stats.CPUPercent,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondErrorWithCode(w, http.StatusNotFound, "not found", "not_found")
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondErrorWithCode(w, http.StatusMethodNotAllowed, "method not allowed", "method_not_allowed")
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if data != nil {
		// Headers are already sent, nothing to report to the client
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
	})
}

// respondErrorWithCode writes an error response with error code
func respondErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
