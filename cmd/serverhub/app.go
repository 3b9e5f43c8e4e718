package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"serverhub/internal/metrics"
	"serverhub/internal/middleware"
	"serverhub/internal/page"
	"serverhub/internal/roster"
	"serverhub/internal/storage"
	"serverhub/internal/tr"
	"serverhub/internal/types"
	"serverhub/pkg/api"
	"serverhub/pkg/ui"
)

const systemSampleInterval = 5 * time.Second

type application struct {
	cfg       *types.HubConfig
	logger    types.Logger
	holder    *roster.Holder
	renderer  *page.Renderer
	collector *metrics.Collector
	limiter   *middleware.RateLimiter
	handler   http.Handler

	mu     sync.Mutex
	source types.RecordSource
}

// newApplication wires every component for cfg. registry may be nil to use
// the default Prometheus registry.
func newApplication(ctx context.Context, cfg *types.HubConfig, logger types.Logger, registry *prometheus.Registry) (*application, error) {
	source, err := storage.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	records, err := source.List(ctx)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("failed to load servers: %w", err)
	}

	translator, err := tr.NewTranslator(cfg.Page.DefaultLocale)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	holder := roster.NewHolder(roster.New(records))
	renderer, err := page.NewRenderer(holder, translator, page.OptionsFromConfig(cfg), logger)
	if err != nil {
		source.Close()
		return nil, err
	}

	interval := time.Duration(0)
	if registry == nil {
		interval = systemSampleInterval
	}
	collector := metrics.NewCollector(registry, interval)
	collector.ObserveRoster(holder.Load())

	app := &application{
		cfg:       cfg,
		logger:    logger,
		holder:    holder,
		renderer:  renderer,
		collector: collector,
		source:    source,
	}
	app.handler = app.buildHandler()

	logger.Info("Loaded servers",
		"count", holder.Load().Len(),
		"players", holder.Load().TotalPlayers(),
		"storage", cfg.Storage.Type,
	)
	return app, nil
}

// buildHandler mounts the page, assets and API and wraps them in the middleware chain
func (a *application) buildHandler() http.Handler {
	cfg := a.cfg
	apiRouter := api.New(a.holder, a.collector, a.logger, cfg).Router()

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/health", apiRouter)
	if cfg.Metrics.Enabled && !reservedPath(cfg.Metrics.Path) {
		mux.Handle(cfg.Metrics.Path, apiRouter)
	}
	mux.Handle(ui.Prefix, ui.Handler())
	mux.Handle("/", pageOnly(a.renderer))

	chain := middleware.NewChain(middleware.Headers(cfg))

	if cfg.Logging.AccessLogs {
		chain.Use(middleware.AccessLogging(a.logger))
	}

	if cfg.Metrics.Enabled {
		chain.Use(middleware.Conditional(middleware.ExceptPaths(cfg.Metrics.Path), middleware.Metrics(a.collector)))
	}

	if cfg.RateLimit.Enabled {
		a.limiter = middleware.NewRateLimiter(cfg)
		chain.Use(middleware.Conditional(middleware.ExceptPaths("/health", ui.Prefix), a.limiter.Middleware))
	}

	if cfg.Middleware.Compression.Enabled {
		chain.Use(middleware.Compression(cfg))
	}

	return chain.Then(mux)
}

// reservedPath reports whether p collides with a fixed route
func reservedPath(p string) bool {
	return p == "/" || p == "/health" || strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, ui.Prefix)
}

// pageOnly serves the page at "/" and 404s every other unmatched path
func pageOnly(index http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		index.ServeHTTP(w, r)
	})
}

// reload reopens the record source for cfg and swaps in a new roster snapshot.
// Listener and middleware settings need a restart.
func (a *application) reload(ctx context.Context, cfg *types.HubConfig) error {
	source, err := storage.New(ctx, cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to reopen storage: %w", err)
	}

	records, err := source.List(ctx)
	if err != nil {
		source.Close()
		return fmt.Errorf("failed to load servers: %w", err)
	}

	a.mu.Lock()
	old := a.source
	a.source = source
	a.mu.Unlock()

	if err := old.Close(); err != nil {
		a.logger.Warn("Failed to close previous storage", "error", err)
	}

	snap := roster.New(records)
	a.holder.Swap(snap)
	a.renderer.SetOptions(page.OptionsFromConfig(cfg))
	a.collector.ObserveRoster(snap)

	a.logger.Info("Reloaded servers", "count", snap.Len(), "players", snap.TotalPlayers())
	return nil
}

// Close stops background workers and releases the record source
func (a *application) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	a.collector.Stop()

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source.Close()
}
