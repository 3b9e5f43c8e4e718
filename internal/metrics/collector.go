// Package metrics tracks request statistics, host resource usage and the
// published server roster.
package metrics

import (
	"net/http"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"serverhub/internal/roster"
)

const maxLatencySamples = 10000

// Collector tracks request, system and roster metrics
type Collector struct {
	totalRequests atomic.Uint64
	totalErrors   atomic.Uint64

	latencies   []float64
	latenciesMu sync.Mutex

	cpuPercent  atomic.Value // float64
	memoryUsage atomic.Value // float64

	gatherer prometheus.Gatherer

	errorRate      prometheus.Gauge
	playersOnline  prometheus.Gauge
	serversOnline  prometheus.Gauge
	serversTotal   prometheus.Gauge
	serverPlayers  *prometheus.GaugeVec
	serverCapacity *prometheus.GaugeVec
	serverUp       *prometheus.GaugeVec

	startTime time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCollector registers the collector's metrics with registry, or with the
// default Prometheus registry when registry is nil, and starts sampling host
// CPU and memory every interval. Callers must Stop it.
func NewCollector(registry *prometheus.Registry, interval time.Duration) *Collector {
	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if registry != nil {
		reg, gatherer = registry, registry
	}
	factory := promauto.With(reg)

	c := &Collector{
		latencies: make([]float64, 0, maxLatencySamples),
		gatherer:  gatherer,
		startTime: time.Now(),
		stopCh:    make(chan struct{}),

		errorRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "serverhub_error_rate",
			Help: "Percentage of requests answered with a 4xx or 5xx status",
		}),
		playersOnline: factory.NewGauge(prometheus.GaugeOpts{
			Name: "serverhub_players_online",
			Help: "Total players across all published servers",
		}),
		serversOnline: factory.NewGauge(prometheus.GaugeOpts{
			Name: "serverhub_servers_online",
			Help: "Number of published servers with status online",
		}),
		serversTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "serverhub_servers_total",
			Help: "Number of published servers",
		}),
		serverPlayers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "serverhub_server_players",
			Help: "Current players per server",
		}, []string{"id", "name"}),
		serverCapacity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "serverhub_server_capacity",
			Help: "Player capacity per server",
		}, []string{"id", "name"}),
		serverUp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "serverhub_server_up",
			Help: "1 if the server is online, 0 otherwise",
		}, []string{"id", "name"}),
	}

	c.cpuPercent.Store(0.0)
	c.memoryUsage.Store(0.0)

	if interval > 0 {
		c.startSystemMetricsUpdater(interval)
	}
	return c
}

// RecordRequest records a request with its details
func (c *Collector) RecordRequest(method, path string, statusCode int, duration time.Duration) {
	c.totalRequests.Add(1)
	if statusCode >= 400 {
		c.totalErrors.Add(1)
	}

	c.latenciesMu.Lock()
	c.latencies = append(c.latencies, float64(duration)/float64(time.Millisecond))
	if len(c.latencies) > maxLatencySamples {
		c.latencies = c.latencies[len(c.latencies)-maxLatencySamples:]
	}
	c.latenciesMu.Unlock()
}

// Handler serves the registry the collector was registered with
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// ObserveRoster publishes the aggregates and per-server gauges of snap.
// Servers missing from snap are removed.
func (c *Collector) ObserveRoster(snap *roster.Roster) {
	c.playersOnline.Set(float64(snap.TotalPlayers()))
	c.serversOnline.Set(float64(snap.OnlineServerCount()))
	c.serversTotal.Set(float64(snap.Len()))

	c.serverPlayers.Reset()
	c.serverCapacity.Reset()
	c.serverUp.Reset()
	for _, rec := range snap.Records() {
		id := strconv.Itoa(rec.ID)
		c.serverPlayers.WithLabelValues(id, rec.Name).Set(float64(rec.Players))
		c.serverCapacity.WithLabelValues(id, rec.Name).Set(float64(rec.MaxPlayers))
		up := 0.0
		if rec.IsOnline() {
			up = 1
		}
		c.serverUp.WithLabelValues(id, rec.Name).Set(up)
	}
}

// Stats holds current metrics
type Stats struct {
	TotalRequests  uint64        `json:"total_requests"`
	TotalErrors    uint64        `json:"total_errors"`
	RequestsPerSec float64       `json:"requests_per_second"`
	ErrorRate      float64       `json:"error_rate"`
	AvgLatencyMs   float64       `json:"avg_latency_ms"`
	P50LatencyMs   float64       `json:"p50_latency_ms"`
	P95LatencyMs   float64       `json:"p95_latency_ms"`
	P99LatencyMs   float64       `json:"p99_latency_ms"`
	CPUPercent     float64       `json:"cpu_percent"`
	MemoryUsageMB  float64       `json:"memory_usage_mb"`
	HeapAllocMB    float64       `json:"heap_alloc_mb"`
	Goroutines     int           `json:"goroutines"`
	Uptime         time.Duration `json:"uptime"`
}

// GetStats returns current statistics
func (c *Collector) GetStats() Stats {
	total := c.totalRequests.Load()
	errors := c.totalErrors.Load()

	uptime := time.Since(c.startTime)
	seconds := uptime.Seconds()
	if seconds <= 0 {
		seconds = 1
	}

	errorRate := 0.0
	if total > 0 {
		errorRate = float64(errors) / float64(total) * 100
	}
	c.errorRate.Set(errorRate)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	avg, p50, p95, p99 := c.latencySummary()
	return Stats{
		TotalRequests:  total,
		TotalErrors:    errors,
		RequestsPerSec: float64(total) / seconds,
		ErrorRate:      errorRate,
		AvgLatencyMs:   avg,
		P50LatencyMs:   p50,
		P95LatencyMs:   p95,
		P99LatencyMs:   p99,
		CPUPercent:     c.cpuPercent.Load().(float64),
		MemoryUsageMB:  c.memoryUsage.Load().(float64),
		HeapAllocMB:    float64(m.HeapAlloc) / 1024 / 1024,
		Goroutines:     runtime.NumGoroutine(),
		Uptime:         uptime,
	}
}

// latencySummary returns the mean and the 50th, 95th and 99th percentiles
func (c *Collector) latencySummary() (avg, p50, p95, p99 float64) {
	c.latenciesMu.Lock()
	sorted := make([]float64, len(c.latencies))
	copy(sorted, c.latencies)
	c.latenciesMu.Unlock()

	if len(sorted) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(sorted)

	sum := 0.0
	for _, l := range sorted {
		sum += l
	}
	return sum / float64(len(sorted)), percentile(sorted, 50), percentile(sorted, 95), percentile(sorted, 99)
}

// percentile uses the nearest-rank method on sorted samples
func percentile(sorted []float64, p int) float64 {
	rank := (len(sorted)*p + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func (c *Collector) startSystemMetricsUpdater(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.sampleSystem()
			case <-c.stopCh:
				return
			}
		}
	}()
}

func (c *Collector) sampleSystem() {
	if percent, err := cpu.Percent(0, false); err == nil && len(percent) > 0 {
		c.cpuPercent.Store(percent[0])
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		c.memoryUsage.Store(float64(vmStat.Used) / 1024 / 1024)
	}
}

// Reset clears the request counters
func (c *Collector) Reset() {
	c.totalRequests.Store(0)
	c.totalErrors.Store(0)
	c.latenciesMu.Lock()
	c.latencies = c.latencies[:0]
	c.latenciesMu.Unlock()
}

// Stop stops the system sampler
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.wg.Wait()
}
