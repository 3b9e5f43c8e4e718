package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serverhub/internal/roster"
	"serverhub/internal/types"
)

func TestRecordRequestStats(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry(), 0)
	defer c.Stop()

	for i := 1; i <= 100; i++ {
		status := http.StatusOK
		if i%10 == 0 {
			status = http.StatusNotFound
		}
		c.RecordRequest(http.MethodGet, "/", status, time.Duration(i)*time.Millisecond)
	}

	stats := c.GetStats()
	assert.Equal(t, uint64(100), stats.TotalRequests)
	assert.Equal(t, uint64(10), stats.TotalErrors)
	assert.InDelta(t, 10.0, stats.ErrorRate, 0.001)
	assert.InDelta(t, 50.5, stats.AvgLatencyMs, 0.001)
	assert.InDelta(t, 50.0, stats.P50LatencyMs, 0.001)
	assert.InDelta(t, 95.0, stats.P95LatencyMs, 0.001)
	assert.InDelta(t, 99.0, stats.P99LatencyMs, 0.001)
	assert.Greater(t, stats.Goroutines, 0)
	assert.InDelta(t, 10.0, testutil.ToFloat64(c.errorRate), 0.001)

	c.Reset()
	stats = c.GetStats()
	assert.Zero(t, stats.TotalRequests)
	assert.Zero(t, stats.P99LatencyMs)
}

func TestLatencyWindowIsBounded(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry(), 0)
	defer c.Stop()

	for i := 0; i < maxLatencySamples+500; i++ {
		c.RecordRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	}

	c.latenciesMu.Lock()
	defer c.latenciesMu.Unlock()
	assert.Len(t, c.latencies, maxLatencySamples)
}

func TestObserveRoster(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry(), 0)
	defer c.Stop()

	c.ObserveRoster(roster.New(types.DefaultRecords()))

	assert.Equal(t, 1345.0, testutil.ToFloat64(c.playersOnline))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.serversOnline))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.serversTotal))
	assert.Equal(t, 847.0, testutil.ToFloat64(c.serverPlayers.WithLabelValues("1", "MAIN SERVER")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.serverUp.WithLabelValues("4", "MINI GAMES")))
	assert.Equal(t, 4, testutil.CollectAndCount(c.serverUp))

	c.ObserveRoster(roster.New(types.DefaultRecords()[:1]))
	assert.Equal(t, 847.0, testutil.ToFloat64(c.playersOnline))
	assert.Equal(t, 1, testutil.CollectAndCount(c.serverPlayers))

	c.ObserveRoster(roster.New(nil))
	assert.Zero(t, testutil.ToFloat64(c.playersOnline))
	assert.Zero(t, testutil.ToFloat64(c.serversOnline))
}

func TestHandlerServesRegistry(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry(), 0)
	defer c.Stop()
	c.ObserveRoster(roster.New(types.DefaultRecords()))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "serverhub_players_online 1345")
	assert.Contains(t, rec.Body.String(), `serverhub_server_players{id="2",name="PVP ARENA"} 342`)
}

func TestSystemSamplerStops(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	c.Stop()
	c.Stop()

	stats := c.GetStats()
	assert.GreaterOrEqual(t, stats.CPUPercent, 0.0)
	assert.GreaterOrEqual(t, stats.MemoryUsageMB, 0.0)
}
