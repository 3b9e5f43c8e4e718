package server

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serverhub/internal/types"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (l *mockLogger) Debug(msg string, fields ...any) {}
func (l *mockLogger) Info(msg string, fields ...any)  {}
func (l *mockLogger) Warn(msg string, fields ...any)  {}
func (l *mockLogger) Error(msg string, fields ...any) {}
func (l *mockLogger) With(fields ...any) types.Logger { return l }

func testConfig() *types.HubConfig {
	cfg := &types.HubConfig{
		ListenAddr:   "127.0.0.1:0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	cfg.HTTP2.Enabled = true
	return cfg
}

func TestServerLifecycle(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.Proto)
	})
	srv := New(testConfig(), handler, &mockLogger{})

	require.NoError(t, srv.Start())
	assert.True(t, srv.IsRunning())
	assert.Error(t, srv.Start())

	resp, err := http.Get("http://" + srv.Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	assert.False(t, srv.IsRunning())
	require.NoError(t, srv.Stop(ctx))

	_, err = http.Get("http://" + srv.Addr() + "/")
	assert.Error(t, err)
}

func TestStartFailsOnMissingCertificate(t *testing.T) {
	cfg := testConfig()
	cfg.TLS.Enabled = true
	cfg.TLS.CertFile = "/nonexistent/cert.pem"
	cfg.TLS.KeyFile = "/nonexistent/key.pem"

	srv := New(cfg, http.NotFoundHandler(), &mockLogger{})
	err := srv.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load certificate")
	assert.False(t, srv.IsRunning())
}

func TestGetTLSVersion(t *testing.T) {
	assert.Equal(t, uint16(tls.VersionTLS13), getTLSVersion("1.3"))
	assert.Equal(t, uint16(tls.VersionTLS12), getTLSVersion("1.2"))
	assert.Equal(t, uint16(tls.VersionTLS12), getTLSVersion(""))
}
