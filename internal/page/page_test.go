package page

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serverhub/internal/roster"
	"serverhub/internal/tr"
	"serverhub/internal/types"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (l *mockLogger) Debug(msg string, fields ...any) {}
func (l *mockLogger) Info(msg string, fields ...any)  {}
func (l *mockLogger) Warn(msg string, fields ...any)  {}
func (l *mockLogger) Error(msg string, fields ...any) {}
func (l *mockLogger) With(fields ...any) types.Logger { return l }

func newTestRenderer(t *testing.T, records []types.ServerRecord) *Renderer {
	translator, err := tr.NewTranslator("ru")
	require.NoError(t, err)

	r, err := NewRenderer(roster.NewHolder(roster.New(records)), translator, Options{
		Title:        "GAME SERVER",
		SupportLabel: "24/7",
	}, &mockLogger{})
	require.NoError(t, err)
	return r
}

func render(t *testing.T, r *Renderer, lang string) string {
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, r.holder.Load(), r.translator.Localizer(lang)))
	return buf.String()
}

// cardHTML returns the markup of the card for server id
func cardHTML(t *testing.T, body string, id string) string {
	marker := `data-server-id="` + id + `"`
	start := strings.Index(body, marker)
	require.NotEqual(t, -1, start, "card %s not rendered", id)
	end := strings.Index(body[start:], "</article>")
	require.NotEqual(t, -1, end)
	return body[start : start+end]
}

func TestRenderAggregates(t *testing.T) {
	body := render(t, newTestRenderer(t, types.DefaultRecords()), "en")

	assert.Contains(t, body, `<div class="stat-value text-primary">1345</div>`)
	assert.Contains(t, body, `<div class="stat-value text-secondary">3</div>`)
	assert.Contains(t, body, `<div class="stat-value text-accent">24/7</div>`)
	assert.Contains(t, body, `<html lang="en">`)
}

func TestRenderEmptyRoster(t *testing.T) {
	body := render(t, newTestRenderer(t, nil), "en")

	assert.Contains(t, body, `<div class="stat-value text-primary">0</div>`)
	assert.Contains(t, body, `<div class="stat-value text-secondary">0</div>`)
	assert.NotContains(t, body, "<article")
}

func TestRenderConnectDisabledOnlyWhenOffline(t *testing.T) {
	body := render(t, newTestRenderer(t, types.DefaultRecords()), "en")

	assert.Equal(t, 1, strings.Count(body, " disabled>"))
	for _, id := range []string{"1", "2", "3"} {
		card := cardHTML(t, body, id)
		assert.NotContains(t, card, " disabled>", "server %s", id)
		assert.Contains(t, card, "CONNECT")
		assert.Contains(t, card, `class="badge badge-default">ONLINE<`)
	}

	offline := cardHTML(t, body, "4")
	assert.Contains(t, offline, "MINI GAMES")
	assert.Contains(t, offline, " disabled>")
	assert.Contains(t, offline, "UNAVAILABLE")
	assert.Contains(t, offline, `class="badge badge-destructive">OFFLINE<`)
}

func TestRenderOccupancyWidth(t *testing.T) {
	body := render(t, newTestRenderer(t, types.DefaultRecords()), "en")

	assert.Contains(t, cardHTML(t, body, "1"), `<div class="bar" style="width: 84.7%"></div>`)
	assert.Contains(t, cardHTML(t, body, "2"), `style="width: 68.4%"`)
	assert.Contains(t, cardHTML(t, body, "3"), `style="width: 52%"`)
	assert.Contains(t, cardHTML(t, body, "4"), `style="width: 0%"`)
}

func TestRenderZeroCapacity(t *testing.T) {
	records := []types.ServerRecord{
		{ID: 1, Name: "EMPTY", Address: "empty.server.net", Status: types.StatusOnline, Players: 3, MaxPlayers: 0},
	}
	body := render(t, newTestRenderer(t, records), "en")
	assert.Contains(t, body, `style="width: 0%"`)
	assert.NotContains(t, body, "NaN")
	assert.NotContains(t, body, "Inf")
}

func TestRenderCopyCarriesAddress(t *testing.T) {
	body := render(t, newTestRenderer(t, types.DefaultRecords()), "en")

	assert.Equal(t, 4, strings.Count(body, "data-copy="))
	for _, rec := range types.DefaultRecords() {
		card := cardHTML(t, body, strconv.Itoa(rec.ID))
		assert.Contains(t, card, `data-copy="`+rec.Address+`"`)
		assert.Equal(t, 1, strings.Count(card, "data-copy="))
	}
}

func TestRenderKeepsDeclarationOrder(t *testing.T) {
	body := render(t, newTestRenderer(t, types.DefaultRecords()), "en")

	last := -1
	for _, rec := range types.DefaultRecords() {
		idx := strings.Index(body, "<h3>"+rec.Name+"</h3>")
		require.NotEqual(t, -1, idx, rec.Name)
		assert.Greater(t, idx, last)
		last = idx
	}
	assert.Contains(t, cardHTML(t, body, "4"), "animation-delay: 0.3s")
}

func TestRenderEscapesRecordFields(t *testing.T) {
	records := []types.ServerRecord{
		{ID: 1, Name: "<script>alert(1)</script>", Address: `x" onclick="evil`, Status: types.StatusOnline, Players: 1, MaxPlayers: 2},
	}
	body := render(t, newTestRenderer(t, records), "en")

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, `onclick="evil"`)
}

func TestRenderRussianByDefault(t *testing.T) {
	body := render(t, newTestRenderer(t, types.DefaultRecords()), "")

	assert.Contains(t, body, `<html lang="ru">`)
	assert.Contains(t, body, "НАШИ СЕРВЕРЫ")
	assert.Equal(t, 3, strings.Count(body, "ПОДКЛЮЧИТЬСЯ"))
	assert.Equal(t, 1, strings.Count(body, "НЕДОСТУПЕН"))
	assert.Contains(t, body, "Готов начать?")
}

func TestRenderCallToAction(t *testing.T) {
	r := newTestRenderer(t, types.DefaultRecords())
	body := render(t, r, "en")
	assert.Contains(t, body, `<button type="button" class="join neon-border">`)
	assert.Contains(t, body, "JOIN THE COMMUNITY")

	r.SetOptions(Options{Title: "BLOCK CRAFT", SupportLabel: "24/7", CommunityURL: "https://discord.gg/example"})
	body = render(t, r, "en")
	assert.Contains(t, body, `<a class="join neon-border" href="https://discord.gg/example">`)
	assert.Contains(t, body, "<title>BLOCK CRAFT</title>")
}

func TestServeHTTP(t *testing.T) {
	r := newTestRenderer(t, types.DefaultRecords())

	t.Run("accept language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "en-US,en;q=0.8")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "en", rec.Header().Get("Content-Language"))
		assert.Contains(t, rec.Body.String(), "OUR SERVERS")
	})

	t.Run("query overrides header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=ru", nil)
		req.Header.Set("Accept-Language", "en")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "ru", rec.Header().Get("Content-Language"))
		assert.Contains(t, rec.Body.String(), "НАШИ СЕРВЕРЫ")
	})

	t.Run("head has no body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Content-Length"))
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("snapshot swap", func(t *testing.T) {
		r.holder.Replace(nil)
		defer r.holder.Replace(types.DefaultRecords())

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
		assert.Contains(t, rec.Body.String(), `<div class="stat-value text-primary">0</div>`)
	})
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "84.7%", FormatPercent(84.7))
	assert.Equal(t, "100%", FormatPercent(100))
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "33.33%", FormatPercent(33.33))
}
