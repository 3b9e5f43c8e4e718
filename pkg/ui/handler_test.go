package ui

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerServesAssets(t *testing.T) {
	h := Handler()

	tests := []struct {
		path        string
		wantStatus  int
		contentType string
		contains    string
	}{
		{path: "/static/page.js", wantStatus: http.StatusOK, contentType: "javascript", contains: "navigator.clipboard.writeText(text)"},
		{path: "/static/page.css", wantStatus: http.StatusOK, contentType: "text/css", contains: ".track"},
		{path: "/static/missing.js", wantStatus: http.StatusNotFound},
		{path: "/static/", wantStatus: http.StatusNotFound},
		{path: "/static/../handler.go", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
				assert.Contains(t, rec.Body.String(), tt.contains)
				assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestHandlerRejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/static/page.js", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCopyScriptIgnoresFailures(t *testing.T) {
	data, err := staticFiles.ReadFile("static/page.js")
	assert.NoError(t, err)
	code := regexp.MustCompile(`(?m)//.*$`).ReplaceAllString(string(data), "")

	assert.Contains(t, code, "button.getAttribute('data-copy')")
	assert.Contains(t, code, ".catch(function () {})")
	assert.NotRegexp(t, `\bawait\b`, code)
	assert.NotRegexp(t, `\basync\b`, code)
}
