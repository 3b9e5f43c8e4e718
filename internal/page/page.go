// Package page renders the server status page.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"

	"serverhub/internal/roster"
	"serverhub/internal/tr"
	"serverhub/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options is the configurable page content
type Options struct {
	Title        string
	SupportLabel string
	CommunityURL string
}

// OptionsFromConfig extracts page options from configuration
func OptionsFromConfig(cfg *types.HubConfig) Options {
	return Options{
		Title:        cfg.Page.Title,
		SupportLabel: cfg.Page.SupportLabel,
		CommunityURL: cfg.Page.CommunityURL,
	}
}

// Renderer builds and writes the status page
type Renderer struct {
	tmpl       *template.Template
	holder     *roster.Holder
	translator *tr.Translator
	logger     types.Logger
	options    atomic.Pointer[Options]
}

// NewRenderer parses the embedded templates
func NewRenderer(holder *roster.Holder, translator *tr.Translator, opts Options, logger types.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	r := &Renderer{
		tmpl:       tmpl,
		holder:     holder,
		translator: translator,
		logger:     logger,
	}
	r.SetOptions(opts)
	return r, nil
}

// SetOptions replaces the page options for later renders
func (r *Renderer) SetOptions(opts Options) {
	r.options.Store(&opts)
}

// Render writes the page for one roster snapshot
func (r *Renderer) Render(w io.Writer, snap *roster.Roster, loc *tr.Localizer) error {
	return r.tmpl.ExecuteTemplate(w, "index", r.Build(snap, loc))
}

// ServeHTTP renders the current snapshot. The language comes from ?lang=
// or the Accept-Language header.
func (r *Renderer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	loc := r.translator.Localizer(req.URL.Query().Get("lang"), req.Header.Get("Accept-Language"))

	var buf bytes.Buffer
	if err := r.Render(&buf, r.holder.Load(), loc); err != nil {
		r.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", loc.Tag.String())
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if req.Method != http.MethodHead {
		buf.WriteTo(w)
	}
}
