package page

import (
	"strconv"

	"serverhub/internal/roster"
	"serverhub/internal/tr"
)

// View is the template data for the whole page
type View struct {
	Lang    string
	Title   string
	Tagline string
	Stats   []Stat
	Heading string
	Labels  Labels
	Cards   []CardView
	CTA     CTA
}

// Stat is one tile of the hero banner
type Stat struct {
	Value string
	Label string
	Class string
}

// Labels are the translated strings shared by every card
type Labels struct {
	Mode    string
	Players string
	Version string
	Copy    string
}

// CardView adds presentation strings to a roster card
type CardView struct {
	roster.Card
	StatusText   string
	ConnectLabel string
	// Width is the occupancy as a CSS width, e.g. "84.7%"
	Width string
	Delay string
}

// CTA is the call-to-action panel
type CTA struct {
	Title  string
	Text   string
	Button string
	URL    string
}

// Build assembles the view for a snapshot in the localizer's language
func (r *Renderer) Build(snap *roster.Roster, loc *tr.Localizer) View {
	opts := r.options.Load()

	cards := snap.Cards()
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		status, connect := loc.T(tr.StatusOnline), loc.T(tr.ActionConnect)
		if !c.Online {
			status = loc.T(tr.StatusOffline)
		}
		if !c.ConnectEnabled {
			connect = loc.T(tr.ActionUnavailable)
		}
		views = append(views, CardView{
			Card:         c,
			StatusText:   status,
			ConnectLabel: connect,
			Width:        FormatPercent(c.OccupancyPercent),
			Delay:        strconv.FormatFloat(float64(c.Index)/10, 'f', -1, 64) + "s",
		})
	}

	return View{
		Lang:    loc.Tag.String(),
		Title:   opts.Title,
		Tagline: loc.T(tr.HeroTagline),
		Stats: []Stat{
			{Value: strconv.Itoa(snap.TotalPlayers()), Label: loc.T(tr.StatPlayers), Class: "text-primary"},
			{Value: strconv.Itoa(snap.OnlineServerCount()), Label: loc.T(tr.StatServers), Class: "text-secondary"},
			{Value: opts.SupportLabel, Label: loc.T(tr.StatSupport), Class: "text-accent"},
		},
		Heading: loc.T(tr.ServersHeading),
		Labels: Labels{
			Mode:    loc.T(tr.LabelMode),
			Players: loc.T(tr.LabelPlayers),
			Version: loc.T(tr.LabelVersion),
			Copy:    loc.T(tr.ActionCopy),
		},
		Cards: views,
		CTA: CTA{
			Title:  loc.T(tr.CTATitle),
			Text:   loc.T(tr.CTAText),
			Button: loc.T(tr.CTAButton),
			URL:    opts.CommunityURL,
		},
	}
}

// FormatPercent renders a 0-100 value as a CSS percentage
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
