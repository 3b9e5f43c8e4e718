package roster

import "serverhub/internal/types"

// Badge variants used by the status badge
const (
	BadgeDefault     = "default"
	BadgeDestructive = "destructive"
)

// Card is the render model for one server
type Card struct {
	Index            int
	ID               int
	Name             string
	Address          string
	Mode             string
	Version          string
	Players          int
	MaxPlayers       int
	Online           bool
	BadgeVariant     string
	OccupancyPercent float64
	ConnectEnabled   bool
	// CopyText is what the copy action places on the clipboard
	CopyText string
}

// NewCard maps a record at position index to its card
func NewCard(index int, rec types.ServerRecord) Card {
	online := rec.IsOnline()
	badge := BadgeDefault
	if !online {
		badge = BadgeDestructive
	}
	return Card{
		Index:            index,
		ID:               rec.ID,
		Name:             rec.Name,
		Address:          rec.Address,
		Mode:             rec.Mode,
		Version:          rec.Version,
		Players:          rec.Players,
		MaxPlayers:       rec.MaxPlayers,
		Online:           online,
		BadgeVariant:     badge,
		OccupancyPercent: OccupancyPercent(rec),
		ConnectEnabled:   rec.Status != types.StatusOffline,
		CopyText:         rec.Address,
	}
}

// Cards maps every record to a card, in display order
func (r *Roster) Cards() []Card {
	cards := make([]Card, 0, len(r.records))
	for i, rec := range r.records {
		cards = append(cards, NewCard(i, rec))
	}
	return cards
}
