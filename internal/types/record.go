package types

import "fmt"

// Status is the reported state of a game server
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusOnline || s == StatusOffline
}

// ServerRecord is the display metadata and counters of one game server
type ServerRecord struct {
	ID         int    `json:"id" yaml:"id" mapstructure:"id"`
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	Address    string `json:"address" yaml:"address" mapstructure:"address"`
	Status     Status `json:"status" yaml:"status" mapstructure:"status"`
	Players    int    `json:"players" yaml:"players" mapstructure:"players"`
	MaxPlayers int    `json:"max_players" yaml:"max_players" mapstructure:"max_players"`
	Version    string `json:"version" yaml:"version" mapstructure:"version"`
	Mode       string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// IsOnline returns true if the server reports online
func (r ServerRecord) IsOnline() bool {
	return r.Status == StatusOnline
}

// Validate checks a single record. Capacity of zero is accepted.
func (r ServerRecord) Validate() error {
	var errs MultiError
	if r.ID <= 0 {
		errs.Add(ValidationError{Field: "id", Message: "must be positive"})
	}
	if r.Name == "" {
		errs.Add(ValidationError{Field: "name", Message: "is required"})
	}
	if r.Address == "" {
		errs.Add(ValidationError{Field: "address", Message: "is required"})
	}
	if !r.Status.Valid() {
		errs.Add(ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", r.Status)})
	}
	if r.Players < 0 {
		errs.Add(ValidationError{Field: "players", Message: "must not be negative"})
	}
	if r.MaxPlayers < 0 {
		errs.Add(ValidationError{Field: "max_players", Message: "must not be negative"})
	}
	if errs.HasErrors() {
		return fmt.Errorf("%w: server %d: %v", ErrInvalidRecord, r.ID, errs)
	}
	return nil
}

// ValidateRecords checks every record and that IDs are unique
func ValidateRecords(records []ServerRecord) error {
	var errs MultiError
	seen := make(map[int]bool, len(records))
	for _, r := range records {
		errs.Add(r.Validate())
		if seen[r.ID] {
			errs.Add(fmt.Errorf("%w: duplicate server id %d", ErrInvalidRecord, r.ID))
		}
		seen[r.ID] = true
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// DefaultRecords returns the built-in server list
func DefaultRecords() []ServerRecord {
	return []ServerRecord{
		{ID: 1, Name: "MAIN SERVER", Address: "play.server.net", Status: StatusOnline, Players: 847, MaxPlayers: 1000, Version: "1.20.4", Mode: "Survival"},
		{ID: 2, Name: "PVP ARENA", Address: "pvp.server.net", Status: StatusOnline, Players: 342, MaxPlayers: 500, Version: "1.20.4", Mode: "PvP"},
		{ID: 3, Name: "CREATIVE", Address: "creative.server.net", Status: StatusOnline, Players: 156, MaxPlayers: 300, Version: "1.20.4", Mode: "Creative"},
		{ID: 4, Name: "MINI GAMES", Address: "games.server.net", Status: StatusOffline, Players: 0, MaxPlayers: 500, Version: "1.20.4", Mode: "MiniGames"},
	}
}
