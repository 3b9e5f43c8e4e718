// Package roster holds the fixed server list shown on the status page and the
// aggregates derived from it.
package roster

import (
	"math"

	"serverhub/internal/types"
)

// Roster is an immutable, ordered snapshot of server records
type Roster struct {
	records []types.ServerRecord
}

// New creates a roster from records, keeping their order. The slice is copied.
func New(records []types.ServerRecord) *Roster {
	cp := make([]types.ServerRecord, len(records))
	copy(cp, records)
	return &Roster{records: cp}
}

// Records returns a copy of the records in display order
func (r *Roster) Records() []types.ServerRecord {
	out := make([]types.ServerRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of servers
func (r *Roster) Len() int {
	return len(r.records)
}

// Get returns the record with the given ID
func (r *Roster) Get(id int) (types.ServerRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return types.ServerRecord{}, types.ErrServerNotFound
}

// TotalPlayers sums the player count across all servers
func (r *Roster) TotalPlayers() int {
	total := 0
	for _, rec := range r.records {
		total += rec.Players
	}
	return total
}

// OnlineServerCount counts servers reporting online
func (r *Roster) OnlineServerCount() int {
	count := 0
	for _, rec := range r.records {
		if rec.IsOnline() {
			count++
		}
	}
	return count
}

// TotalCapacity sums the capacity across all servers
func (r *Roster) TotalCapacity() int {
	total := 0
	for _, rec := range r.records {
		total += rec.MaxPlayers
	}
	return total
}

// Occupancy returns players/capacity bounded to [0, 1].
// A server without capacity has zero occupancy.
func Occupancy(rec types.ServerRecord) float64 {
	if rec.MaxPlayers <= 0 || rec.Players <= 0 {
		return 0
	}
	if rec.Players >= rec.MaxPlayers {
		return 1
	}
	return float64(rec.Players) / float64(rec.MaxPlayers)
}

// OccupancyPercent is Occupancy scaled to 0-100 and rounded to two decimals
func OccupancyPercent(rec types.ServerRecord) float64 {
	if rec.MaxPlayers <= 0 || rec.Players <= 0 {
		return 0
	}
	if rec.Players >= rec.MaxPlayers {
		return 100
	}
	pct := float64(rec.Players) * 100 / float64(rec.MaxPlayers)
	return math.Round(pct*100) / 100
}
