package roster

import (
	"sync/atomic"

	"serverhub/internal/types"
)

// Holder publishes the current roster. Readers always see one complete
// snapshot; Swap replaces it for later readers only.
type Holder struct {
	current atomic.Pointer[Roster]
}

// NewHolder creates a holder with an initial roster
func NewHolder(initial *Roster) *Holder {
	h := &Holder{}
	if initial == nil {
		initial = New(nil)
	}
	h.current.Store(initial)
	return h
}

// Load returns the current snapshot
func (h *Holder) Load() *Roster {
	return h.current.Load()
}

// Swap replaces the snapshot and returns the previous one
func (h *Holder) Swap(next *Roster) *Roster {
	if next == nil {
		next = New(nil)
	}
	return h.current.Swap(next)
}

// Replace builds a roster from records and swaps it in
func (h *Holder) Replace(records []types.ServerRecord) *Roster {
	return h.Swap(New(records))
}
