// Package view holds the per-session state of the receipt list: the
// current filter, the last fetched page, and the fetch phase. It exists
// so a late response from a superseded fetch can be recognized and
// discarded instead of overwriting newer results.
package view

import (
	"sync"

	"github.com/Denizcan35/barin/internal/core"
)

// Phase is the fetch lifecycle of the list.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Snapshot is an immutable copy of the list state for rendering.
type Snapshot struct {
	Filter   core.Filter
	Receipts []core.Receipt
	Total    int
	Phase    Phase
}

// ListState is the source of truth for one session's list view. All
// methods are safe for concurrent use; several HTMX partial requests may
// be in flight for the same session.
type ListState struct {
	mu         sync.Mutex
	filter     core.Filter
	receipts   []core.Receipt
	total      int
	phase      Phase
	generation uint64
}

// NewListState starts at the default filter in the idle phase.
func NewListState() *ListState {
	return &ListState{filter: core.DefaultFilter(), phase: PhaseIdle}
}

// SetFilter updates one filter field; anything except the page resets the
// page to 1 (delegated to core.Filter).
func (s *ListState) SetFilter(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Set(field, value)
}

// Filter returns a copy of the current filter.
func (s *ListState) Filter() core.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// BeginFetch marks the state loading and hands out a generation token.
// A newer BeginFetch invalidates every earlier token.
func (s *ListState) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.phase = PhaseLoading
	return s.generation
}

// Apply records a fetch outcome. A stale generation is dropped entirely:
// the last fetch to *begin* wins, regardless of response order. On error
// the previous collection stays in place and the phase becomes error; the
// loading phase always terminates.
func (s *ListState) Apply(gen uint64, page core.ReceiptPage, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	if err != nil {
		s.phase = PhaseError
		return true
	}
	s.receipts = page.Data
	s.total = page.Total
	s.phase = PhaseSuccess
	return true
}

// RemoveReceipt drops the matching record from the local collection,
// preserving the order of the rest. The server total is left as reported
// by the last fetch; it converges on the next one.
func (s *ListState) RemoveReceipt(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := core.FindByID(s.receipts, id)
	if i < 0 {
		return
	}
	s.receipts = append(s.receipts[:i], s.receipts[i+1:]...)
	if s.total > 0 {
		s.total--
	}
}

// ReplaceReceipt swaps in the updated record by identity match; records
// with other ids are untouched.
func (s *ListState) ReplaceReceipt(r core.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := core.FindByID(s.receipts, r.ID); i >= 0 {
		s.receipts[i] = r
	}
}

// Receipt returns the session's current copy of a record.
func (s *ListState) Receipt(id int64) (core.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := core.FindByID(s.receipts, id); i >= 0 {
		return s.receipts[i], true
	}
	return core.Receipt{}, false
}

// Snapshot copies the state for rendering.
func (s *ListState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	receipts := make([]core.Receipt, len(s.receipts))
	copy(receipts, s.receipts)
	return Snapshot{
		Filter:   s.filter,
		Receipts: receipts,
		Total:    s.total,
		Phase:    s.phase,
	}
}
