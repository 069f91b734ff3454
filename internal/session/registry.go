package session

import (
	"sync"
	"time"

	"github.com/saanpro/saanbot/internal/leads"
)

// HistoryWindow is the number of recent turns kept per session.
const HistoryWindow = 3

// DefaultTTL is how long an idle session survives between sweeps.
const DefaultTTL = 30 * time.Minute

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
}

type state struct {
	contact       leads.ContactInfo
	history       []Turn
	leadCommitted bool
	lastSeen      time.Time
}

// Registry holds per-session conversation state. Sessions are created
// lazily on first reference and evicted by Sweep once idle past the TTL.
// All methods are safe for concurrent use; updates to a single session
// are atomic with respect to each other.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*state
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates a session registry. A zero ttl disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*state),
		ttl:      ttl,
		now:      time.Now,
	}
}

// getOrCreate returns the session state, creating it lazily.
// Caller must hold r.mu.
func (r *Registry) getOrCreate(id string) *state {
	s, ok := r.sessions[id]
	if !ok {
		s = &state{}
		r.sessions[id] = s
	}
	s.lastSeen = r.now()
	return s
}

// Known reports whether the session id has been seen before.
func (r *Registry) Known(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

// History returns a copy of the session's recent turns, oldest first.
func (r *Registry) History(id string) []Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.getOrCreate(id)
	history := make([]Turn, len(s.history))
	copy(history, s.history)
	return history
}

// AppendTurn pushes a completed turn, evicting the oldest once the
// window exceeds HistoryWindow entries.
func (r *Registry) AppendTurn(id, question, answer string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.getOrCreate(id)
	s.history = append(s.history, Turn{Question: question, Answer: answer})
	if len(s.history) > HistoryWindow {
		s.history = s.history[len(s.history)-HistoryWindow:]
	}
}

// SeedHistory primes a session's window from persisted turns (oldest
// first). It is a no-op when the session already has in-memory history.
func (r *Registry) SeedHistory(id string, turns []Turn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.getOrCreate(id)
	if len(s.history) > 0 {
		return
	}
	if len(turns) > HistoryWindow {
		turns = turns[len(turns)-HistoryWindow:]
	}
	s.history = append([]Turn(nil), turns...)
}

// MergeContact adopts extracted fields the session does not have yet.
// Existing values are never overwritten. Returns the merged contact and
// whether any field changed this call.
func (r *Registry) MergeContact(id string, extracted leads.ContactInfo) (leads.ContactInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.getOrCreate(id)

	changed := false
	if s.contact.Name == "" && extracted.Name != "" {
		s.contact.Name = extracted.Name
		changed = true
	}
	if s.contact.Phone == "" && extracted.Phone != "" {
		s.contact.Phone = extracted.Phone
		changed = true
	}
	if s.contact.Email == "" && extracted.Email != "" {
		s.contact.Email = extracted.Email
		changed = true
	}
	return s.contact, changed
}

// Contact returns the session's accumulated contact state.
func (r *Registry) Contact(id string) leads.ContactInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreate(id).contact
}

// LeadCommitted reports whether a lead has already been persisted for
// this session.
func (r *Registry) LeadCommitted(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreate(id).leadCommitted
}

// MarkLeadCommitted latches the session so later turns cannot re-emit
// the same contact.
func (r *Registry) MarkLeadCommitted(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getOrCreate(id).leadCommitted = true
}

// Sweep evicts sessions idle past the TTL and returns how many were
// removed. A zero TTL keeps everything.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ttl == 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
