package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Registry owns the set of active sessions. It is the only shared mutable
// structure in the process; each session carries its own lock, so operations
// on different sessions never contend here beyond the map lookup.
type Registry struct {
	mu       sync.RWMutex
	cfg      Config
	sessions map[uint64]*Session
	nextID   uint64
	seed     int64
}

// OpenSession is one row of the joinable-session listing.
type OpenSession struct {
	ID         uint64 `json:"id"`
	Players    int    `json:"players"`
	EntryPrice int    `json:"entry_price"`
}

// NewRegistry returns an empty registry applying cfg to every session.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:      cfg,
		sessions: make(map[uint64]*Session),
		seed:     time.Now().UnixNano(),
	}
}

// Create opens a new waiting session at the given entry price. Identifiers
// are monotonic and never reused.
func (r *Registry) Create(entryPrice int) (*Session, error) {
	if !r.validPrice(entryPrice) {
		return nil, &Error{Kind: KindInvalidEntryPrice, Message: fmt.Sprintf("entry price %d not allowed", entryPrice)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	s := NewSession(id, entryPrice, r.cfg, rand.New(rand.NewSource(r.seed+int64(id))))
	r.sessions[id] = s
	return s, nil
}

// Get resolves a session by identifier. Finished sessions stay resolvable
// for result queries; their own state machine refuses further mutation.
func (r *Registry) Get(id uint64) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, &Error{Kind: KindSessionNotFound, Message: fmt.Sprintf("session %d not found", id)}
	}
	return s, nil
}

// ListOpen returns the sessions still accepting joins, in identifier order.
func (r *Registry) ListOpen() []OpenSession {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID() < sessions[j].ID() })
	open := make([]OpenSession, 0, len(sessions))
	for _, s := range sessions {
		if state, players := s.listing(); state == StateWaiting {
			open = append(open, OpenSession{ID: s.ID(), Players: players, EntryPrice: s.EntryPrice()})
		}
	}
	return open
}

func (r *Registry) validPrice(price int) bool {
	for _, p := range r.cfg.EntryPrices {
		if p == price {
			return true
		}
	}
	return false
}

