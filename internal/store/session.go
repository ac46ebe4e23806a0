package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gurpreet/minishop/internal/storage"
)

// SessionSlotName is the fixed slot the identity record persists under.
const SessionSlotName = "user"

// Identity is the authenticated user record the remote auth API returned.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// SessionStore is the single source of truth for "who is logged in".
// It is written only through Login/Logout; consumers read Current or
// subscribe for changes. A Watch loop re-adopts external writes to the
// slot (another process logging in or out) the way a browser tab follows
// storage events.
type SessionStore struct {
	slot storage.Slot

	mu      sync.Mutex
	current *Identity
	raw     []byte // last bytes seen in the slot, for change detection
	subs    []func(*Identity)
}

func NewSessionStore(slot storage.Slot) *SessionStore {
	return &SessionStore{slot: slot}
}

// Load adopts the persisted identity, if any. Absent or malformed data
// means "no session"; it is never surfaced as a failure.
func (s *SessionStore) Load(ctx context.Context) {
	data, found, err := s.slot.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || !found {
		s.current, s.raw = nil, nil
		return
	}
	s.adoptLocked(data)
}

// Current returns a copy of the active identity, or nil.
func (s *SessionStore) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

// Login persists identity as the current session and adopts it in memory.
func (s *SessionStore) Login(ctx context.Context, identity Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = &identity
	s.raw = data
	subs := append([]func(*Identity){}, s.subs...)
	cur := identity
	s.mu.Unlock()
	for _, fn := range subs {
		fn(&cur)
	}
	return nil
}

// Logout clears persisted and in-memory state. Idempotent.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.slot.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	changed := s.current != nil || s.raw != nil
	s.current, s.raw = nil, nil
	subs := append([]func(*Identity){}, s.subs...)
	s.mu.Unlock()
	if changed {
		for _, fn := range subs {
			fn(nil)
		}
	}
	return nil
}

// Subscribe registers fn to run after every session change, including
// changes adopted from the watcher. fn receives a copy or nil.
func (s *SessionStore) Subscribe(fn func(*Identity)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Watch polls the slot until ctx is done, re-adopting external writes.
func (s *SessionStore) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

// reload is one watcher step: compare slot bytes with the last seen state
// and adopt plus notify on difference.
func (s *SessionStore) reload(ctx context.Context) {
	data, found, err := s.slot.Load(ctx)
	if err != nil {
		return
	}
	if !found {
		data = nil
	}
	s.mu.Lock()
	if bytes.Equal(data, s.raw) {
		s.mu.Unlock()
		return
	}
	s.adoptLocked(data)
	cur := s.current
	if cur != nil {
		copied := *cur
		cur = &copied
	}
	subs := append([]func(*Identity){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(cur)
	}
}

// adoptLocked replaces state from raw slot bytes; malformed bytes clear the
// session. Callers hold mu.
func (s *SessionStore) adoptLocked(data []byte) {
	s.raw = data
	if len(data) == 0 {
		s.current = nil
		return
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		s.current = nil
		return
	}
	s.current = &id
}
