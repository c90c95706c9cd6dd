package memory

import (
	"context"
	"sync"
	"time"

	"github.com/voxhub/voicerelay/internal/domain"
	"github.com/voxhub/voicerelay/internal/observability"
)

type conversation struct {
	turns []domain.Turn
	prefs map[string]any
}

// ContextStore keeps per-connection conversation windows in memory. Every
// mutation goes through the mutex: the websocket read loops, the delayed
// eviction timers and the staleness sweeper all touch the same map.
type ContextStore struct {
	mu            sync.Mutex
	conversations map[domain.ConnectionID]*conversation
	evictions     map[domain.ConnectionID]*time.Timer

	systemPrompt string
	maxTurns     int
	now          func() time.Time
}

func NewContextStore(systemPrompt string, maxTurns int) *ContextStore {
	return &ContextStore{
		conversations: make(map[domain.ConnectionID]*conversation),
		evictions:     make(map[domain.ConnectionID]*time.Timer),
		systemPrompt:  systemPrompt,
		maxTurns:      maxTurns,
		now:           time.Now,
	}
}

// get returns the conversation for id, creating it seeded with the system
// turn when absent. Caller must hold the mutex.
func (s *ContextStore) get(id domain.ConnectionID) *conversation {
	conv, ok := s.conversations[id]
	if !ok {
		conv = &conversation{
			turns: []domain.Turn{{Role: domain.RoleSystem, Content: s.systemPrompt}},
		}
		s.conversations[id] = conv
	}
	return conv
}

// cancelEviction stops a pending delayed eviction for id, if any. Caller
// must hold the mutex.
func (s *ContextStore) cancelEviction(id domain.ConnectionID) {
	if t, ok := s.evictions[id]; ok {
		t.Stop()
		delete(s.evictions, id)
	}
}

func (s *ContextStore) Append(id domain.ConnectionID, role domain.Role, content string) domain.Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelEviction(id)

	conv := s.get(id)
	conv.turns = append(conv.turns, domain.Turn{
		Role:      role,
		Content:   content,
		CreatedAt: s.now(),
	})

	// Trim: keep the system turn plus the most recent maxTurns turns.
	if excess := len(conv.turns) - 1 - s.maxTurns; excess > 0 {
		conv.turns = append(conv.turns[:1], conv.turns[1+excess:]...)
	}

	window := make(domain.Window, len(conv.turns))
	copy(window, conv.turns)
	return window
}

func (s *ContextStore) Reset(id domain.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelEviction(id)
	delete(s.conversations, id)
}

func (s *ContextStore) MergePreferences(id domain.ConnectionID, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelEviction(id)

	conv := s.get(id)
	if conv.prefs == nil {
		conv.prefs = make(map[string]any, len(data))
	}
	for k, v := range data {
		conv.prefs[k] = v
	}
}

func (s *ContextStore) Preferences(id domain.ConnectionID) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok || conv.prefs == nil {
		return nil
	}

	out := make(map[string]any, len(conv.prefs))
	for k, v := range conv.prefs {
		out[k] = v
	}
	return out
}

func (s *ContextStore) ScheduleDelayedEviction(id domain.ConnectionID, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelEviction(id)

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// Only evict if this timer is still the registered one: new
		// activity replaced or cancelled it.
		if s.evictions[id] == timer {
			delete(s.evictions, id)
			delete(s.conversations, id)
		}
	})
	s.evictions[id] = timer
}

func (s *ContextStore) SweepStale(maxAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, conv := range s.conversations {
		last := conv.turns[len(conv.turns)-1]
		if last.CreatedAt.IsZero() {
			// Only the seeded system turn: not yet stale.
			continue
		}
		if now.Sub(last.CreatedAt) > maxAge {
			s.cancelEviction(id)
			delete(s.conversations, id)
		}
	}
}

// StartSweeper runs SweepStale every interval until ctx is done.
func (s *ContextStore) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepStale(maxAge)
				observability.Logger().Debug("staleness sweep completed")
			}
		}
	}()
}

// Turns returns a copy of the current window, or nil when the context does
// not exist. Mostly useful for inspection and tests.
func (s *ContextStore) Turns(id domain.ConnectionID) domain.Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil
	}

	window := make(domain.Window, len(conv.turns))
	copy(window, conv.turns)
	return window
}

// Len reports how many contexts are currently held.
func (s *ContextStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// SetNow overrides the store clock. Tests only.
func (s *ContextStore) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
