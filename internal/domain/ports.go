package domain

import (
	"context"
	"time"
)

// Provider defines how the application talks to a hosted completion service.
type Provider interface {
	// Generate sends the full turn window and returns the reply text.
	// Failures come back as *ProviderError.
	Generate(ctx context.Context, turns Window, cfg ModelConfig) (string, error)
}

// ContextStore owns per-connection conversation state with bounded lifetime.
type ContextStore interface {
	// Append creates the context if absent (seeding the system turn),
	// appends a timestamped turn, trims the window, and returns a copy of
	// the current window.
	Append(id ConnectionID, role Role, content string) Window

	// Reset discards the context unconditionally. No error if absent.
	Reset(id ConnectionID)

	// MergePreferences shallow-merges auxiliary preference data into the
	// context, creating it if absent. The turn window is never touched.
	MergePreferences(id ConnectionID, data map[string]any)

	// Preferences returns a copy of the merged preference data.
	Preferences(id ConnectionID) map[string]any

	// ScheduleDelayedEviction discards the context after delay if it is
	// still present and untouched. New activity cancels the eviction so a
	// quick reconnect resumes the conversation.
	ScheduleDelayedEviction(id ConnectionID, delay time.Duration)

	// SweepStale discards every context whose last turn is older than
	// maxAge. A context holding only the unstamped system turn is never
	// considered stale.
	SweepStale(maxAge time.Duration)
}
