package domain

// Turn represents one message in a conversation (system, user or assistant).
type Turn struct {
	Role    Role
	Content string

	// CreatedAt is zero for the seeded system turn; it is never sent upstream.
	CreatedAt Timestamp
}

// Window is the bounded sequence of turns sent to a provider on each call.
// The first element is always the system turn.
type Window []Turn
