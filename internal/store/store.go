package store

import "context"

// Store is the external state shared by every relay instance: the presence
// set, one append-only message log per conversation key, and a per-user
// index of conversation partners. Records are opaque serialized messages.
type Store interface {
	// AddActive adds a username to the presence set. Idempotent.
	AddActive(ctx context.Context, username string) error

	// RemoveActive removes a username from the presence set. Idempotent.
	RemoveActive(ctx context.Context, username string) error

	// ListActive returns every username in the presence set, unordered.
	ListActive(ctx context.Context) ([]string, error)

	// IsActive reports whether a username is in the presence set.
	IsActive(ctx context.Context, username string) (bool, error)

	// AppendMessage head-inserts a record into the log for the given key.
	AppendMessage(ctx context.Context, key string, record []byte) error

	// ListMessages returns the full log for a key in storage order
	// (newest first, since records are head-inserted).
	ListMessages(ctx context.Context, key string) ([][]byte, error)

	// AddPartner records that user has a conversation with partner. Idempotent.
	AddPartner(ctx context.Context, user, partner string) error

	// ListPartners returns the conversation partners recorded for a user.
	ListPartners(ctx context.Context, user string) ([]string, error)

	// Close releases the underlying connection.
	Close() error
}
