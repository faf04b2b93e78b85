package domain

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore owns the mapping from session id to session state. It is the
// single source of truth for conversation history and the analyzed text.
type SessionStore interface {
	// Create allocates a new session with an empty history.
	Create(ctx context.Context, resumeText, analysis string) (*Session, error)
	// Get returns the session or a SESSION_NOT_FOUND error.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	// AppendMessages appends msgs to the session's history in order and
	// returns the updated session. It never replaces existing entries, so
	// concurrent appends cannot lose each other's updates.
	AppendMessages(ctx context.Context, id uuid.UUID, msgs ...ChatMessage) (*Session, error)
}

// ModelGateway turns an ordered role-tagged message list into a single
// completion string.
type ModelGateway interface {
	Complete(ctx context.Context, msgs []ChatMessage) (string, error)
}

// TextExtractor turns file bytes of a declared type into plain text.
type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

// EventPublisher emits session lifecycle updates to interested consumers.
// Implementations must be safe to call concurrently.
type EventPublisher interface {
	PublishSessionUpdate(sessionID uuid.UUID, event string) error
}

// FileArchiver stores the original uploaded document for later retrieval.
type FileArchiver interface {
	Store(ctx context.Context, sessionID uuid.UUID, filename string, data []byte) error
}
