package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state for one uploaded résumé: the extracted
// text, the initial analysis, and the conversation held about it.
// ResumeText and Analysis are set once at creation and never change;
// History is append-only and its order is the replay order for the model.
type Session struct {
	ID         uuid.UUID
	ResumeText string
	Analysis   string
	History    []ChatMessage
	CreatedAt  time.Time
}
