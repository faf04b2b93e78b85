package database

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID         uuid.UUID
	ResumeText string
	Analysis   string
	CreatedAt  time.Time
}

type Message struct {
	ID        int64
	SessionID uuid.UUID
	Role      string
	Body      string
	CreatedAt time.Time
}
