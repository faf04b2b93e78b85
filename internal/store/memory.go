// Package store provides SessionStore implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resumecoach/server/internal/domain"
)

// MemoryStore keeps sessions in process memory. It is the default backend;
// state does not survive a restart and sessions never expire.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*domain.Session),
	}
}

func (s *MemoryStore) Create(_ context.Context, resumeText, analysis string) (*domain.Session, error) {
	session := &domain.Session{
		ID:         uuid.New(),
		ResumeText: resumeText,
		Analysis:   analysis,
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return snapshot(session), nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.NewError(domain.ErrorSessionNotFound, "session not found", nil)
	}
	return snapshot(session), nil
}

func (s *MemoryStore) AppendMessages(_ context.Context, id uuid.UUID, msgs ...domain.ChatMessage) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.NewError(domain.ErrorSessionNotFound, "session not found", nil)
	}
	session.History = append(session.History, msgs...)
	return snapshot(session), nil
}

// Len reports the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// snapshot copies the session so callers cannot mutate stored state or race
// against later appends.
func snapshot(session *domain.Session) *domain.Session {
	out := *session
	out.History = make([]domain.ChatMessage, len(session.History))
	copy(out.History, session.History)
	return &out
}
