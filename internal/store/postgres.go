package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/resumecoach/server/internal/database"
	"github.com/resumecoach/server/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY,
	resume_text TEXT NOT NULL,
	analysis TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS messages (
	id BIGSERIAL PRIMARY KEY,
	session_id UUID NOT NULL REFERENCES sessions(id),
	role TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS messages_session_id_idx ON messages (session_id);
`

// PostgresStore persists sessions and their histories in Postgres. Message
// order is the insertion order of the messages table.
type PostgresStore struct {
	db      *sql.DB
	queries *database.Queries
}

// NewPostgres opens the database, verifies connectivity and ensures the
// schema exists.
func NewPostgres(ctx context.Context, dbURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error ensuring schema: %w", err)
	}
	return &PostgresStore{db: db, queries: database.New(db)}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Create(ctx context.Context, resumeText, analysis string) (*domain.Session, error) {
	row, err := s.queries.CreateSession(ctx, database.CreateSessionParams{
		ID:         uuid.New(),
		ResumeText: resumeText,
		Analysis:   analysis,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &domain.Session{
		ID:         row.ID,
		ResumeText: row.ResumeText,
		Analysis:   row.Analysis,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	row, err := s.queries.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrorSessionNotFound, "session not found", nil)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	msgs, err := s.queries.GetMessagesBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	session := &domain.Session{
		ID:         row.ID,
		ResumeText: row.ResumeText,
		Analysis:   row.Analysis,
		CreatedAt:  row.CreatedAt,
		History:    make([]domain.ChatMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		session.History = append(session.History, domain.ChatMessage{
			Role: domain.Role(m.Role),
			Text: m.Body,
		})
	}
	return session, nil
}

// AppendMessages inserts the messages in one transaction so a chat turn's
// user/assistant pair lands atomically and in order.
func (s *PostgresStore) AppendMessages(ctx context.Context, id uuid.UUID, msgs ...domain.ChatMessage) (*domain.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)
	if _, err := qtx.GetSession(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrorSessionNotFound, "session not found", nil)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	for _, m := range msgs {
		if err := qtx.InsertMessage(ctx, database.InsertMessageParams{
			SessionID: id,
			Role:      string(m.Role),
			Body:      m.Text,
		}); err != nil {
			return nil, fmt.Errorf("insert message: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.Get(ctx, id)
}
