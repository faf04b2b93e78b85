package database

import (
	"context"

	"github.com/google/uuid"
)

const createSession = `-- name: CreateSession :one
INSERT INTO sessions (id, resume_text, analysis)
VALUES ($1, $2, $3)
RETURNING id, resume_text, analysis, created_at
`

type CreateSessionParams struct {
	ID         uuid.UUID
	ResumeText string
	Analysis   string
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	row := q.db.QueryRowContext(ctx, createSession, arg.ID, arg.ResumeText, arg.Analysis)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.ResumeText,
		&i.Analysis,
		&i.CreatedAt,
	)
	return i, err
}

const getSession = `-- name: GetSession :one
SELECT id, resume_text, analysis, created_at FROM sessions WHERE id=$1
`

func (q *Queries) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	row := q.db.QueryRowContext(ctx, getSession, id)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.ResumeText,
		&i.Analysis,
		&i.CreatedAt,
	)
	return i, err
}
