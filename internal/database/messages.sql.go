package database

import (
	"context"

	"github.com/google/uuid"
)

const insertMessage = `-- name: InsertMessage :exec
INSERT INTO messages (session_id, role, body)
VALUES ($1, $2, $3)
`

type InsertMessageParams struct {
	SessionID uuid.UUID
	Role      string
	Body      string
}

func (q *Queries) InsertMessage(ctx context.Context, arg InsertMessageParams) error {
	_, err := q.db.ExecContext(ctx, insertMessage, arg.SessionID, arg.Role, arg.Body)
	return err
}

const getMessagesBySession = `-- name: GetMessagesBySession :many
SELECT id, session_id, role, body, created_at FROM messages WHERE session_id=$1 ORDER BY id
`

func (q *Queries) GetMessagesBySession(ctx context.Context, sessionID uuid.UUID) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx, getMessagesBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Message
	for rows.Next() {
		var i Message
		if err := rows.Scan(
			&i.ID,
			&i.SessionID,
			&i.Role,
			&i.Body,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
