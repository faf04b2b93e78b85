package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumecoach/server/internal/domain"
)

func TestMemoryCreateAndGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, "resume text", "the analysis")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Empty(t, created.History)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "resume text", got.ResumeText)
	assert.Equal(t, "the analysis", got.Analysis)
}

func TestMemoryGetUnknownSession(t *testing.T) {
	s := NewMemory()

	_, err := s.Get(context.Background(), uuid.New())
	require.Error(t, err)

	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrorSessionNotFound, domainErr.Code)
}

func TestMemoryAppendPreservesOrder(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, "resume", "analysis")
	require.NoError(t, err)

	_, err = s.AppendMessages(ctx, created.ID,
		domain.ChatMessage{Role: domain.RoleUser, Text: "q1"},
		domain.ChatMessage{Role: domain.RoleAssistant, Text: "a1"},
	)
	require.NoError(t, err)

	updated, err := s.AppendMessages(ctx, created.ID,
		domain.ChatMessage{Role: domain.RoleUser, Text: "q2"},
		domain.ChatMessage{Role: domain.RoleAssistant, Text: "a2"},
	)
	require.NoError(t, err)

	require.Len(t, updated.History, 4)
	assert.Equal(t, "q1", updated.History[0].Text)
	assert.Equal(t, "a1", updated.History[1].Text)
	assert.Equal(t, "q2", updated.History[2].Text)
	assert.Equal(t, "a2", updated.History[3].Text)
}

func TestMemoryAppendUnknownSession(t *testing.T) {
	s := NewMemory()

	_, err := s.AppendMessages(context.Background(), uuid.New(),
		domain.ChatMessage{Role: domain.RoleUser, Text: "q"})
	require.Error(t, err)

	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrorSessionNotFound, domainErr.Code)
}

func TestMemoryConcurrentAppendsLoseNothing(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, "resume", "analysis")
	require.NoError(t, err)

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := s.AppendMessages(ctx, created.ID,
				domain.ChatMessage{Role: domain.RoleUser, Text: "msg"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.History, writers)
}

func TestMemoryReturnsSnapshots(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	created, err := s.Create(ctx, "resume", "analysis")
	require.NoError(t, err)

	first, err := s.AppendMessages(ctx, created.ID,
		domain.ChatMessage{Role: domain.RoleUser, Text: "original"})
	require.NoError(t, err)

	first.History[0].Text = "tampered"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.History[0].Text)
}
