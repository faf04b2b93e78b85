// Package coach is the session orchestrator: it ties the extractor, the
// prompt builders, the model gateway and the session store together, one
// operation per supported interaction.
package coach

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/resumecoach/server/internal/domain"
	"github.com/resumecoach/server/internal/prompt"
)

// previewLimit bounds the resume text echoed in the upload response. The
// stored text is never truncated.
const previewLimit = 500

type Service struct {
	store     domain.SessionStore
	gateway   domain.ModelGateway
	extractor domain.TextExtractor
	events    domain.EventPublisher // optional
	archiver  domain.FileArchiver   // optional
	logger    *slog.Logger
}

type Option func(*Service)

// WithEvents enables session update publishing.
func WithEvents(p domain.EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithArchiver enables archival of original uploads.
func WithArchiver(a domain.FileArchiver) Option {
	return func(s *Service) { s.archiver = a }
}

func NewService(store domain.SessionStore, gateway domain.ModelGateway, extractor domain.TextExtractor, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		gateway:   gateway,
		extractor: extractor,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type StartSessionOutput struct {
	SessionID     uuid.UUID
	ResumePreview string
	Analysis      string
}

// StartSession extracts the document text, runs the initial analysis and
// creates the session. No session is persisted if any step fails.
func (s *Service) StartSession(ctx context.Context, filename string, data []byte) (*StartSessionOutput, error) {
	log := s.logger.With("filename", filename, "size_bytes", len(data))

	text, err := s.extractor.Extract(filename, data)
	if err != nil {
		log.Warn("text extraction failed", "error", err)
		return nil, err
	}

	analysis, err := s.gateway.Complete(ctx, prompt.Analysis(text))
	if err != nil {
		log.Error("analysis failed", "error", err)
		return nil, domain.NewError(domain.ErrorUpstream, "resume analysis failed", err)
	}

	session, err := s.store.Create(ctx, text, analysis)
	if err != nil {
		return nil, err
	}
	log.Info("session started", "session_id", session.ID)

	// Best effort: neither archival nor event publishing may fail the upload.
	if s.archiver != nil {
		if err := s.archiver.Store(ctx, session.ID, filename, data); err != nil {
			log.Warn("failed to archive resume", "session_id", session.ID, "error", err)
		}
	}
	s.publish(session.ID, "session_created")

	return &StartSessionOutput{
		SessionID:     session.ID,
		ResumePreview: preview(text),
		Analysis:      analysis,
	}, nil
}

type ContinueOutput struct {
	Reply   string
	History []domain.ChatMessage
}

// Continue runs one chat turn. The stored history is the source of truth:
// the prompt replays it oldest first, and the user/assistant pair is
// appended atomically afterwards.
func (s *Service) Continue(ctx context.Context, id uuid.UUID, userMessage string) (*ContinueOutput, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, domain.NewError(domain.ErrorInvalidInput, "user_message is required", nil)
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reply, err := s.gateway.Complete(ctx, prompt.Chat(session.ResumeText, session.History, userMessage))
	if err != nil {
		s.logger.Error("chat turn failed", "session_id", id, "error", err)
		return nil, domain.NewError(domain.ErrorUpstream, "chat reply failed", err)
	}

	updated, err := s.store.AppendMessages(ctx, id,
		domain.ChatMessage{Role: domain.RoleUser, Text: userMessage},
		domain.ChatMessage{Role: domain.RoleAssistant, Text: reply},
	)
	if err != nil {
		return nil, err
	}
	s.publish(id, "chat_turn")

	return &ContinueOutput{Reply: reply, History: updated.History}, nil
}

// JobSuggestions proposes job titles matching the session's resume. It does
// not mutate session state.
func (s *Service) JobSuggestions(ctx context.Context, id uuid.UUID) (string, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, id, prompt.JobSuggestions(session.ResumeText))
}

// CoverLetter writes a cover letter for jobRole based on the session's
// resume. It does not mutate session state.
func (s *Service) CoverLetter(ctx context.Context, id uuid.UUID, jobRole string) (string, error) {
	if strings.TrimSpace(jobRole) == "" {
		return "", domain.NewError(domain.ErrorInvalidInput, "job_role is required", nil)
	}
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, id, prompt.CoverLetter(session.ResumeText, jobRole))
}

// InterviewQuestions prepares interview questions for jobRole based on the
// session's resume. It does not mutate session state.
func (s *Service) InterviewQuestions(ctx context.Context, id uuid.UUID, jobRole string) (string, error) {
	if strings.TrimSpace(jobRole) == "" {
		return "", domain.NewError(domain.ErrorInvalidInput, "job_role is required", nil)
	}
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, id, prompt.InterviewQuestions(session.ResumeText, jobRole))
}

func (s *Service) complete(ctx context.Context, id uuid.UUID, msgs []domain.ChatMessage) (string, error) {
	out, err := s.gateway.Complete(ctx, msgs)
	if err != nil {
		s.logger.Error("model call failed", "session_id", id, "error", err)
		return "", domain.NewError(domain.ErrorUpstream, "model call failed", err)
	}
	return out, nil
}

func (s *Service) publish(id uuid.UUID, event string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSessionUpdate(id, event); err != nil {
		s.logger.Warn("failed to publish session update", "session_id", id, "event", event, "error", err)
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return text
}
