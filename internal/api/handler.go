// Package api provides the HTTP handlers for the resume coach API.
//
// Every endpoint answers HTTP 200 with a uniform envelope: {"success":true,
// ...} on success and {"success":false,"error":...} on failure. Clients of
// the original UI rely on that shape, so failures are not mapped to HTTP
// status codes.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/resumecoach/server/internal/coach"
	"github.com/resumecoach/server/internal/domain"
)

type Handler struct {
	svc            *coach.Service
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewHandler(svc *coach.Service, logger *slog.Logger, maxUploadBytes int64) *Handler {
	return &Handler{
		svc:            svc,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.handleUpload)
	r.Post("/chat", h.handleChat)
	r.Post("/job-suggestions", h.handleJobSuggestions)
	r.Post("/cover-letter", h.handleCoverLetter)
	r.Post("/interview-questions", h.handleInterviewQuestions)
}

type uploadResponse struct {
	Success    bool   `json:"success"`
	SessionID  string `json:"session_id"`
	ResumeText string `json:"resume_text"`
	Analysis   string `json:"analysis"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeFailure(w, "no file selected")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, "could not read uploaded file")
		return
	}

	out, err := h.svc.StartSession(r.Context(), header.Filename, data)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, uploadResponse{
		Success:    true,
		SessionID:  out.SessionID.String(),
		ResumeText: out.ResumePreview,
		Analysis:   out.Analysis,
	})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	// ResumeText and ChatHistory are accepted for compatibility with the
	// original client but ignored: the server-stored session state is the
	// source of truth for the conversation context.
	ResumeText  string               `json:"resume_text"`
	ChatHistory []domain.ChatMessage `json:"chat_history"`
	UserMessage string               `json:"user_message"`
}

type chatResponse struct {
	Success     bool                 `json:"success"`
	AIReply     string               `json:"ai_reply"`
	ChatHistory []domain.ChatMessage `json:"updated_chat_history"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		writeFailure(w, "user_message is required")
		return
	}
	id, ok := h.sessionID(w, req.SessionID)
	if !ok {
		return
	}

	out, err := h.svc.Continue(r.Context(), id, req.UserMessage)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, chatResponse{
		Success:     true,
		AIReply:     out.Reply,
		ChatHistory: out.History,
	})
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
	JobRole   string `json:"job_role"`
}

func (h *Handler) handleJobSuggestions(w http.ResponseWriter, r *http.Request) {
	h.handleArtifact(w, r, "suggestions", func(r *http.Request, id uuid.UUID, _ string) (string, error) {
		return h.svc.JobSuggestions(r.Context(), id)
	})
}

func (h *Handler) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	h.handleArtifact(w, r, "cover_letter", func(r *http.Request, id uuid.UUID, jobRole string) (string, error) {
		return h.svc.CoverLetter(r.Context(), id, jobRole)
	})
}

func (h *Handler) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	h.handleArtifact(w, r, "questions", func(r *http.Request, id uuid.UUID, jobRole string) (string, error) {
		return h.svc.InterviewQuestions(r.Context(), id, jobRole)
	})
}

// handleArtifact covers the three auxiliary endpoints, which differ only in
// the service call and the response field name.
func (h *Handler) handleArtifact(w http.ResponseWriter, r *http.Request, field string, fn func(*http.Request, uuid.UUID, string) (string, error)) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "invalid JSON body")
		return
	}
	id, ok := h.sessionID(w, req.SessionID)
	if !ok {
		return
	}

	result, err := fn(r, id, req.JobRole)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		field:     result,
	})
}

func (h *Handler) sessionID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	if strings.TrimSpace(raw) == "" {
		writeFailure(w, "session_id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeFailure(w, "invalid session_id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		writeFailure(w, domainErr.Message)
		return
	}
	h.logger.Error("unclassified handler error", "error", err)
	writeFailure(w, "internal server error")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"success": false, "error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

func writeFailure(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]any{
		"success": false,
		"error":   message,
	})
}
