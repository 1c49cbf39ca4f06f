// Package chat implements the chat orchestrator and its transport handlers.
package chat

import (
	"context"
	"log/slog"

	"github.com/nayeemhs/uniassist/internal/domain"
	"github.com/nayeemhs/uniassist/internal/extract"
	"github.com/nayeemhs/uniassist/internal/prompt"
	"github.com/nayeemhs/uniassist/internal/provider"
	"github.com/nayeemhs/uniassist/internal/store"
)

// Result status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request is an inbound chat request.
type Request struct {
	Message             string        `json:"message"`
	StudentID           int64         `json:"student_id,omitempty"`
	ConversationHistory []domain.Turn `json:"conversation_history,omitempty"`
}

// Result is the structured outcome of a chat turn. Status is always either
// "success" or "error"; nothing propagates to the transport layer as a fault.
type Result struct {
	Response      string                 `json:"response"`
	Status        string                 `json:"status"`
	StudentID     *int64                 `json:"student_id,omitempty"`
	ExtractedInfo *domain.StudentProfile `json:"extracted_info,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

// Service orchestrates a chat turn: extraction, persistence, context assembly,
// and the model call.
type Service struct {
	repo      store.Repository
	assembler *prompt.Assembler
	generator provider.Generator

	// upsert merges extracted fields into a caller-supplied profile id instead
	// of treating bound profiles as read-only context.
	upsert bool
}

// NewService creates a chat service.
func NewService(repo store.Repository, assembler *prompt.Assembler, generator provider.Generator, upsert bool) *Service {
	return &Service{
		repo:      repo,
		assembler: assembler,
		generator: generator,
		upsert:    upsert,
	}
}

// Handle processes one chat turn end to end. All failures are converted into
// a Result with Status "error"; the error is never returned to the caller.
func (s *Service) Handle(ctx context.Context, req Request) *Result {
	extracted := extract.Extract(req.Message)

	// Persist extracted fields. Failures degrade to "no id": the chat turn
	// still proceeds with the extracted fields as ephemeral context.
	var savedID *int64
	if !extracted.IsEmpty() {
		switch {
		case req.StudentID == 0:
			id, err := s.repo.CreateStudent(ctx, extracted)
			if err != nil {
				slog.Warn("failed to persist extracted profile", "error", err)
			} else {
				savedID = &id
			}
		case s.upsert:
			if err := s.repo.UpdateStudent(ctx, req.StudentID, extracted); err != nil {
				slog.Warn("failed to merge extracted fields into profile",
					"student_id", req.StudentID, "error", err)
			} else {
				savedID = &req.StudentID
			}
		default:
			// Bound profiles are read-only context; extracted fields are used
			// for this turn only.
		}
	}

	// Resolve the bound profile, preferring it over just-extracted fields.
	// An unresolvable id simply yields no database context for this turn.
	var bound *domain.StudentProfile
	if req.StudentID != 0 {
		profile, err := s.repo.GetStudent(ctx, req.StudentID)
		if err != nil {
			slog.Warn("failed to load bound profile", "student_id", req.StudentID, "error", err)
		} else if profile == nil {
			slog.Info("bound profile not found", "student_id", req.StudentID)
		} else {
			bound = profile
		}
	}

	systemPrompt := s.assembler.SystemPrompt(bound, extracted)
	messages := s.assembler.Messages(systemPrompt, req.ConversationHistory, req.Message)

	reply, err := s.generator.Generate(ctx, systemPrompt, messages)
	if err != nil {
		slog.Error("model call failed",
			"student_id", req.StudentID,
			"kind", errorCode(err),
			"error", err)
		return &Result{
			Response:      provider.UserMessage(err),
			Status:        StatusError,
			StudentID:     savedID,
			ExtractedInfo: extractedOrNil(extracted),
			Error:         errorCode(err),
		}
	}

	return &Result{
		Response:      reply,
		Status:        StatusSuccess,
		StudentID:     savedID,
		ExtractedInfo: extractedOrNil(extracted),
	}
}

func extractedOrNil(p *domain.StudentProfile) *domain.StudentProfile {
	if p.IsEmpty() {
		return nil
	}
	return p
}

// errorCode maps a provider failure to a short machine-readable code for the
// result payload and logs. Raw detail stays in the operator logs only.
func errorCode(err error) string {
	switch provider.Classify(err) {
	case provider.KindRateLimited:
		return "rate_limited"
	case provider.KindAuthFailed:
		return "auth_failed"
	case provider.KindModelUnavailable:
		return "model_unavailable"
	default:
		return "provider_error"
	}
}
