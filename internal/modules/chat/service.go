package chat

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studyforge/core/internal/models"
	"github.com/studyforge/core/internal/modules/study/genai"
)

var chatSampling = genai.SamplingConfig{
	Temperature:     0.7,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 1000,
}

type textGenerator interface {
	Generate(ctx context.Context, req genai.Request) (string, error)
}

// Service answers questions about previously processed documents.
type Service struct {
	db     *gorm.DB
	gen    textGenerator
	logger *zap.Logger
}

func NewService(db *gorm.DB, gen textGenerator, logger *zap.Logger) *Service {
	return &Service{db: db, gen: gen, logger: logger}
}

// Respond generates a reply to one chat message. When the request names a
// document, its stored summary replaces any client-provided context.
func (s *Service) Respond(ctx context.Context, dto ChatDTO) (string, error) {
	contextText := dto.Context
	if dto.DocumentID != "" {
		if summary := s.documentSummary(ctx, dto.DocumentID); summary != "" {
			contextText = summary
		}
	}

	return s.gen.Generate(ctx, genai.Request{
		Prompt:   BuildPrompt(contextText, dto.Message),
		History:  NormalizeHistory(dto.History),
		Sampling: &chatSampling,
	})
}

func (s *Service) documentSummary(ctx context.Context, documentID string) string {
	var row models.GeneratedContentModel
	err := s.db.WithContext(ctx).
		Where("document_id = ? AND type = ?", documentID, models.ContentKindSummary).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("loading document summary failed",
				zap.String("document_id", documentID), zap.Error(err))
		}
		return ""
	}
	return row.Content.Text
}

// BuildPrompt prefixes the question with document context when present.
func BuildPrompt(contextText, message string) string {
	if contextText == "" {
		return message
	}
	return "Context: " + contextText + "\n\nUser Question: " + message
}

// NormalizeHistory converts client history into model turns: the in-flight
// message (last element) is dropped, roles other than "user" map to "model",
// leading model turns are removed, and consecutive same-role turns collapse
// to the first.
func NormalizeHistory(msgs []Message) []genai.Turn {
	if len(msgs) > 0 {
		msgs = msgs[:len(msgs)-1]
	}

	turns := make([]genai.Turn, 0, len(msgs))
	for _, m := range msgs {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		turns = append(turns, genai.Turn{Role: role, Text: m.Content})
	}

	for len(turns) > 0 && turns[0].Role != "user" {
		turns = turns[1:]
	}

	filtered := make([]genai.Turn, 0, len(turns))
	for i, t := range turns {
		if i == 0 || t.Role != turns[i-1].Role {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
