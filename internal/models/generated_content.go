package models

import (
	"errors"
	"strings"
)

// Artifact kind tags for generated content rows.
const (
	ContentKindFlashcards = "flashcards"
	ContentKindSummary    = "summary"
	ContentKindMonologue  = "monologue"
	ContentKindYouTube    = "youtube"
)

// ContentPayload is the artifact-kind-dependent content of a generated row.
// Exactly one shape is valid per kind:
//   - flashcards / summary: Text only
//   - monologue (pipeline-created): Text, optionally AudioPath + Pathname
//   - monologue (reconciled from storage): AudioURL + Pathname
//   - youtube (composite direct-video run): Summary + Flashcards + Podcast
type ContentPayload struct {
	Text      string `json:"text,omitempty"`
	AudioPath string `json:"audioPath,omitempty"`
	AudioURL  string `json:"audioUrl,omitempty"`
	Pathname  string `json:"pathname,omitempty"`

	Summary    string `json:"summary,omitempty"`
	Flashcards string `json:"flashcards,omitempty"`
	Podcast    string `json:"podcast,omitempty"`
}

var errInvalidPayload = errors.New("content payload does not match artifact kind")

// Validate checks the payload shape against the artifact kind. Enforced at
// the storage boundary so malformed rows never reach the database.
func (p ContentPayload) Validate(kind string) error {
	switch kind {
	case ContentKindFlashcards, ContentKindSummary:
		if strings.TrimSpace(p.Text) == "" {
			return errInvalidPayload
		}
		if p.AudioPath != "" || p.AudioURL != "" || p.Summary != "" {
			return errInvalidPayload
		}
	case ContentKindMonologue:
		hasText := strings.TrimSpace(p.Text) != ""
		hasRef := p.AudioURL != "" && p.Pathname != ""
		if !hasText && !hasRef {
			return errInvalidPayload
		}
	case ContentKindYouTube:
		if p.Summary == "" && p.Flashcards == "" && p.Podcast == "" {
			return errInvalidPayload
		}
	default:
		return errInvalidPayload
	}
	return nil
}

// GeneratedContentModel is one artifact row produced by a pipeline run or
// inserted by reconciliation. SessionID must always reference an existing
// StudySession.
type GeneratedContentModel struct {
	Base
	SessionID  string         `json:"session_id"  gorm:"index;not null"`
	UserID     string         `json:"user_id"     gorm:"index;not null"`
	Type       string         `json:"type"        gorm:"size:50;not null"`
	Content    ContentPayload `json:"content"     gorm:"type:json;serializer:json"`
	DocumentID string         `json:"document_id" gorm:"type:char(36)"`
}

func (GeneratedContentModel) TableName() string { return "generated_contents" }
