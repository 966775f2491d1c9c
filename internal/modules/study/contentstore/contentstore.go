package contentstore

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studyforge/core/internal/models"
)

// Source types accepted by Save.
const (
	SourceFile    = "file"
	SourceYouTube = "youtube"
)

// Input is one pipeline run's worth of artifacts to persist.
type Input struct {
	Kind       string // flashcards | summary | monologue | all
	Flashcards string
	Summary    string
	Monologue  string
	AudioPath  string
	SourceType string // file | youtube
	SourceName string // filename or video URL
}

// Store persists pipeline output as a session, a document, and one content
// row per artifact.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Save writes the artifacts for an authenticated user and returns the new
// session id. Persistence is best-effort: an unauthenticated caller or any
// insert failure yields "" and the generated text is still returned to the
// client. Writes are not transactional; rows inserted before a failure stay.
func (s *Store) Save(ctx context.Context, userID string, in Input) string {
	if userID == "" {
		s.logger.Debug("skipping persistence for unauthenticated request")
		return ""
	}

	session := models.StudySession{
		UserID:      userID,
		Title:       sessionTitle(in),
		Description: sessionDescription(in),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		s.logger.Error("create study session failed", zap.Error(err))
		return ""
	}

	doc := models.DocumentModel{
		UserID:   userID,
		Title:    session.Title,
		Content:  models.Excerpt(firstNonEmpty(in.Summary, in.Monologue, in.Flashcards)),
		FileType: fileType(in.SourceType),
	}
	if in.SourceType == SourceYouTube {
		doc.FileURL = in.SourceName
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		s.logger.Error("create document failed", zap.String("session_id", session.ID), zap.Error(err))
		return ""
	}

	for _, row := range s.contentRows(&session, &doc, in) {
		if err := row.Content.Validate(row.Type); err != nil {
			s.logger.Error("content payload rejected",
				zap.String("session_id", session.ID),
				zap.String("type", row.Type),
				zap.Error(err))
			return ""
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			s.logger.Error("create generated content failed",
				zap.String("session_id", session.ID),
				zap.String("type", row.Type),
				zap.Error(err))
			return ""
		}
	}

	return session.ID
}

func (s *Store) contentRows(session *models.StudySession, doc *models.DocumentModel, in Input) []models.GeneratedContentModel {
	wants := func(kind string) bool { return in.Kind == "all" || in.Kind == kind }

	var rows []models.GeneratedContentModel
	add := func(kind string, payload models.ContentPayload) {
		rows = append(rows, models.GeneratedContentModel{
			SessionID:  session.ID,
			UserID:     session.UserID,
			Type:       kind,
			Content:    payload,
			DocumentID: doc.ID,
		})
	}

	if wants(models.ContentKindFlashcards) && in.Flashcards != "" {
		add(models.ContentKindFlashcards, models.ContentPayload{Text: in.Flashcards})
	}
	if wants(models.ContentKindSummary) && in.Summary != "" {
		add(models.ContentKindSummary, models.ContentPayload{Text: in.Summary})
	}
	if wants(models.ContentKindMonologue) && in.Monologue != "" {
		add(models.ContentKindMonologue, models.ContentPayload{
			Text:      in.Monologue,
			AudioPath: in.AudioPath,
		})
	}
	return rows
}

func sessionTitle(in Input) string {
	if in.SourceName == "" {
		return "Content from " + in.SourceType
	}
	if in.SourceType == SourceYouTube {
		return "YouTube: " + in.SourceName
	}
	return "File: " + in.SourceName
}

func sessionDescription(in Input) string {
	what := in.Kind
	if in.Kind == "all" {
		what = "flashcards, summary, and monologue"
	}
	return "Generated " + what + " from " + in.SourceType
}

func fileType(sourceType string) string {
	if sourceType == SourceYouTube {
		return models.FileTypeYouTube
	}
	return models.FileTypeText
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
