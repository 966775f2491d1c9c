package study

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studyforge/core/internal/models"
	"github.com/studyforge/core/internal/modules/study/contentstore"
	"github.com/studyforge/core/internal/modules/study/genai"
	"github.com/studyforge/core/internal/modules/study/speech"
	"github.com/studyforge/core/internal/modules/study/transcript"
)

const maxUploadBytes = 15 << 20

var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// StatusError is a user-facing processing failure with its HTTP status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

func badRequest(msg string) *StatusError {
	return &StatusError{Status: http.StatusBadRequest, Message: msg}
}

type textGenerator interface {
	Generate(ctx context.Context, req genai.Request) (string, error)
}

type transcriptFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type audioSynthesizer interface {
	Synthesize(ctx context.Context, text, prefix string) *speech.Artifact
}

type contentSaver interface {
	Save(ctx context.Context, userID string, in contentstore.Input) string
}

// Service runs the study artifact pipeline: generate text, split it into
// artifacts, synthesize monologue audio, persist.
type Service struct {
	db          *gorm.DB
	gen         textGenerator
	transcripts transcriptFetcher
	speech      audioSynthesizer
	contents    contentSaver
	videoModel  string
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	gen textGenerator,
	transcripts transcriptFetcher,
	synth audioSynthesizer,
	contents contentSaver,
	videoModel string,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:          db,
		gen:         gen,
		transcripts: transcripts,
		speech:      synth,
		contents:    contents,
		videoModel:  videoModel,
		logger:      logger,
	}
}

// FileInput is one uploaded document plus its processing mode.
type FileInput struct {
	Name string
	MIME string
	Size int64
	Data []byte
	Mode string
}

// Result carries everything a pipeline run produced. SessionID is empty when
// nothing was persisted.
type Result struct {
	Text       string
	Flashcards string
	Summary    string
	Monologue  string
	Audio      *speech.Artifact
	SessionID  string
}

// ProcessFile generates study artifacts from an uploaded document.
func (s *Service) ProcessFile(ctx context.Context, userID string, in FileInput) (*Result, error) {
	if len(in.Data) == 0 {
		return nil, badRequest("No file provided.")
	}
	if in.Size > maxUploadBytes || int64(len(in.Data)) > maxUploadBytes {
		return nil, badRequest("File exceeds 15MB limit.")
	}
	if !allowedMIMETypes[in.MIME] {
		return nil, badRequest("Unsupported file type (PDF, DOC, DOCX, TXT only).")
	}

	mode := normalizeMode(in.Mode)
	text, err := s.gen.Generate(ctx, genai.Request{
		Prompt:     promptFor(mode, sourceDocument),
		InlineData: in.Data,
		InlineMIME: in.MIME,
	})
	if err != nil {
		return nil, err
	}

	res := s.assemble(ctx, mode, text)
	res.SessionID = s.contents.Save(ctx, userID, contentstore.Input{
		Kind:       mode,
		Flashcards: res.Flashcards,
		Summary:    res.Summary,
		Monologue:  res.Monologue,
		AudioPath:  audioURL(res.Audio),
		SourceType: contentstore.SourceFile,
		SourceName: in.Name,
	})
	return res, nil
}

// ProcessVideo generates study artifacts from a YouTube video transcript.
// A video without a usable transcript is a hard failure.
func (s *Service) ProcessVideo(ctx context.Context, userID, videoURL, mode string) (*Result, error) {
	if !isYouTubeURL(videoURL) {
		return nil, badRequest("Invalid YouTube URL provided.")
	}
	if mode == "" {
		mode = ModeAll
	}
	mode = normalizeMode(mode)

	text, err := s.transcripts.Fetch(ctx, videoURL)
	if err != nil {
		return nil, transcriptError(err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, &StatusError{
			Status:  http.StatusUnprocessableEntity,
			Message: "Could not retrieve transcript for the video.",
		}
	}

	generated, err := s.gen.Generate(ctx, genai.Request{
		Model:  s.videoModel,
		Prompt: promptFor(mode, sourceVideo),
		Text:   "Video Transcript:\n\n" + text,
		Sampling: &genai.SamplingConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 8192,
		},
	})
	if err != nil {
		return nil, err
	}

	res := s.assemble(ctx, mode, generated)
	res.SessionID = s.contents.Save(ctx, userID, contentstore.Input{
		Kind:       mode,
		Flashcards: res.Flashcards,
		Summary:    res.Summary,
		Monologue:  res.Monologue,
		AudioPath:  audioURL(res.Audio),
		SourceType: contentstore.SourceYouTube,
		SourceName: videoURL,
	})
	return res, nil
}

// ProcessYouTubeComposite sends the video itself to the model and produces a
// single composite artifact row against an existing session.
func (s *Service) ProcessYouTubeComposite(ctx context.Context, userID, videoURL, sessionID string) (*models.GeneratedContentModel, error) {
	if !isYouTubeURL(videoURL) {
		return nil, badRequest("Invalid YouTube URL. Please provide a valid youtube.com or youtu.be URL.")
	}

	var session models.StudySession
	err := s.db.WithContext(ctx).
		First(&session, "id = ? AND user_id = ?", sessionID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &StatusError{Status: http.StatusNotFound, Message: "Session not found."}
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	generate := func(prompt string) (string, error) {
		return s.gen.Generate(ctx, genai.Request{
			Model:    s.videoModel,
			Prompt:   prompt,
			FileURI:  videoURL,
			FileMIME: "video/*",
		})
	}

	summary, err := generate(videoSummaryPrompt())
	if err != nil {
		return nil, err
	}
	flashcards, err := generate(videoFlashcardsPrompt())
	if err != nil {
		return nil, err
	}
	podcast, err := generate(videoPodcastPrompt())
	if err != nil {
		return nil, err
	}

	row := models.GeneratedContentModel{
		SessionID: session.ID,
		UserID:    userID,
		Type:      models.ContentKindYouTube,
		Content: models.ContentPayload{
			Summary:    summary,
			Flashcards: flashcards,
			Podcast:    podcast,
		},
	}
	if err := row.Content.Validate(row.Type); err != nil {
		return nil, fmt.Errorf("composite payload: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("store composite content: %w", err)
	}
	return &row, nil
}

// assemble maps a raw model response onto artifacts for the given mode and
// synthesizes monologue audio when there is monologue text. Audio failure is
// non-fatal.
func (s *Service) assemble(ctx context.Context, mode, text string) *Result {
	res := &Result{Text: text}

	switch mode {
	case ModeAll:
		sections := ExtractSections(text)
		res.Flashcards = sections.Flashcards
		res.Summary = sections.Summary
		res.Monologue = sections.Monologue
	case ModeMonologue:
		res.Monologue = StripSpeakerPrefix(text)
	case ModeFlashcards:
		res.Flashcards = text
	default:
		res.Summary = text
	}

	if res.Monologue != "" {
		res.Audio = s.speech.Synthesize(ctx, res.Monologue, "")
		if res.Audio == nil {
			s.logger.Warn("monologue audio unavailable, proceeding text-only")
		}
	}
	return res
}

func audioURL(a *speech.Artifact) string {
	if a == nil {
		return ""
	}
	return a.URL
}

func isYouTubeURL(raw string) bool {
	_, err := transcript.ExtractVideoID(raw)
	return err == nil
}

func transcriptError(err error) error {
	switch {
	case errors.Is(err, transcript.ErrTranscriptsDisabled):
		return &StatusError{
			Status:  http.StatusUnprocessableEntity,
			Message: "Transcripts are disabled for this video.",
		}
	case errors.Is(err, transcript.ErrNoTranscript):
		return &StatusError{
			Status:  http.StatusUnprocessableEntity,
			Message: "No transcript could be found for this video.",
		}
	case errors.Is(err, transcript.ErrInvalidURL):
		return badRequest("Invalid YouTube URL provided.")
	default:
		return &StatusError{
			Status:  http.StatusBadGateway,
			Message: "Failed to fetch YouTube transcript due to an unexpected error.",
		}
	}
}
