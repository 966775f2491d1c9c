package study

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyforge/core/internal/middleware"
	"github.com/studyforge/core/internal/modules/study/genai"
	"github.com/studyforge/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/study")

	// Processing works unauthenticated; results are only persisted for
	// signed-in users.
	grp.POST("/process/file", h.processFile)
	grp.POST("/process/video", h.processVideo)

	authed := grp.Group("", authMW)
	authed.POST("/youtube", h.processYouTubeComposite)
}

func (h *Handler) processFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	res, err := h.svc.ProcessFile(c.Request.Context(), middleware.CurrentUserID(c), FileInput{
		Name: fileHeader.Filename,
		MIME: fileHeader.Header.Get("Content-Type"),
		Size: fileHeader.Size,
		Data: data,
		Mode: c.PostForm("processingOption"),
	})
	if err != nil {
		respondProcessError(c, err)
		return
	}

	response.OK(c, toProcessResponse(res, "file",
		fmt.Sprintf("Successfully processed '%s'.", fileHeader.Filename)))
}

func (h *Handler) processVideo(c *gin.Context) {
	var dto ProcessVideoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid YouTube URL provided.")
		return
	}

	res, err := h.svc.ProcessVideo(c.Request.Context(), middleware.CurrentUserID(c), dto.YouTubeURL, dto.Mode)
	if err != nil {
		respondProcessError(c, err)
		return
	}

	response.OK(c, toProcessResponse(res, "youtube", "YouTube video processed successfully."))
}

func (h *Handler) processYouTubeComposite(c *gin.Context) {
	var dto YouTubeCompositeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	row, err := h.svc.ProcessYouTubeComposite(c.Request.Context(), middleware.CurrentUserID(c), dto.URL, dto.SessionID)
	if err != nil {
		respondProcessError(c, err)
		return
	}
	response.OK(c, gin.H{"content": row})
}

func toProcessResponse(res *Result, inputSource, message string) processResponse {
	out := processResponse{
		Message:        message,
		InputSource:    inputSource,
		ResultText:     res.Text,
		FlashcardsText: res.Flashcards,
		SummaryText:    res.Summary,
		MonologueText:  res.Monologue,
		SessionID:      res.SessionID,
	}
	if res.Audio != nil {
		out.AudioFilePath = res.Audio.URL
	}
	return out
}

// respondProcessError maps pipeline failures onto user-facing messages.
func respondProcessError(c *gin.Context, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		response.Error(c, se.Status, se.Message)
		return
	}

	switch genai.KindOf(err) {
	case genai.KindSafety:
		response.UnprocessableEntity(c, "Content generation blocked due to safety settings.")
	case genai.KindRateLimit:
		response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	case genai.KindCredential:
		response.Error(c, http.StatusInternalServerError, "Invalid API Key.")
	default:
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred during processing.")
	}
}
