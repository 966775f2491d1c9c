package upload

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/studyforge/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ gin.HandlerFunc) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileBytes+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	url, err := h.svc.Store(c.Request.Context(),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	switch {
	case errors.Is(err, ErrNotPDF):
		response.BadRequest(c, "Only PDF files are allowed")
	case errors.Is(err, ErrTooLarge):
		response.BadRequest(c, "File size exceeds 15MB limit.")
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, gin.H{"url": url})
	}
}
