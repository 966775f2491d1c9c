package audio

import (
	"errors"
	"net/http"

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
	grp := rg.Group("/audio")

	grp.POST("/test", h.generateTest)
	grp.POST("/confirm", h.confirm)
	grp.GET("/:filename", h.serve)
	grp.DELETE("/:filename", h.delete)
}

type testAudioDTO struct {
	Text string `json:"text" binding:"required"`
}

type confirmDTO struct {
	Filename string `json:"filename" binding:"required"`
}

func (h *Handler) generateTest(c *gin.Context) {
	var dto testAudioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Text is required")
		return
	}

	obj, err := h.svc.GenerateTest(c.Request.Context(), dto.Text)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to generate test audio")
		return
	}

	response.OK(c, gin.H{
		"success":   true,
		"audioPath": obj.URL,
		"pathname":  obj.Pathname,
		"message":   "Test audio generated successfully",
	})
}

func (h *Handler) confirm(c *gin.Context) {
	var dto confirmDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Filename is required")
		return
	}

	obj, err := h.svc.Confirm(c.Request.Context(), dto.Filename)
	if errors.Is(err, errInvalidFilename) {
		response.BadRequest(c, "Invalid filename")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if obj == nil {
		response.NotFoundMsg(c, "File not found")
		return
	}

	response.OK(c, gin.H{
		"success": true,
		"message": "File exists",
		"details": gin.H{
			"pathname": obj.Pathname,
			"size":     obj.Size,
			"modified": obj.LastModified,
		},
	})
}

func (h *Handler) serve(c *gin.Context) {
	obj, err := h.svc.Resolve(c.Request.Context(), c.Param("filename"))
	if err != nil || obj == nil {
		response.NotFoundMsg(c, "File not found")
		return
	}
	c.Redirect(http.StatusFound, obj.URL)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("filename"))
	if errors.Is(err, errInvalidFilename) {
		response.BadRequest(c, "Invalid filename")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to clean up audio file")
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"message": "Audio file cleaned up successfully",
	})
}
