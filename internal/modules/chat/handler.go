package chat

import (
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
	rg.POST("/chat", h.chat)
}

func (h *Handler) chat(c *gin.Context) {
	var dto ChatDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	text, err := h.svc.Respond(c.Request.Context(), dto)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to process chat request")
		return
	}
	response.OK(c, chatResponse{Response: text})
}
