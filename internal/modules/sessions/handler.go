package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/studyforge/core/internal/middleware"
	"github.com/studyforge/core/internal/pkg/pagination"
	"github.com/studyforge/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/sessions", authMW)

	grp.POST("", h.create)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Title is required")
		return
	}

	session, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), dto.Title, dto.Description)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"session": session})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	list, pag, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, list, pag)
}

func (h *Handler) get(c *gin.Context) {
	session, content, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if session == nil {
		response.NotFoundMsg(c, "Session not found")
		return
	}

	response.OK(c, sessionDetailResponse{
		StudySession:     *session,
		GeneratedContent: content,
	})
}
