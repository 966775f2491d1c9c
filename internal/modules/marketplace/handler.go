package marketplace

import (
	"errors"

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
	grp := rg.Group("/marketplace")

	grp.GET("/listings", h.listListings)
	grp.POST("/listings", h.createListing)
	grp.POST("/purchases", h.recordPurchase)
	grp.GET("/purchases", h.listPurchases)
}

func (h *Handler) listListings(c *gin.Context) {
	listings, err := h.svc.ListListings(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"listings": listings})
}

func (h *Handler) createListing(c *gin.Context) {
	var dto CreateListingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	listing, err := h.svc.CreateListing(c.Request.Context(), dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"listing": listing})
}

func (h *Handler) recordPurchase(c *gin.Context) {
	var dto PurchaseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Missing address or listing_id")
		return
	}

	err := h.svc.RecordPurchase(c.Request.Context(), dto)
	if errors.Is(err, ErrAlreadyPurchased) {
		response.OK(c, gin.H{"message": "Already purchased"})
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) listPurchases(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		response.BadRequest(c, "Missing address")
		return
	}

	listings, err := h.svc.PurchasedListings(c.Request.Context(), address)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"purchases": listings})
}
