package handlers

import (
	"net/http"

	"collab_backend/internal/services"
	"collab_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	*BaseHandler
	discoveryService services.DiscoveryService
}

func NewDiscoveryHandler(base *BaseHandler, discoveryService services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{
		BaseHandler:      base,
		discoveryService: discoveryService,
	}
}

func (h *DiscoveryHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, brandOnly gin.HandlerFunc) {
	brand := rg.Group("/brand", requireAuth, brandOnly)
	{
		brand.GET("/influencers", h.SearchInfluencers)
	}
}

func (h *DiscoveryHandler) SearchInfluencers(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var query dto.DiscoveryQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Pagination = ParsePagination(c)

	result, err := h.discoveryService.SearchInfluencers(c.Request.Context(), h.GetDB(c), p, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "influencers": result})
}
