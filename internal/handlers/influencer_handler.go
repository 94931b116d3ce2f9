package handlers

import (
	"net/http"

	"collab_backend/internal/services"
	"collab_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// InfluencerHandler - онбординг, приглашения и публичный медиакит
type InfluencerHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewInfluencerHandler(base *BaseHandler, profileService services.ProfileService) *InfluencerHandler {
	return &InfluencerHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *InfluencerHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, influencerOnly gin.HandlerFunc) {
	influencer := rg.Group("/influencer", requireAuth, influencerOnly)
	{
		influencer.GET("/profile", h.GetProfile)
		influencer.PUT("/profile", h.UpdateProfile)
		influencer.GET("/invitations", h.ListInvitations)
	}

	rg.GET("/media-kit/:slug", h.GetMediaKit)
}

func (h *InfluencerHandler) GetProfile(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetOwnProfile(c.Request.Context(), h.GetDB(c), p.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

func (h *InfluencerHandler) UpdateProfile(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateOwnProfile(c.Request.Context(), h.GetDB(c), p.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

func (h *InfluencerHandler) ListInvitations(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	invitations, err := h.profileService.ListInvitations(c.Request.Context(), h.GetDB(c), p.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invitations": invitations})
}

// GetMediaKit - публичный маршрут, без сессии
func (h *InfluencerHandler) GetMediaKit(c *gin.Context) {
	kit, err := h.profileService.GetMediaKit(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "mediaKit": kit})
}
