package handlers

import (
	"net/http"

	"collab_backend/internal/services"
	"collab_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	*BaseHandler
	campaignService services.CampaignService
}

func NewCampaignHandler(base *BaseHandler, campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		BaseHandler:     base,
		campaignService: campaignService,
	}
}

// RegisterRoutes: кампании и ответ на приглашение.
// Владелец кампании (или админ) проверяется в сервисе.
func (h *CampaignHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, brandOnly, influencerOnly gin.HandlerFunc) {
	campaigns := rg.Group("/campaigns", requireAuth)
	{
		campaigns.GET("", h.ListCampaigns)
		campaigns.POST("", brandOnly, h.CreateCampaign)
		campaigns.GET("/:id", h.GetCampaign)
		campaigns.PATCH("/:id/status", h.UpdateStatus)
		campaigns.POST("/:id/invite", h.Invite)
	}

	rg.POST("/invitations/:campaignId/respond", requireAuth, influencerOnly, h.Respond)
}

func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var query dto.CampaignListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Pagination = ParsePagination(c)

	result, err := h.campaignService.ListCampaigns(c.Request.Context(), h.GetDB(c), p, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaigns": result})
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateCampaignRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), h.GetDB(c), p.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "campaign": campaign})
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(c.Request.Context(), h.GetDB(c), p, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaign": campaign})
}

func (h *CampaignHandler) UpdateStatus(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateCampaignStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	campaign, err := h.campaignService.UpdateStatus(c.Request.Context(), h.GetDB(c), p, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaign": campaign})
}

func (h *CampaignHandler) Invite(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.InviteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	invitation, err := h.campaignService.Invite(c.Request.Context(), h.GetDB(c), p, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "invitation": invitation})
}

func (h *CampaignHandler) Respond(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.RespondInvitationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	invitation, err := h.campaignService.Respond(c.Request.Context(), h.GetDB(c), p, c.Param("campaignId"), req.Decision)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invitation": invitation})
}
