package handlers

import (
	"net/http"

	"collab_backend/internal/services"
	"collab_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, adminOnly gin.HandlerFunc) {
	admin := rg.Group("/admin", requireAuth, adminOnly)
	{
		admin.GET("/stats", h.GetStats)

		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.PATCH("/users/:id/status", h.UpdateUserStatus)

		admin.GET("/campaigns", h.ListCampaigns)
		admin.PATCH("/campaigns/:id/status", h.UpdateCampaignStatus)
	}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.AdminUserQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Pagination = ParsePagination(c)

	users, err := h.adminService.ListUsers(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminService.GetUser(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.User, "profile": user.Profile})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), h.GetDB(c), p, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUserStatus(c.Request.Context(), h.GetDB(c), p, c.Param("id"), *req.IsActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AdminHandler) ListCampaigns(c *gin.Context) {
	var query dto.CampaignListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Pagination = ParsePagination(c)

	campaigns, err := h.adminService.ListCampaigns(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaigns": campaigns})
}

func (h *AdminHandler) UpdateCampaignStatus(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateCampaignStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	campaign, err := h.adminService.UpdateCampaignStatus(c.Request.Context(), h.GetDB(c), p, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campaign": campaign})
}
