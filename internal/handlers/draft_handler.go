package handlers

import (
	"net/http"

	"collab_backend/internal/services"
	"collab_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// DraftHandler - коллаборации и черновики. Доступ к конкретной
// коллаборации и черновику проверяет DraftService.
type DraftHandler struct {
	*BaseHandler
	draftService services.DraftService
}

func NewDraftHandler(base *BaseHandler, draftService services.DraftService) *DraftHandler {
	return &DraftHandler{
		BaseHandler:  base,
		draftService: draftService,
	}
}

func (h *DraftHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	collabs := rg.Group("/collaborations", requireAuth)
	{
		collabs.GET("/:id", h.GetCollaboration)
		collabs.GET("/:id/drafts", h.ListDrafts)
		collabs.POST("/:id/drafts", h.CreateDraft)
	}

	drafts := rg.Group("/drafts", requireAuth)
	{
		drafts.GET("/:id", h.GetDraft)
		drafts.PUT("/:id", h.UpdateDraft)
		drafts.POST("/:id/submit", h.SubmitDraft)
		drafts.POST("/:id/review", h.ReviewDraft)
		drafts.POST("/:id/feedback", h.AddFeedback)
		drafts.POST("/:id/publish", h.PublishDraft)
	}
}

func (h *DraftHandler) GetCollaboration(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	collab, err := h.draftService.GetCollaboration(c.Request.Context(), h.GetDB(c), p, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "collaboration": collab})
}

func (h *DraftHandler) ListDrafts(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	drafts, err := h.draftService.ListDrafts(c.Request.Context(), h.GetDB(c), p, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "drafts": drafts})
}

func (h *DraftHandler) CreateDraft(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateDraftRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	draft, err := h.draftService.CreateDraft(c.Request.Context(), h.GetDB(c), p, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "draft": draft})
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), h.GetDB(c), p, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}

func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateDraftRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	draft, err := h.draftService.UpdateDraft(c.Request.Context(), h.GetDB(c), p, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}

// SubmitDraft: тело необязательно при первой отправке
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.SubmitDraftRequest
	if c.Request.ContentLength != 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	draft, err := h.draftService.SubmitDraft(c.Request.Context(), h.GetDB(c), p, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}

func (h *DraftHandler) ReviewDraft(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ReviewDraftRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	draft, err := h.draftService.ReviewDraft(c.Request.Context(), h.GetDB(c), p, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}

func (h *DraftHandler) AddFeedback(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	draft, err := h.draftService.AddFeedback(c.Request.Context(), h.GetDB(c), p, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "draft": draft})
}

func (h *DraftHandler) PublishDraft(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.PublishDraftRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	draft, err := h.draftService.PublishDraft(c.Request.Context(), h.GetDB(c), p, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}
