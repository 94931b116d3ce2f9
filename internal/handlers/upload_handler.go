package handlers

import (
	"net/http"

	"collab_backend/internal/logger"
	"collab_backend/internal/services"
	"collab_backend/internal/services/dto"
	"collab_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxFilesPerRequest - лимит для /uploads/multi
const maxFilesPerRequest = 10

// ============================================
// UPLOAD HANDLER
// ============================================

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
	maxSize       int64
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		maxSize:       maxSize,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	uploads := rg.Group("/uploads", requireAuth)
	{
		uploads.POST("", h.UploadFile)
		uploads.POST("/multi", h.UploadMultipleFiles)
	}
}

// UploadFile - один файл в поле "file"
func (h *UploadHandler) UploadFile(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	if !h.parseForm(c, 1) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{"file": "This field is required"}))
		return
	}

	response, err := h.uploadService.Upload(c.Request.Context(), p.UserID, fileHeader)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "file": response})
}

// UploadMultipleFiles - поле "files"; при частичных ошибках 207 Multi-Status
func (h *UploadHandler) UploadMultipleFiles(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	if !h.parseForm(c, maxFilesPerRequest) {
		return
	}

	files := c.Request.MultipartForm.File["files"]
	if len(files) == 0 {
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{"files": "This field is required"}))
		return
	}
	if len(files) > maxFilesPerRequest {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Too many files in one request"))
		return
	}

	ctx := c.Request.Context()
	uploaded := make([]*dto.UploadResponse, 0, len(files))
	failed := make([]gin.H, 0)

	for _, fileHeader := range files {
		response, err := h.uploadService.Upload(ctx, p.UserID, fileHeader)
		if err != nil {
			logger.CtxWarn(ctx, "Failed to upload file", "file", fileHeader.Filename, "error", err)
			item := gin.H{"file": fileHeader.Filename, "error": "Upload failed"}
			if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode < 500 {
				item["error"] = appErr.Message
				item["code"] = appErr.Code
			}
			failed = append(failed, item)
			continue
		}
		uploaded = append(uploaded, response)
	}

	status := http.StatusCreated
	if len(failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"success": len(failed) == 0,
		"files":   uploaded,
		"failed":  failed,
	})
}

// parseForm ограничивает тело запроса до разбора multipart
func (h *UploadHandler) parseForm(c *gin.Context, files int64) bool {
	if h.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize*files+(1<<20))
	}
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if apperrors.As(err, &maxErr) {
			apperrors.HandleError(c, apperrors.ErrFileTooLarge)
			return false
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to parse form: "+err.Error()))
		return false
	}
	return true
}
