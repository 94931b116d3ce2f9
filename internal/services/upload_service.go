package services

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"collab_backend/internal/config"
	"collab_backend/internal/imageprocessor"
	"collab_backend/internal/logger"
	"collab_backend/internal/services/dto"
	"collab_backend/internal/storage"
	"collab_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// UploadService - медиа для черновиков. URL из ответа кладется в content.media.
type UploadService interface {
	Upload(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type UploadServiceImpl struct {
	storage      storage.Storage
	images       *imageprocessor.Processor
	maxSize      int64
	allowedTypes map[string]struct{}
}

func NewUploadService(store storage.Storage, images *imageprocessor.Processor, cfg config.UploadConfig) UploadService {
	allowed := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &UploadServiceImpl{
		storage:      store,
		images:       images,
		maxSize:      cfg.MaxSize,
		allowedTypes: allowed,
	}
}

var extByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
}

func (s *UploadServiceImpl) Upload(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if file == nil {
		return nil, apperrors.ValidationError(map[string]string{"file": "This field is required"})
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	contentType := detectContentType(file)
	if _, ok := s.allowedTypes[contentType]; !ok {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"contentType": contentType})
	}

	id := uuid.NewString()
	ext, ok := extByType[contentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(file.Filename))
	}
	key := "drafts/" + userID + "/" + id + ext

	resp := &dto.UploadResponse{
		Path:        key,
		Size:        file.Size,
		ContentType: contentType,
	}

	// превью строится до сохранения: битое изображение не попадает в хранилище
	var thumb *imageprocessor.Result
	if s.images != nil && imageprocessor.IsSupported(contentType) {
		src, err := file.Open()
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		thumb, err = s.images.Thumbnail(src, imageprocessor.SizeThumbnail)
		src.Close()
		if err != nil {
			if errors.Is(err, imageprocessor.ErrUnsupportedImage) {
				return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"file": "Image could not be decoded"})
			}
			return nil, apperrors.InternalError(err)
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	if err := s.storage.Save(ctx, key, src, file.Size, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.URL = s.storage.URL(key)

	if thumb != nil {
		thumbKey := "drafts/" + userID + "/" + id + "_" + imageprocessor.SizeThumbnail.Name + ".jpg"
		if err := s.storage.Save(ctx, thumbKey, bytes.NewReader(thumb.Data), int64(len(thumb.Data)), "image/jpeg"); err != nil {
			// оригинал уже сохранен, без превью ответ остается корректным
			logger.CtxWarn(ctx, "Failed to store thumbnail", "key", thumbKey, "error", err)
		} else {
			resp.ThumbnailURL = s.storage.URL(thumbKey)
		}
	}

	logger.CtxInfo(ctx, "File uploaded", "user_id", userID, "key", key, "size", file.Size, "content_type", contentType)
	return resp, nil
}

// detectContentType: заголовок части, затем расширение файла
func detectContentType(file *multipart.FileHeader) string {
	if header := file.Header.Get("Content-Type"); header != "" {
		if mediaType, _, err := mime.ParseMediaType(header); err == nil && mediaType != "application/octet-stream" {
			return strings.ToLower(mediaType)
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return strings.ToLower(mediaType)
		}
	}
	return "application/octet-stream"
}
