package dto

type UploadResponse struct {
	URL          string `json:"url"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}
