package dto

import (
	"collab_backend/internal/models"
)

type AdminUserQuery struct {
	Role     models.UserRole `form:"role" validate:"omitempty,is-user-role"`
	IsActive *bool           `form:"isActive"`
	Search   string          `form:"search" validate:"omitempty,max=100"`
	Pagination
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type AdminUserResponse struct {
	User    *models.User     `json:"user"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}

type PlatformStats struct {
	Users       UserStats        `json:"users"`
	Campaigns   map[string]int64 `json:"campaigns"`
	Invitations map[string]int64 `json:"invitations"`
	Drafts      map[string]int64 `json:"drafts"`
}

type UserStats struct {
	Total  int64            `json:"total"`
	Active int64            `json:"active"`
	ByRole map[string]int64 `json:"byRole"`
}
