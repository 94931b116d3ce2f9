package dto

import (
	"collab_backend/internal/models"
)

// BrandRegisterRequest - регистрация бренда, только корпоративная почта
type BrandRegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	Name        string `json:"name" validate:"required,max=100"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	Industry    string `json:"industry" validate:"omitempty,max=100"`
}

// InfluencerRegisterRequest - email необязателен, идентификатор - username
type InfluencerRegisterRequest struct {
	Email             string `json:"email" validate:"omitempty,email,max=255"`
	Password          string `json:"password" validate:"required,min=8,max=128"`
	Name              string `json:"name" validate:"required,max=100"`
	InstagramUsername string `json:"instagramUsername" validate:"required,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// InfluencerLoginRequest - вход по email или по instagram username
type InfluencerLoginRequest struct {
	Email             string `json:"email" validate:"required_without=InstagramUsername,omitempty,email"`
	InstagramUsername string `json:"instagramUsername" validate:"required_without=Email,omitempty,max=30"`
	Password          string `json:"password" validate:"required"`
}

type AdminSetupRequest struct {
	SetupKey string `json:"setupKey" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,max=100"`
}

type InstagramCallbackQuery struct {
	Code  string `form:"code" validate:"required"`
	State string `form:"state"`
}

// AuthResponse - токен не сериализуется: он уходит в HttpOnly cookie
type AuthResponse struct {
	User    *models.User     `json:"user"`
	Profile *ProfileResponse `json:"profile,omitempty"`
	Token   string           `json:"-"`
}

type MeResponse struct {
	User    *models.User     `json:"user"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}
