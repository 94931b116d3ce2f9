package apperrors

import (
	"net/http"
)

// ErrNotFound - запись не найдена, а доменного сентинела для нее нет (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - нарушение уникального ключа без доменного сентинела (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidTransition - переход статуса недопустим из текущего состояния (409)
func ErrInvalidTransition(domain, from, action string) *AppError {
	return New(CodeInvalidStatus, domain, "Invalid transition", http.StatusConflict).
		WithDetails(map[string]string{"from": from, "action": action})
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired session",
	http.StatusUnauthorized,
)

var ErrAccountInactive = New(
	CodeAccountInactive,
	"auth",
	"Your account has been deactivated",
	http.StatusForbidden,
)

var ErrBusinessEmailRequired = New(
	CodeValidationFailed,
	"validation",
	"business email required",
	http.StatusBadRequest,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters and contain a letter and a digit",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeConflict,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeConflict,
	"auth",
	"Instagram username already registered",
	http.StatusConflict,
)

var ErrAdminAlreadyExists = New(
	CodeConflict,
	"auth",
	"An admin account already exists",
	http.StatusConflict,
)

// --- Users / Admin ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrCannotModifyOtherAdmin = New(
	CodeForbidden,
	"admin",
	"Cannot deactivate or delete another admin",
	http.StatusForbidden,
)

// --- Campaigns / Invitations ---

var ErrDuplicateInvitation = New(
	CodeConflict,
	"invitation",
	"Influencer already invited to this campaign",
	http.StatusConflict,
)

var ErrAlreadyResponded = New(
	CodeConflict,
	"invitation",
	"Invitation already responded",
	http.StatusConflict,
)

var ErrInvitationNotFound = New(
	CodeNotFound,
	"invitation",
	"Invitation not found",
	http.StatusNotFound,
)

var ErrInvalidBudget = New(
	CodeValidationFailed,
	"campaign",
	"Budget max must be greater than min",
	http.StatusBadRequest,
)

// ErrConcurrentModification - запись изменена другим запросом (версия не совпала)
var ErrConcurrentModification = New(
	CodeConflict,
	"storage",
	"Resource was modified concurrently, retry the request",
	http.StatusConflict,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
