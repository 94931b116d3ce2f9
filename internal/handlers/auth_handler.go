package handlers

import (
	"net/http"
	"time"

	"collab_backend/internal/logger"
	"collab_backend/internal/services"
	"collab_backend/internal/services/dto"
	"collab_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	oauthStateCookie = "ig_oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

// SessionCookie - параметры HttpOnly cookie с токеном сессии
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      SessionCookie
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
	}
}

// RegisterRoutes регистрирует маршруты /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/brand/register", h.RegisterBrand)
		authGroup.POST("/brand/login", h.LoginBrand)
		authGroup.POST("/influencer/register", h.RegisterInfluencer)
		authGroup.POST("/influencer/login", h.LoginInfluencer)
		authGroup.POST("/admin/login", h.LoginAdmin)
		authGroup.POST("/admin/setup", h.SetupAdmin)
		authGroup.POST("/logout", h.Logout)

		authGroup.GET("/instagram/url", h.InstagramURL)
		authGroup.GET("/instagram/callback", h.InstagramCallback)

		authGroup.GET("/me", requireAuth, h.Me)
	}
}

func (h *AuthHandler) RegisterBrand(c *gin.Context) {
	var req dto.BrandRegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RegisterBrand(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusCreated, resp)
}

func (h *AuthHandler) RegisterInfluencer(c *gin.Context) {
	var req dto.InfluencerRegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RegisterInfluencer(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusCreated, resp)
}

func (h *AuthHandler) LoginBrand(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginBrand(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, resp)
}

func (h *AuthHandler) LoginInfluencer(c *gin.Context) {
	var req dto.InfluencerLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginInfluencer(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, resp)
}

func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginAdmin(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, resp)
}

func (h *AuthHandler) SetupAdmin(c *gin.Context) {
	var req dto.AdminSetupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.SetupAdmin(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusCreated, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.authService.Me(c.Request.Context(), h.GetDB(c), p.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    resp.User,
		"profile": resp.Profile,
	})
}

// Logout только очищает cookie: токены не хранятся на сервере
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, h.cookie.Name, "", -1)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// InstagramURL выдает адрес авторизации; state сохраняется в короткоживущей cookie
func (h *AuthHandler) InstagramURL(c *gin.Context) {
	state := uuid.NewString()
	h.setCookie(c, oauthStateCookie, state, int(oauthStateTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     h.authService.InstagramAuthURL(state),
	})
}

func (h *AuthHandler) InstagramCallback(c *gin.Context) {
	var query dto.InstagramCallbackQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	if expected, err := c.Cookie(oauthStateCookie); err == nil && expected != "" {
		if query.State != expected {
			logger.CtxWarn(c.Request.Context(), "Instagram callback state mismatch")
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid OAuth state"))
			return
		}
		h.setCookie(c, oauthStateCookie, "", -1)
	}

	resp, err := h.authService.InstagramCallback(c.Request.Context(), h.GetDB(c), query.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, resp)
}

// respondWithSession: токен только в cookie, в теле - пользователь и профиль
func (h *AuthHandler) respondWithSession(c *gin.Context, status int, resp *dto.AuthResponse) {
	h.setCookie(c, h.cookie.Name, resp.Token, int(h.cookie.TTL.Seconds()))
	c.JSON(status, gin.H{
		"success": true,
		"user":    resp.User,
		"profile": resp.Profile,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
