package auth

import (
	"errors"
	"fmt"
	"time"

	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims - содержимое сессионного токена
type Claims struct {
	UserID            string          `json:"userId"`
	Email             string          `json:"email,omitempty"`
	Role              models.UserRole `json:"role"`
	Name              string          `json:"name"`
	InstagramUsername string          `json:"instagramUsername,omitempty"`
	jwt.RegisteredClaims
}

// ClaimsForUser собирает claims из пользователя
func ClaimsForUser(u *models.User) Claims {
	return Claims{
		UserID:            u.ID,
		Email:             u.GetEmail(),
		Role:              u.Role,
		Name:              u.Name,
		InstagramUsername: u.GetInstagramUsername(),
	}
}

// TokenManager подписывает и проверяет HS256 токены
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken выставляет iat/exp/sub и подписывает токен
func (m *TokenManager) GenerateToken(claims Claims) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись, алгоритм и срок действия
func (m *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperrors.ErrInvalidToken.WithError(errors.New("token has no subject"))
	}
	return claims, nil
}
