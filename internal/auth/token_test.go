package auth

import (
	"testing"
	"time"

	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 0)
	assert.Equal(t, DefaultTokenTTL, m.TTL())

	u := models.NewInfluencerUser("Priya", models.InfluencerAccount{InstagramUsername: "Priya.Creates"})
	u.ID = "user-1"

	token, err := m.GenerateToken(ClaimsForUser(u))
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, models.UserRoleInfluencer, claims.Role)
	assert.Equal(t, "priya.creates", claims.InstagramUsername)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	good, err := m.GenerateToken(Claims{UserID: "u", Role: models.UserRoleBrand})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenManager("other", time.Hour).ParseToken(good)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenManager("test-secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := expired.ParseToken(good)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseToken("not.a.token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u"})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.ParseToken(s)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
