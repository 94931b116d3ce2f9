package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesPredefinedAfterWrapping(t *testing.T) {
	err := fmt.Errorf("respond: %w", ErrAlreadyResponded.WithDetails("x"))

	assert.True(t, Is(err, ErrAlreadyResponded))
	assert.False(t, Is(err, ErrDuplicateInvitation))
	assert.True(t, HasCode(err, CodeConflict))
}

func TestAppError_WithDetailsDoesNotMutateOriginal(t *testing.T) {
	_ = ErrInvalidBudget.WithDetails(map[string]int{"min": 1})
	assert.Nil(t, ErrInvalidBudget.Details)
}

func TestHandleError_RendersEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
		wantMsg    string
	}{
		{"forbidden", ErrCannotModifyOtherAdmin, http.StatusForbidden, CodeForbidden, "Cannot deactivate or delete another admin"},
		{"unauthenticated", NewUnauthorizedError("Authentication required"), http.StatusUnauthorized, CodeUnauthorized, "Authentication required"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, CodeInternalError, "Internal server error"},
		{"upstream", NewUpstreamError("token exchange", http.StatusBadRequest, errors.New("bad code")), http.StatusBadRequest, CodeExternalServiceError, "Upstream request failed: token exchange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}
