package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type budget struct {
	Min int64 `json:"min" validate:"gte=0"`
	Max int64 `json:"max" validate:"gtfield=Min"`
}

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Slug     string `json:"slug" validate:"omitempty,slug"`
	Status   string `json:"status" validate:"omitempty,is-campaign-status"`
	Decision string `json:"decision" validate:"omitempty,is-invitation-decision"`
	Action   string `json:"action" validate:"omitempty,is-review-action"`
	Type     string `json:"type" validate:"omitempty,is-content-type"`
	Role     string `json:"role" validate:"omitempty,is-user-role"`
	Budget   budget `json:"budget"`
}

func validSample() sampleRequest {
	return sampleRequest{
		Email:    "team@acme-corp.com",
		Slug:     "priya-creates-2",
		Status:   "active",
		Decision: "accepted",
		Action:   "request_changes",
		Type:     "reel",
		Role:     "brand",
		Budget:   budget{Min: 100, Max: 200},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, New().Validate(validSample()))
}

func TestValidate_CustomRules(t *testing.T) {
	req := validSample()
	req.Slug = "Bad Slug"
	req.Status = "archived"
	req.Decision = "pending"
	req.Action = "escalate"
	req.Type = "tweet"
	req.Role = "moderator"
	req.Budget = budget{Min: 200, Max: 200}

	err := New().Validate(req)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, vErr.Errors, 7)
	assert.Contains(t, vErr.Errors, "slug")
	assert.Contains(t, vErr.Errors, "budget.max")
	assert.Equal(t, "Must be one of: accepted, rejected", vErr.Errors["decision"])
}

func TestValidate_RequiredMessage(t *testing.T) {
	req := validSample()
	req.Email = ""

	err := New().Validate(req)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"email": "This field is required"}, vErr.Errors)
	assert.Equal(t, "Validation failed: field 'email': This field is required", vErr.Error())
}

func TestSlugRule(t *testing.T) {
	type s struct {
		Slug string `json:"slug" validate:"slug"`
	}
	v := New()
	for _, ok := range []string{"a", "abc-123", "priya"} {
		assert.NoError(t, v.Validate(s{Slug: ok}), ok)
	}
	for _, bad := range []string{"-abc", "abc-", "a--b", "ABC", "a_b"} {
		assert.Error(t, v.Validate(s{Slug: bad}), bad)
	}
}
