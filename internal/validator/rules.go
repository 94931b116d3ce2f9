package validator

import (
	"log"
	"regexp"

	"collab_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// registerCustomRules регистрирует кастомные правила в переданном валидаторе
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// правило без регистрации - ошибка сборки приложения, а не запроса
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-campaign-status", validateCampaignStatus)
	mustRegister("is-invitation-decision", validateInvitationDecision)
	mustRegister("is-review-action", validateReviewAction)
	mustRegister("is-content-type", validateContentType)
	mustRegister("slug", validateSlug)
}

// Пустые значения пропускаются: для этого есть 'required'

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.UserRole(value).IsValid()
}

func validateCampaignStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.CampaignStatus(value).IsValid()
}

func validateInvitationDecision(fl validator.FieldLevel) bool {
	switch models.InvitationStatus(fl.Field().String()) {
	case "", models.InvitationStatusAccepted, models.InvitationStatusRejected:
		return true
	default:
		return false
	}
}

func validateReviewAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "start_review", "approve", "reject", "request_changes":
		return true
	default:
		return false
	}
}

func validateContentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ContentType(value).IsValid()
}

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || (len(value) <= 64 && slugPattern.MatchString(value))
}
