package auth

import (
	"strings"
	"unicode"

	"collab_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword: минимум 8 символов, хотя бы одна буква и одна цифра
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}
	return nil
}

var freeMailDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"yahoo.co.in":    {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"live.com":       {},
	"msn.com":        {},
	"icloud.com":     {},
	"me.com":         {},
	"aol.com":        {},
	"protonmail.com": {},
	"proton.me":      {},
	"mail.ru":        {},
	"yandex.ru":      {},
	"rediffmail.com": {},
	"gmx.com":        {},
	"zoho.com":       {},
}

// IsBusinessEmail - домен не из списка бесплатных почтовых сервисов
func IsBusinessEmail(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	_, free := freeMailDomains[domain]
	return !free
}

// ValidateBusinessEmail возвращает ErrBusinessEmailRequired для бесплатных доменов
func ValidateBusinessEmail(email string) error {
	if !IsBusinessEmail(email) {
		return apperrors.ErrBusinessEmailRequired
	}
	return nil
}
