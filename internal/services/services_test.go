package services

import (
	"context"
	"sync"
	"testing"

	"collab_backend/internal/auth"
	"collab_backend/internal/config"
	"collab_backend/internal/email"
	"collab_backend/internal/instagram"
	"collab_backend/internal/models"
	"collab_backend/internal/repositories"
	"collab_backend/internal/storage"
	"collab_backend/internal/testutil"
	"collab_backend/pkg/apperrors"
	"collab_backend/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pushedEvent struct {
	userID string
	event  ws.Event
}

// fakePusher запоминает события вместо отправки в websocket
type fakePusher struct {
	mu     sync.Mutex
	events []pushedEvent
}

func (f *fakePusher) SendToUser(userID string, event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, pushedEvent{userID: userID, event: event})
}

func (f *fakePusher) typesFor(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		if e.userID == userID {
			out = append(out, e.event.Type)
		}
	}
	return out
}

type fakeInstagram struct {
	account *instagram.Account
	err     error
}

func (f *fakeInstagram) AuthCodeURL(state string) string {
	return "https://instagram.test/oauth/authorize?state=" + state
}

func (f *fakeInstagram) Authenticate(ctx context.Context, code string) (*instagram.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.account, nil
}

type testEnv struct {
	db     *gorm.DB
	svc    *ServiceContainer
	mail   *email.NoopProvider
	events *fakePusher
	ig     *fakeInstagram
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	templates, err := email.NewDefaultTemplateManager()
	require.NoError(t, err)
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	env := &testEnv{
		db:     testutil.NewTestDB(t),
		mail:   email.NewNoopProvider(templates),
		events: &fakePusher{},
		ig:     &fakeInstagram{},
		tokens: auth.NewTokenManager("test-secret", 0),
	}
	env.svc = NewServiceContainer(Dependencies{
		Config: &config.Config{
			Admin:   config.AdminConfig{SetupKey: "setup-key"},
			Pricing: config.PricingConfig{BaseRate: 100, Currency: "INR"},
			Upload: config.UploadConfig{
				MaxSize:      1 << 20,
				AllowedTypes: []string{"image/jpeg", "image/png", "video/mp4"},
			},
		},
		Tokens:    env.tokens,
		Email:     env.mail,
		Storage:   store,
		Instagram: env.ig,
		Events:    env.events,
	})
	return env
}

func principalOf(u *models.User) auth.Principal {
	return auth.Principal{UserID: u.ID, Role: u.Role}
}

// assertAppError проверяет HTTP-код AppError в цепочке
func assertAppError(t *testing.T, err error, httpCode int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, httpCode, appErr.HTTPCode, appErr.Error())
}

// deactivate выключает аккаунт через репозиторий, хуки модели не срабатывают
func deactivate(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	require.NoError(t, repositories.NewUserRepository().UpdateStatus(db, userID, false))
}
