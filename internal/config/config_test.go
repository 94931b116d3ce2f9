package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9000
  env: production
database:
  url: postgres://file/db
jwt:
  secret: from-file
email:
  provider: smtp
  smtp_host: smtp.acme-corp.com
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileThenEnvOverlay(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://file/db", cfg.Database.DSN)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "smtp", cfg.Email.Provider)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 168, cfg.JWT.TTLHours)
	assert.Equal(t, "token", cfg.JWT.CookieName)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, float64(100), cfg.Pricing.BaseRate)
	assert.Equal(t, "INR", cfg.Pricing.Currency)
	assert.Equal(t, 12, cfg.Instagram.MediaLimit)
}

func TestLoad_MissingFileNeedsDatabaseURL(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	t.Setenv("DATABASE_URL", "")

	_, err := Load(missing)
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_SECRET", "s")
	cfg, err := Load(missing)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
}

func TestLoad_RequiresSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 1\n")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	assert.ErrorContains(t, err, "jwt.secret")
}
