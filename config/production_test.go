package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("FLASK_SECRET", "")
	t.Setenv("BASALAM_SCOPES", "")

	cfg := FromEnv()

	assert.Equal(t, DefaultSessionSecret, cfg.Session.Secret)
	assert.Equal(t, "customer.profile.read vendor.product.read", cfg.OAuth.Scopes)
	assert.Equal(t, "http://localtest.ir:5000/auth/callback", cfg.OAuth.RedirectURI)
	assert.Equal(t, 25*time.Second, cfg.OAuth.TokenTimeout)
	assert.Equal(t, 20*time.Second, cfg.OAuth.ProfileTimeout)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.True(t, cfg.Catalog.FailSoft)
	assert.Equal(t, "mobile", cfg.Admin.PhoneField)
	assert.NoError(t, ValidateProductionConfig(cfg))
}

func TestAdminPhonesFromEnv(t *testing.T) {
	t.Setenv("ADMIN_PHONES", " 09120000000, 09350000000 ,,")

	cfg := FromEnv()

	assert.Equal(t, []string{"09120000000", "09350000000"}, cfg.Admin.Phones)
	assert.True(t, cfg.Admin.IsAdminPhone("09120000000"))
	assert.True(t, cfg.Admin.IsAdminPhone(" 09350000000 "))
	assert.False(t, cfg.Admin.IsAdminPhone("09130000000"))
	assert.False(t, cfg.Admin.IsAdminPhone(""))
}

func TestValidateProductionRejectsInsecureDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("FLASK_SECRET", "")
	t.Setenv("BASALAM_CLIENT_ID", "")

	err := ValidateProductionConfig(FromEnv())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
	assert.Contains(t, err.Error(), "BASALAM_CLIENT_ID")
}

func TestValidateProductionAcceptsHardenedConfig(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef-prod")
	t.Setenv("BASALAM_CLIENT_ID", "client")
	t.Setenv("BASALAM_CLIENT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")

	assert.NoError(t, ValidateProductionConfig(FromEnv()))
}

func TestValidateRejectsRelativeURLs(t *testing.T) {
	cfg := FromEnv()
	cfg.OAuth.TokenURL = "/oauth/token"

	err := ValidateProductionConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BASALAM_TOKEN_URL must be an absolute URL")
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nVC_TEST_FROM_FILE=\"file value\"\nVC_TEST_PRESET=file\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("VC_TEST_PRESET", "env")
	t.Setenv("VC_TEST_FROM_FILE", "")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "file value", os.Getenv("VC_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("VC_TEST_PRESET"))
}

func TestDatabaseURL(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", Name: "camp", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/camp?sslmode=disable", cfg.URL())
	assert.Equal(t, "host=db port=5432 user=u password=p@ss dbname=camp sslmode=disable", cfg.DSN())
}
