// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "") // restores the original value on cleanup
	os.Unsetenv(key)
}

// setRequiredEnv sets the minimum environment for a valid config.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_TYPE", "ADMIN_ID", "WEBHOOK_URL", "WEBHOOK_SECRET",
		"TIMEZONE", "DIGEST_SCHEDULE", "AUTO_EXPIRE", "DEBUG", "LOG_FILE",
	} {
		unsetEnv(t, key)
	}
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ADMIN_IDS", "10,20")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("AUTO_EXPIRE", "true")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "file:test.db", cfg.DatabaseURL)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, []int64{10, 20}, cfg.AdminIDs)
	assert.True(t, cfg.AutoExpire)
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 3318, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "0 0 * * *", cfg.DigestSchedule)
	assert.False(t, cfg.UseWebhook())
	assert.Empty(t, cfg.WebhookSecret, "no secret without a webhook")
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:other.db", "--admin", "7"})
	require.NoError(t, err)

	// CLI should override env
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "file:other.db", cfg.DatabaseURL)
	assert.Equal(t, []int64{7}, cfg.AdminIDs)
}

func TestParseFlags_LegacyAdminID(t *testing.T) {
	setRequiredEnv(t)
	unsetEnv(t, "ADMIN_IDS")
	t.Setenv("ADMIN_ID", "555")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)
	assert.Equal(t, []int64{555}, cfg.AdminIDs)
}

func TestParseFlags_WebhookSecretDerived(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEBHOOK_URL", "https://bot.example.com/webhook")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.True(t, cfg.UseWebhook())
	assert.NotEmpty(t, cfg.WebhookSecret)

	again, err := ParseFlags([]string{})
	require.NoError(t, err)
	assert.Equal(t, cfg.WebhookSecret, again.WebhookSecret, "derived secret must be stable across restarts")
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name  string
		unset []string
		env   map[string]string
		args  []string
	}{
		{"missing database", []string{"DATABASE_URL"}, nil, nil},
		{"missing token", []string{"TELEGRAM_TOKEN"}, nil, nil},
		{"missing admins", []string{"ADMIN_IDS"}, nil, nil},
		{"bad legacy admin", []string{"ADMIN_IDS"}, map[string]string{"ADMIN_ID": "boss"}, nil},
		{"bad time zone", nil, map[string]string{"TIMEZONE": "Mars/Olympus"}, nil},
		{"bad port", nil, nil, []string{"-p", "70000"}},
		{"unknown flag", nil, nil, []string{"--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for _, k := range tt.unset {
				unsetEnv(t, k)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORD_SPRINT_TEST_VALUE=from-file\n"), 0o600))

	unsetEnv(t, "WORD_SPRINT_TEST_VALUE")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("WORD_SPRINT_TEST_VALUE"))

	// missing file is fine
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
