package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	t.Setenv("LDFLAG_TEST_TRUE", "true")
	t.Setenv("LDFLAG_TEST_ZERO", "0")
	t.Setenv("LDFLAG_TEST_JUNK", "sometimes")

	assert.True(t, envBool("LDFLAG_TEST_TRUE", false))
	assert.False(t, envBool("LDFLAG_TEST_ZERO", true))
	assert.True(t, envBool("LDFLAG_TEST_JUNK", true), "unparseable falls back to default")
	assert.False(t, envBool("LDFLAG_TEST_UNSET", false))
}

func TestLoadSecretsFromEnv(t *testing.T) {
	t.Setenv("BWS_ACCESS_TOKEN", "")
	t.Setenv("DB_URL", "postgres://localhost/phones")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")

	secrets := loadSecrets("phone-validator-service", "dev")
	assert.Equal(t, "postgres://localhost/phones", secrets["DB_URL"])
	assert.Equal(t, "AC123", secrets["TWILIO_ACCOUNT_SID"])
	assert.Empty(t, secrets["TWILIO_AUTH_TOKEN"])
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BWS_ACCESS_TOKEN", "")
	t.Setenv("LD_SDK_KEY", "")
	t.Setenv("ENV", "dev")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_URL_FROM_ANYWHERE", "https://dialer.example.com")
	t.Setenv("DB_URL", "postgres://localhost/phones")
	t.Setenv("LDFLAG_CORS_HIGH_SECURITY", "false")
	t.Setenv("LDFLAG_SEED_DB_WITH_TEST_DATA", "true")
	t.Setenv("LDFLAG_VALIDATE_NUMBERS_WITH_TWILIO", "")

	cfg := LoadConfig()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "postgres://localhost/phones", cfg.DBUrl)
	assert.False(t, cfg.LDFlag_CORSHighSecurity)
	assert.True(t, cfg.LDFlag_SeedDbWithTestData)
	assert.False(t, cfg.LDFlag_ValidateNumbersWithTwilio)
}
