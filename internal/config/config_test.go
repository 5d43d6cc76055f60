package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("RECORD_STORE_MAX_ENTRIES", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CONTENT_TIMEOUT_SEC", "3")

	cfg := Load()

	assert.Equal(t, "test-key", cfg.Generation.APIKey)
	assert.Equal(t, 20, cfg.Records.MaxEntries)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 3*time.Second, cfg.Content.Timeout())
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"QA_PORT", "INGEST_PORT", "RECORD_MAX_CHARS", "CONTENT_GATEWAY_URL", "GENERATION_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5001", cfg.QAPort)
	assert.Equal(t, "8000", cfg.IngestPort)
	assert.Equal(t, 8000, cfg.Records.MaxChars)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs", cfg.Content.GatewayURL)
	assert.Equal(t, "gemini", cfg.Generation.Provider)
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout())
}

func TestLoggerConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, LoggerConfig{}.Location())
	assert.Equal(t, time.UTC, LoggerConfig{TimeZone: "Not/AZone"}.Location())
	assert.Equal(t, "Asia/Jakarta", LoggerConfig{TimeZone: "Asia/Jakarta"}.Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
