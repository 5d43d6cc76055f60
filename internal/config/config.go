package config

import (
	"os"
	"strconv"
	"time"
)

// GenerationConfig holds settings for the hosted text generation endpoint.
type GenerationConfig struct {
	Provider   string // gemini, openai or anthropic
	APIKey     string
	Model      string
	Endpoint   string
	TimeoutSec int
}

// Timeout returns the request timeout as a duration.
func (c GenerationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// ContentConfig controls how content identifiers are resolved.
type ContentConfig struct {
	Source     string // gateway or minio
	GatewayURL string
	TimeoutSec int
}

// Timeout returns the fetch timeout as a duration.
func (c ContentConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RecordStoreConfig selects and sizes the patient record store.
type RecordStoreConfig struct {
	Backend    string // memory or redis
	RedisURL   string
	KeyPrefix  string
	MaxEntries int
	TTLSec     int
	MaxChars   int
}

// TTL returns the record time-to-live; zero means no expiry.
func (c RecordStoreConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// NLPConfig holds the endpoints of the entity recognizer and OCR predictor.
type NLPConfig struct {
	NERURL     string
	OCRURL     string
	TimeoutSec int
}

// Timeout returns the NLP request timeout as a duration.
func (c NLPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// LoggerConfig holds logger settings.
type LoggerConfig struct {
	Level    string
	Env      string
	TimeZone string
}

// Location resolves TimeZone, falling back to UTC when it is unknown.
func (c LoggerConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AppConfig is the centralized configuration struct for both services.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	QAPort          string
	IngestPort      string
	UploadMaxBytes  int
	SampleRecord    string
	SamplePatientID string
	Generation      GenerationConfig
	Content         ContentConfig
	MinIO           MinIOConfig
	Records         RecordStoreConfig
	NLP             NLPConfig
	Logger          LoggerConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		QAPort:          getEnv("QA_PORT", "5001"),
		IngestPort:      getEnv("INGEST_PORT", "8000"),
		UploadMaxBytes:  getEnvInt("UPLOAD_MAX_BYTES", 20*1024*1024),
		SampleRecord:    getEnv("SAMPLE_RECORD_PATH", "sample-data.txt.pdf"),
		SamplePatientID: getEnv("SAMPLE_PATIENT_ID", "test_patient"),
		Generation: GenerationConfig{
			Provider:   getEnv("GENERATION_PROVIDER", "gemini"),
			APIKey:     getEnv("GEMINI_API_KEY", getEnv("GENERATION_API_KEY", "")),
			Model:      getEnv("GENERATION_MODEL", ""),
			Endpoint:   getEnv("GENERATION_ENDPOINT", ""),
			TimeoutSec: getEnvInt("GENERATION_TIMEOUT_SEC", 30),
		},
		Content: ContentConfig{
			Source:     getEnv("CONTENT_SOURCE", "gateway"),
			GatewayURL: getEnv("CONTENT_GATEWAY_URL", "https://gateway.pinata.cloud/ipfs"),
			TimeoutSec: getEnvInt("CONTENT_TIMEOUT_SEC", 8),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Records: RecordStoreConfig{
			Backend:    getEnv("RECORD_STORE", "memory"),
			RedisURL:   getEnv("REDIS_URL", ""),
			KeyPrefix:  getEnv("RECORD_KEY_PREFIX", "patient_record:"),
			MaxEntries: getEnvInt("RECORD_STORE_MAX_ENTRIES", 1000),
			TTLSec:     getEnvInt("RECORD_TTL_SEC", 0),
			MaxChars:   getEnvInt("RECORD_MAX_CHARS", 8000),
		},
		NLP: NLPConfig{
			NERURL:     getEnv("NER_URL", ""),
			OCRURL:     getEnv("OCR_URL", ""),
			TimeoutSec: getEnvInt("NLP_TIMEOUT_SEC", 20),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Env:      getEnv("APP_ENV", "development"),
			TimeZone: getEnv("LOG_TIMEZONE", "UTC"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
