package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Session   SessionConfig
	Upload    UploadConfig
	Admission AdmissionConfig
	Api       ApiConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SignInURL          string
	TemplateDir        string
}

type SessionConfig struct {
	CookieName   string
	CookieSecret string
	CookieDomain string
	CookieSecure bool
	TTL          time.Duration
	RedisURL     string
	Store        string // "redis" or "memory"
}

type UploadConfig struct {
	MaxFileSizeBytes int64
}

type AdmissionConfig struct {
	MaxRequestsPerDay int
}

type ApiConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			SignInURL:          getEnv("SIGN_IN_URL", "http://localhost:4000/signin"),
			TemplateDir:        getEnv("TEMPLATE_DIR", "views"),
		},
		Session: SessionConfig{
			CookieName:   getEnv("COOKIE_NAME", "__EXT"),
			CookieSecret: getEnv("COOKIE_SECRET", ""),
			CookieDomain: getEnv("COOKIE_DOMAIN", ""),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
			TTL:          getEnvAsDuration("SESSION_TTL", time.Hour),
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
			Store:        getEnv("SESSION_STORE", "redis"),
		},
		Upload: UploadConfig{
			MaxFileSizeBytes: int64(getEnvAsInt("MAX_FILE_SIZE_BYTES", 4*1024*1024)),
		},
		Admission: AdmissionConfig{
			MaxRequestsPerDay: getEnvAsInt("MAX_EXTENSION_REQUESTS_PER_DAY", 1000),
		},
		Api: ApiConfig{
			BaseURL: getEnv("EXTENSIONS_API_URL", "http://localhost:9333"),
			Timeout: getEnvAsDuration("EXTENSIONS_API_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
