package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	DataStore DataStoreConfig
	JWT       JWTConfig
	OTP       OTPConfig
	SMS       SMSConfig
}

// DataStoreConfig holds the remote record-store service configuration
type DataStoreConfig struct {
	URL            string
	TimeoutSeconds int
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret           string
	Algorithm        string
	CitizenTokenDays int
	AdminTokenHours  int
}

// OTPConfig holds one-time-passcode configuration
type OTPConfig struct {
	Length        int
	ExpiryMinutes int
}

// SMSConfig holds SMS channel configuration
type SMSConfig struct {
	Service         string // console | twilio | textlocal
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	TextlocalAPIKey string
	TextlocalSender string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "8000"),
		DataStore: DataStoreConfig{
			URL:            getEnv("DATA_SERVICE_URL", "http://localhost:3001"),
			TimeoutSeconds: getEnvInt("DATA_SERVICE_TIMEOUT_SECONDS", 30),
		},
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "default_secret"),
			Algorithm:        getEnv("JWT_ALGORITHM", "HS256"),
			CitizenTokenDays: getEnvInt("CITIZEN_TOKEN_DAYS", 7),
			AdminTokenHours:  getEnvInt("ADMIN_TOKEN_HOURS", 8),
		},
		OTP: OTPConfig{
			Length:        getEnvInt("OTP_LENGTH", 6),
			ExpiryMinutes: getEnvInt("OTP_EXPIRY_MINUTES", 1),
		},
		SMS: SMSConfig{
			Service:         getEnv("SMS_SERVICE", "console"),
			TwilioSID:       getEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioToken:     getEnv("TWILIO_AUTH_TOKEN", ""),
			TwilioFrom:      getEnv("TWILIO_PHONE_NUMBER", ""),
			TextlocalAPIKey: getEnv("TEXTLOCAL_API_KEY", ""),
			TextlocalSender: getEnv("TEXTLOCAL_SENDER", "BOLAPP"),
		},
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://bolisetti.app"
	}
	return origins
}
