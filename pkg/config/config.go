package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	// Backend selects the hosted data service: "firestore" or "postgres".
	Backend     string
	DatabaseURL string

	FirebaseProject            string
	FirebaseApiKey             string
	FirebaseServiceAccountPath string
	FirebaseServiceAccountJSON string

	// LocalStore selects where the cart and session survive restarts:
	// "sqlite" (device-local file) or "redis".
	LocalStore     string
	LocalStorePath string
	RedisAddr      string
	RedisPassword  string

	AdminEmail    string
	CheckoutDelay time.Duration
	AuthRateLimit int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Backend:     getEnv("BACKEND", "firestore"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:             getEnv("FIREBASE_API_KEY", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),

		LocalStore:     getEnv("LOCAL_STORE", "sqlite"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./gretastore.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", "bryan@greta.pe"),
		CheckoutDelay: getEnvAsDuration("CHECKOUT_DELAY", 2*time.Second),
		AuthRateLimit: int(getEnvAsInt64("AUTH_RATE_LIMIT", 5)),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
