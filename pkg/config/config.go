package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	AppBaseURL      string
	FirebaseProject string

	StripeSecretKey     string
	StripeWebhookSecret string
	PlatformFeePercent  float64

	OneSignalAppID  string
	OneSignalAPIKey string
	PushProvider    string // "fcm" or "onesignal"

	GeocodingProvider string // "google", "mapbox" or "nominatim"
	GoogleMapsAPIKey  string
	MapboxAccessToken string

	StorageBucket string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		AppBaseURL:      getEnv("APP_BASE_URL", "https://app.rentitforward.com"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		PlatformFeePercent:  getEnvAsFloat("PLATFORM_FEE_PERCENT", 5),

		OneSignalAppID:  getEnv("ONESIGNAL_APP_ID", ""),
		OneSignalAPIKey: getEnv("ONESIGNAL_API_KEY", ""),
		PushProvider:    getEnv("PUSH_PROVIDER", "fcm"),

		GeocodingProvider: getEnv("GEOCODING_PROVIDER", "nominatim"),
		GoogleMapsAPIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
		MapboxAccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),

		StorageBucket: getEnv("STORAGE_BUCKET", ""),
	}

	return config, nil
}

// IsStripeConfigured reports whether this process can perform
// server-only payment operations.
func (c *Config) IsStripeConfigured() bool {
	return c.StripeSecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}
