package myconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	CommerceDomain      string
	CommerceAccessToken string
	CommerceAPIVersion  string

	MarketingAPIKey      string
	MarketingPublicKey   string
	MarketingListID      string
	MarketingAPIRevision string
	MarketingBaseURL     string

	AnalyticsID         string
	TagManagerID        string
	MarketingPixelID    string
	MonitoringScriptURL string

	QuizCollectionHandle string
	QuizPreferredProduct string
	QuizThreshold        int

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Offline reports whether the server runs against the built-in demo catalog.
func (c Config) Offline() bool {
	return c.CommerceDomain == ""
}

func (c Config) MarketingConfigured() bool {
	return c.MarketingAPIKey != ""
}

// Load reads an optional .env file and then the environment. Variables already set in the
// environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("error reading %s: %s", f, err)
		}
	}

	threshold, err := intOrDefault("QUIZ_THRESHOLD", 10)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        stringOrDefault("PORT", "8080"),
		Environment: stringOrDefault("APP_ENV", "dev"),

		CommerceDomain:      os.Getenv("COMMERCE_STORE_DOMAIN"),
		CommerceAccessToken: os.Getenv("COMMERCE_STOREFRONT_TOKEN"),
		CommerceAPIVersion:  stringOrDefault("COMMERCE_API_VERSION", "2024-01"),

		MarketingAPIKey:      os.Getenv("KLAVIYO_PRIVATE_KEY"),
		MarketingPublicKey:   os.Getenv("KLAVIYO_PUBLIC_KEY"),
		MarketingListID:      os.Getenv("KLAVIYO_LIST_ID"),
		MarketingAPIRevision: stringOrDefault("KLAVIYO_REVISION", "2024-02-15"),
		MarketingBaseURL:     stringOrDefault("KLAVIYO_BASE_URL", "https://a.klaviyo.com"),

		AnalyticsID:         os.Getenv("GA_MEASUREMENT_ID"),
		TagManagerID:        os.Getenv("GTM_ID"),
		MarketingPixelID:    os.Getenv("META_PIXEL_ID"),
		MonitoringScriptURL: os.Getenv("MONITORING_SCRIPT_URL"),

		QuizCollectionHandle: stringOrDefault("QUIZ_COLLECTION", "quiz"),
		QuizPreferredProduct: stringOrDefault("QUIZ_PREFERRED_PRODUCT", "Cloud"),
		QuizThreshold:        threshold,

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}

	err = cfg.validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.CommerceDomain != "" && c.CommerceAccessToken == "" {
		return fmt.Errorf("COMMERCE_STOREFRONT_TOKEN is required when COMMERCE_STORE_DOMAIN is set")
	}
	if c.QuizThreshold < 0 || c.QuizThreshold > 15 {
		return fmt.Errorf("QUIZ_THRESHOLD must be between 0 and 15, got %d", c.QuizThreshold)
	}
	return nil
}

func stringOrDefault(name string, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}

func intOrDefault(name string, defaultValue int) (int, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric, got %q", name, value)
	}
	return i, nil
}
