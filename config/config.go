package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Supplier API configuration.
	SupplierURL    string `mapstructure:"SUPPLIER_URL"`
	SupplierAPIKey string `mapstructure:"SUPPLIER_API_KEY"`

	// Caller authentication. PartnerAPIKeys is a comma-separated list of
	// accepted keys; JWTSecret signs/validates partner bearer tokens.
	PartnerAPIKeys string `mapstructure:"PARTNER_API_KEYS"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`

	// Checkout link handoff.
	CheckoutSecret  string `mapstructure:"CHECKOUT_SECRET"`
	CheckoutBaseURL string `mapstructure:"CHECKOUT_BASE_URL"`

	// Optional Stripe key for verifying payment intent status on the
	// checkout page. When empty the checkout page serves the intent as-is.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	MaxRequestsPerMin   int `mapstructure:"MAX_REQUESTS_PER_MIN"`
	SlotSearchCacheSecs int `mapstructure:"SLOT_SEARCH_CACHE_SECS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SUPPLIER_URL", "https://api.supplier.example/graphql")
	viper.SetDefault("SUPPLIER_API_KEY", "")
	viper.SetDefault("PARTNER_API_KEYS", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("CHECKOUT_SECRET", "")
	viper.SetDefault("CHECKOUT_BASE_URL", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SLOT_SEARCH_CACHE_SECS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// PartnerKeys returns the configured partner API keys as a slice.
func PartnerKeys() []string {
	raw := AppConfig.PartnerAPIKeys
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
