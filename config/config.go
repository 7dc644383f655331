package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Public site base URL used for checkout redirect and portal return URLs.
	BaseURL string `mapstructure:"BASE_URL"`

	// Stripe configuration.
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`

	// The exact meeting-identifier string the booking form submits for
	// online lessons. Any other method value is treated as an in-person
	// (Private) lesson.
	ZoomMethodID string `mapstructure:"ZOOM_METHOD_ID"`

	// Stripe price IDs per lesson method and plan. Confirm these against
	// the Stripe dashboard before deploying; Validate on the assembled
	// catalog rejects placeholders at startup.
	PricePrivate30 string `mapstructure:"PRICE_PRIVATE_30MIN"`
	PricePrivate60 string `mapstructure:"PRICE_PRIVATE_60MIN"`
	PriceZoom30    string `mapstructure:"PRICE_ZOOM_30MIN"`
	PriceZoom60    string `mapstructure:"PRICE_ZOOM_60MIN"`

	// Redis configuration (session-lookup cache and reminder queue).
	// Leave REDIS_ADDR empty to run without either.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BASE_URL", "https://warramusic.com.au")
	viper.SetDefault("ZOOM_METHOD_ID", "Zoom ID: #322 428 0987")
	viper.SetDefault("PRICE_PRIVATE_30MIN", "price_1RqYEhBbgLT6ovycotduTf5F")
	viper.SetDefault("PRICE_PRIVATE_60MIN", "price_1RyvsoBbgLT6ovycfOwrQurL")
	viper.SetDefault("PRICE_ZOOM_30MIN", "price_1RzdaJBbgLT6ovycE5wFU9gM")
	viper.SetDefault("PRICE_ZOOM_60MIN", "price_1RzdcdBbgLT6ovycUdkE2XiH")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
