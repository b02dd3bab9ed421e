package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Realtime transport credentials
	PusherAppID   string `mapstructure:"PUSHER_APP_ID"`
	PusherKey     string `mapstructure:"PUSHER_KEY"`
	PusherSecret  string `mapstructure:"PUSHER_SECRET"`
	PusherCluster string `mapstructure:"PUSHER_CLUSTER"`

	// Invoice QR seller identity
	SellerName string `mapstructure:"SELLER_NAME"`
	VATNumber  string `mapstructure:"VAT_NUMBER"`

	// File storage root for uploaded documents and generated reports
	FileStorageDir string `mapstructure:"FILE_STORAGE_DIR"`

	// Rate limit spec, e.g. "100-M" for 100 requests per minute
	RateLimit string `mapstructure:"RATE_LIMIT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "office-mgmt-app")
	viper.SetDefault("PUSHER_APP_ID", "")
	viper.SetDefault("PUSHER_KEY", "")
	viper.SetDefault("PUSHER_SECRET", "")
	viper.SetDefault("PUSHER_CLUSTER", "eu")
	viper.SetDefault("SELLER_NAME", "")
	viper.SetDefault("VAT_NUMBER", "")
	viper.SetDefault("FILE_STORAGE_DIR", "./storage")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.PusherAppID = viper.GetString("PUSHER_APP_ID")
	cfg.PusherKey = viper.GetString("PUSHER_KEY")
	cfg.PusherSecret = viper.GetString("PUSHER_SECRET")
	cfg.PusherCluster = viper.GetString("PUSHER_CLUSTER")
	if cfg.PusherAppID == "" {
		log.Println("Warning: PUSHER_APP_ID not set. Realtime delivery will be disabled.")
	}

	cfg.SellerName = viper.GetString("SELLER_NAME")
	cfg.VATNumber = viper.GetString("VAT_NUMBER")
	cfg.FileStorageDir = viper.GetString("FILE_STORAGE_DIR")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
