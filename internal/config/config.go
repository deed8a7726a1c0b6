package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the verification service.
//
// OpenAIAPIKey left empty is a recognized state, not an error: the pipeline
// runs in degraded mode and accepts uploads pending manual review.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	JWTSecret           string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	OpenAIAPIKey        string
	OpenAIModel         string
	MaxUploadMB         int
	AdminCacheTTL       time.Duration
	BrevoAPIKey         string
	BrevoSenderEmail    string
	BrevoSenderName     string
	EventChannelBase    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// AIConfigured reports whether the AI verification adapter can be used.
func (c Config) AIConfigured() bool {
	return c.OpenAIAPIKey != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Workers United Verify API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cloudinary.folder", "documents")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("admin.cache_ttl", "1m")
	v.SetDefault("event.channel_base", "wu:verify")
	v.SetDefault("brevo.sender_name", "Workers United")

	ttlString := v.GetString("admin.cache_ttl")
	if ttlString == "" {
		ttlString = "1m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid admin cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
		OpenAIAPIKey:        v.GetString("openai_api_key"),
		OpenAIModel:         v.GetString("openai.model"),
		MaxUploadMB:         v.GetInt("max_upload_mb"),
		AdminCacheTTL:       ttl,
		BrevoAPIKey:         v.GetString("brevo.api_key"),
		BrevoSenderEmail:    v.GetString("brevo.sender_email"),
		BrevoSenderName:     v.GetString("brevo.sender_name"),
		EventChannelBase:    v.GetString("event.channel_base"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}
