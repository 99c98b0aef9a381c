package config

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	Environment string `mapstructure:"ENVIRONMENT"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	MongoURI            string        `mapstructure:"MONGO_URI"`
	MongoDatabase       string        `mapstructure:"MONGO_DATABASE"`
	MongoConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	MongoMinPoolSize    uint64        `mapstructure:"MONGO_MIN_POOL_SIZE"`
	MongoMaxPoolSize    uint64        `mapstructure:"MONGO_MAX_POOL_SIZE"`

	RedisAddress string `mapstructure:"REDIS_ADDRESS"`
	NATSURL      string `mapstructure:"NATS_URL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`
	OTPTTL    time.Duration `mapstructure:"OTP_TTL"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	SMSProvider      string `mapstructure:"SMS_PROVIDER"` // "twilio" or "console"
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string `mapstructure:"TWILIO_FROM"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// MongoConfig groups the connection parameters the mongo adapter needs.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MinPoolSize    uint64
	MaxPoolSize    uint64
}

func (c *Config) Mongo() *MongoConfig {
	return &MongoConfig{
		URI:            c.MongoURI,
		Database:       c.MongoDatabase,
		ConnectTimeout: c.MongoConnectTimeout,
		MinPoolSize:    c.MongoMinPoolSize,
		MaxPoolSize:    c.MongoMaxPoolSize,
	}
}

// LoadConfig reads configuration from environment variables.
func LoadConfig(logger *zap.Logger) (*Config, error) {
	viper.SetDefault("SERVICE_NAME", "hello_rommie")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("HTTP_PORT", "8080")

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "hello_rommie")
	viper.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("MONGO_MIN_POOL_SIZE", 0)
	viper.SetDefault("MONGO_MAX_POOL_SIZE", 100)

	viper.SetDefault("REDIS_ADDRESS", "localhost:6379")
	viper.SetDefault("NATS_URL", "nats://localhost:4222")

	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "168h")
	viper.SetDefault("OTP_TTL", "10m")

	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "rommie-photos")
	viper.SetDefault("MINIO_USE_SSL", false)

	viper.SetDefault("SMS_PROVIDER", "console")
	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("TWILIO_FROM", "")

	viper.SetDefault("PROMETHEUS_METRICS_PORT", "9090")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set. This is required.")
	}
	if cfg.MongoURI == "" {
		logger.Fatal("MONGO_URI is not set. This is required.")
	}
	if cfg.SMSProvider == "twilio" && (cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFrom == "") {
		logger.Fatal("SMS_PROVIDER is twilio but TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN or TWILIO_FROM is missing.")
	}

	logger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("sms_provider", cfg.SMSProvider),
		zap.Duration("token_ttl", cfg.TokenTTL),
		zap.Duration("otp_ttl", cfg.OTPTTL),
	)

	return &cfg, nil
}
