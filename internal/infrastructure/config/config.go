package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, loaded once at startup.
// The shared JWT secret is what lets every service verify tokens the
// auth service issued.
type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-key"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=168h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	Peers PeerConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=realty_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// PeerConfig holds the base URLs of sibling services. In the monolith
// composition they all point at this process's own listen address.
type PeerConfig struct {
	AuthURL         string `env:"AUTH_SERVICE_URL,         default=http://localhost:8080"`
	PropertyURL     string `env:"PROPERTY_SERVICE_URL,     default=http://localhost:8080"`
	InquiryURL      string `env:"INQUIRY_SERVICE_URL,      default=http://localhost:8080"`
	SearchURL       string `env:"SEARCH_SERVICE_URL,       default=http://localhost:8080"`
	NotificationURL string `env:"NOTIFICATION_SERVICE_URL, default=http://localhost:8080"`
	AnalyticsURL    string `env:"ANALYTICS_SERVICE_URL,    default=http://localhost:8080"`
	PaymentURL      string `env:"PAYMENT_SERVICE_URL,      default=http://localhost:8080"`
	ReportingURL    string `env:"REPORTING_SERVICE_URL,    default=http://localhost:8080"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
