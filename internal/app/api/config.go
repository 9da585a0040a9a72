package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	ReporterDataAPI  = "dataapi"
	ReporterKafka    = "kafka"
	ReporterTemporal = "temporal"
	ReporterLog      = "log"
	ReporterSDK      = "sdk"

	EnvDevelopment = "development"

	developmentOrigin = "http://localhost:3000"
	productionOrigin  = "https://shop.gueripep.com"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string        `envconfig:"PORT" default:"5001"`
	AppEnv             string        `envconfig:"APP_ENV" default:"development"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	PostgresDSN        string        `envconfig:"POSTGRES_DSN"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	ConversionReporter  string        `envconfig:"CONVERSION_REPORTER" default:"dataapi"`
	ConversionWorkers   int           `envconfig:"CONVERSION_WORKERS" default:"4"`
	ConversionQueueSize int           `envconfig:"CONVERSION_QUEUE_SIZE" default:"256"`
	ConversionTimeout   time.Duration `envconfig:"CONVERSION_TIMEOUT" default:"5s"`

	KameleoonSiteCode string `envconfig:"KAMELEOON_SITE_CODE" default:"dnkd8eslzh"`
	KameleoonDataAPI  string `envconfig:"KAMELEOON_DATA_API" default:"https://eu-data.kameleoon.io"`
	KameleoonGoalID   int64  `envconfig:"KAMELEOON_GOAL_ID" default:"406352"`

	KameleoonClientID        string        `envconfig:"KAMELEOON_CLIENT_ID"`
	KameleoonClientSecret    string        `envconfig:"KAMELEOON_CLIENT_SECRET"`
	KameleoonTopLevelDomain  string        `envconfig:"KAMELEOON_TOP_LEVEL_DOMAIN"`
	KameleoonInitTimeout     time.Duration `envconfig:"KAMELEOON_INIT_TIMEOUT" default:"10s"`
	KameleoonRefreshInterval time.Duration `envconfig:"KAMELEOON_REFRESH_INTERVAL" default:"1m"`

	VisitorCookieName   string `envconfig:"VISITOR_COOKIE_NAME" default:"kameleoonVisitorCode"`
	VisitorCookieDomain string `envconfig:"VISITOR_COOKIE_DOMAIN"`

	KafkaBrokers         string `envconfig:"KAFKA_BROKERS"`
	KafkaConversionTopic string `envconfig:"KAFKA_CONVERSION_TOPIC" default:"conversions"`

	TemporalAddress   string `envconfig:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `envconfig:"TEMPORAL_NAMESPACE"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	c.ConversionReporter = strings.ToLower(strings.TrimSpace(c.ConversionReporter))
	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, origin := range c.CORSAllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		if c.IsDevelopment() {
			origins = []string{developmentOrigin}
		} else {
			origins = []string{productionOrigin}
		}
	}
	c.CORSAllowedOrigins = origins
}

// Validate rejects settings the process cannot start with.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a TCP port, got %q", c.Port))
	}
	switch c.ConversionReporter {
	case ReporterDataAPI:
		if strings.TrimSpace(c.KameleoonSiteCode) == "" {
			errs = append(errs, errors.New("KAMELEOON_SITE_CODE is required for the dataapi reporter"))
		}
	case ReporterKafka:
		if strings.TrimSpace(c.KafkaBrokers) == "" {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka reporter"))
		}
	case ReporterSDK:
		if strings.TrimSpace(c.KameleoonSiteCode) == "" ||
			strings.TrimSpace(c.KameleoonClientID) == "" ||
			strings.TrimSpace(c.KameleoonClientSecret) == "" {
			errs = append(errs, errors.New("KAMELEOON_SITE_CODE, KAMELEOON_CLIENT_ID and KAMELEOON_CLIENT_SECRET are required for the sdk reporter"))
		}
		if c.KameleoonInitTimeout <= 0 {
			errs = append(errs, errors.New("KAMELEOON_INIT_TIMEOUT must be positive"))
		}
	case ReporterTemporal, ReporterLog:
	default:
		errs = append(errs, fmt.Errorf("CONVERSION_REPORTER must be one of %s, %s, %s, %s or %s, got %q",
			ReporterDataAPI, ReporterSDK, ReporterKafka, ReporterTemporal, ReporterLog, c.ConversionReporter))
	}
	if c.KameleoonGoalID <= 0 {
		errs = append(errs, errors.New("KAMELEOON_GOAL_ID must be a positive integer"))
	}
	if c.ConversionWorkers <= 0 {
		errs = append(errs, errors.New("CONVERSION_WORKERS must be a positive integer"))
	}
	if c.ConversionQueueSize <= 0 {
		errs = append(errs, errors.New("CONVERSION_QUEUE_SIZE must be a positive integer"))
	}
	if c.ConversionTimeout <= 0 {
		errs = append(errs, errors.New("CONVERSION_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
