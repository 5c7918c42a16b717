package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	LogLevel    string
	Name        string
	Version     string
	Timezone    string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	JWT         JWTConfig
	S3          S3Config
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	Kafka       KafkaConfig
	OTel        OTelConfig
	Billing     BillingConfig
	Booking     BookingConfig
	Freelancer  FreelancerConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

type JWTConfig struct {
	SigningKey      string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PresignTTL      time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Bookings int
	Window   time.Duration
	FailOpen bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type OTelConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRatio  float64
}

// BillingConfig selects where unpaid invoices are looked up: "postgres" or "stripe".
type BillingConfig struct {
	InvoiceSource   string
	StripeSecretKey string
}

type BookingConfig struct {
	GateFreelancerBookings bool
	SlotDurations          []int
}

// FreelancerConfig provisions the single freelancer account at startup when
// Email is set.
type FreelancerConfig struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func NewConfig() (*Config, error) {
	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	jwtAccessTokenTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, err
	}

	jwtRefreshTokenTTL, err := time.ParseDuration(getEnv("JWT_REFRESH_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	presignTTL, err := time.ParseDuration(getEnv("S3_PRESIGN_TTL", "15m"))
	if err != nil {
		return nil, err
	}

	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, err
	}

	slotDurations, err := parseIntList(getEnv("BOOKING_SLOT_DURATIONS", "15,30,45,60"))
	if err != nil {
		return nil, fmt.Errorf("BOOKING_SLOT_DURATIONS: %w", err)
	}

	invoiceSource := strings.ToLower(getEnv("INVOICE_SOURCE", "postgres"))
	if invoiceSource != "postgres" && invoiceSource != "stripe" {
		return nil, fmt.Errorf("неизвестный источник счетов: %s", invoiceSource)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Name:        getEnv("APP_NAME", "freedesk"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Timezone:    getEnv("APP_TIMEZONE", "Europe/Paris"),
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "freedesk"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "your_secret_key"),
			AccessTokenTTL:  jwtAccessTokenTTL,
			RefreshTokenTTL: jwtRefreshTokenTTL,
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "freedesk"),
			UseSSL:          getEnvAsBool("S3_USE_SSL", true),
			PresignTTL:      presignTTL,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Bookings: getEnvAsInt("RATE_LIMIT_BOOKINGS", 10),
			Window:   rateLimitWindow,
			FailOpen: getEnvAsBool("RATE_LIMIT_FAIL_OPEN", true),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "appointments"),
		},
		OTel: OTelConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio:  getEnvAsFloat("OTEL_SAMPLING_RATIO", 1),
		},
		Billing: BillingConfig{
			InvoiceSource:   invoiceSource,
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
		Booking: BookingConfig{
			GateFreelancerBookings: getEnvAsBool("BOOKING_GATE_FREELANCER", false),
			SlotDurations:          slotDurations,
		},
		Freelancer: FreelancerConfig{
			FirstName: getEnv("FREELANCER_FIRST_NAME", "Freelance"),
			LastName:  getEnv("FREELANCER_LAST_NAME", "Admin"),
			Email:     getEnv("FREELANCER_EMAIL", ""),
			Password:  getEnv("FREELANCER_PASSWORD", ""),
		},
	}, nil
}

// Location returns the single wall-clock zone the freelancer and clients share.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch valueStr {
	case "":
		return defaultValue
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil || value < 0 || value > 1 {
		return defaultValue
	}

	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntList(value string) ([]int, error) {
	var out []int
	for _, part := range splitList(value) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("некорректное значение %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}
