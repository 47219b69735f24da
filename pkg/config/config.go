package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	OTel     OTelConfig     `mapstructure:"otel"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Booking  BookingConfig  `mapstructure:"booking"`
	Suggest  SuggestConfig  `mapstructure:"suggest"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, staging, production
	Debug       bool   `mapstructure:"debug"`
	Version     string `mapstructure:"version"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig holds Kafka/Redpanda connection settings
type KafkaConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	ClientID string   `mapstructure:"client_id"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	ServiceName   string  `mapstructure:"service_name"`
	CollectorAddr string  `mapstructure:"collector_addr"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
}

// CalendarConfig holds the operating window and slot layout for every resource
type CalendarConfig struct {
	OpenHour    int `mapstructure:"open_hour"`    // first bookable hour, inclusive
	CloseHour   int `mapstructure:"close_hour"`   // last bookable hour, exclusive
	SlotMinutes int `mapstructure:"slot_minutes"` // slot width in minutes
}

// SlotWidth returns the slot width as a duration
func (c *CalendarConfig) SlotWidth() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

// BookingConfig holds reservation engine settings
type BookingConfig struct {
	// MaxAdvanceDays bounds how far into the future a reservation may start
	MaxAdvanceDays int `mapstructure:"max_advance_days"`
}

// SuggestConfig holds suggestion ranker weights and bounds.
// Defaults: resource weight 2.0, time-of-day weight 1.5, contention weight 1.0,
// 7-day lookahead, top 5 candidates.
type SuggestConfig struct {
	ResourceWeight   float64 `mapstructure:"resource_weight"`
	TimeWeight       float64 `mapstructure:"time_weight"`
	ContentionWeight float64 `mapstructure:"contention_weight"`
	LookaheadDays    int     `mapstructure:"lookahead_days"`
	TopK             int     `mapstructure:"top_k"`
	HistoryLimit     int     `mapstructure:"history_limit"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// .env is optional; environment variables alone are enough
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	bindConfig(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("APP_NAME", "body-works-gym")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "1.0.0")

	// Server defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	// Database defaults
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_DBNAME", "gym_booking")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "1h")

	// Redis defaults
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 50)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	// Kafka defaults
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "reservation-events")
	v.SetDefault("KAFKA_CLIENT_ID", "body-works-gym")

	// OTel defaults
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "body-works-gym")
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)

	// Calendar defaults: 06:00-22:00 in one-hour slots
	v.SetDefault("CALENDAR_OPEN_HOUR", 6)
	v.SetDefault("CALENDAR_CLOSE_HOUR", 22)
	v.SetDefault("CALENDAR_SLOT_MINUTES", 60)

	// Booking defaults
	v.SetDefault("BOOKING_MAX_ADVANCE_DAYS", 30)

	// Suggestion defaults
	v.SetDefault("SUGGEST_RESOURCE_WEIGHT", 2.0)
	v.SetDefault("SUGGEST_TIME_WEIGHT", 1.5)
	v.SetDefault("SUGGEST_CONTENTION_WEIGHT", 1.0)
	v.SetDefault("SUGGEST_LOOKAHEAD_DAYS", 7)
	v.SetDefault("SUGGEST_TOP_K", 5)
	v.SetDefault("SUGGEST_HISTORY_LIMIT", 200)
}

func bindConfig(v *viper.Viper, cfg *Config) {
	// App
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENVIRONMENT")
	cfg.App.Debug = v.GetBool("APP_DEBUG")
	cfg.App.Version = v.GetString("APP_VERSION")

	// Server
	cfg.Server.Host = v.GetString("SERVER_HOST")
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.IdleTimeout = v.GetDuration("SERVER_IDLE_TIMEOUT")

	// Database
	cfg.Database.Host = v.GetString("DATABASE_HOST")
	cfg.Database.Port = v.GetInt("DATABASE_PORT")
	cfg.Database.User = v.GetString("DATABASE_USER")
	cfg.Database.Password = v.GetString("DATABASE_PASSWORD")
	cfg.Database.DBName = v.GetString("DATABASE_DBNAME")
	cfg.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	cfg.Database.MaxOpenConns = v.GetInt("DATABASE_MAX_OPEN_CONNS")
	cfg.Database.MaxIdleConns = v.GetInt("DATABASE_MAX_IDLE_CONNS")
	cfg.Database.ConnMaxLifetime = v.GetDuration("DATABASE_CONN_MAX_LIFETIME")

	// Redis
	cfg.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	cfg.Redis.MinIdleConns = v.GetInt("REDIS_MIN_IDLE_CONNS")
	cfg.Redis.DialTimeout = v.GetDuration("REDIS_DIAL_TIMEOUT")
	cfg.Redis.ReadTimeout = v.GetDuration("REDIS_READ_TIMEOUT")
	cfg.Redis.WriteTimeout = v.GetDuration("REDIS_WRITE_TIMEOUT")

	// Kafka
	cfg.Kafka.Enabled = v.GetBool("KAFKA_ENABLED")
	cfg.Kafka.Brokers = strings.Split(v.GetString("KAFKA_BROKERS"), ",")
	cfg.Kafka.Topic = v.GetString("KAFKA_TOPIC")
	cfg.Kafka.ClientID = v.GetString("KAFKA_CLIENT_ID")

	// OTel
	cfg.OTel.Enabled = v.GetBool("OTEL_ENABLED")
	cfg.OTel.ServiceName = v.GetString("OTEL_SERVICE_NAME")
	cfg.OTel.CollectorAddr = v.GetString("OTEL_COLLECTOR_ADDR")
	cfg.OTel.SampleRatio = v.GetFloat64("OTEL_SAMPLE_RATIO")

	// Calendar
	cfg.Calendar.OpenHour = v.GetInt("CALENDAR_OPEN_HOUR")
	cfg.Calendar.CloseHour = v.GetInt("CALENDAR_CLOSE_HOUR")
	cfg.Calendar.SlotMinutes = v.GetInt("CALENDAR_SLOT_MINUTES")

	// Booking
	cfg.Booking.MaxAdvanceDays = v.GetInt("BOOKING_MAX_ADVANCE_DAYS")

	// Suggestion
	cfg.Suggest.ResourceWeight = v.GetFloat64("SUGGEST_RESOURCE_WEIGHT")
	cfg.Suggest.TimeWeight = v.GetFloat64("SUGGEST_TIME_WEIGHT")
	cfg.Suggest.ContentionWeight = v.GetFloat64("SUGGEST_CONTENTION_WEIGHT")
	cfg.Suggest.LookaheadDays = v.GetInt("SUGGEST_LOOKAHEAD_DAYS")
	cfg.Suggest.TopK = v.GetInt("SUGGEST_TOP_K")
	cfg.Suggest.HistoryLimit = v.GetInt("SUGGEST_HISTORY_LIMIT")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Calendar.OpenHour < 0 || c.Calendar.OpenHour > 23 {
		return fmt.Errorf("invalid calendar open hour: %d", c.Calendar.OpenHour)
	}
	if c.Calendar.CloseHour <= c.Calendar.OpenHour || c.Calendar.CloseHour > 24 {
		return fmt.Errorf("invalid calendar close hour: %d", c.Calendar.CloseHour)
	}
	if c.Calendar.SlotMinutes <= 0 {
		return fmt.Errorf("invalid slot width: %d minutes", c.Calendar.SlotMinutes)
	}

	if c.Booking.MaxAdvanceDays <= 0 {
		return fmt.Errorf("invalid booking advance window: %d days", c.Booking.MaxAdvanceDays)
	}

	if c.Suggest.LookaheadDays <= 0 {
		return fmt.Errorf("invalid suggestion lookahead: %d days", c.Suggest.LookaheadDays)
	}
	if c.Suggest.TopK <= 0 {
		return fmt.Errorf("invalid suggestion top-k: %d", c.Suggest.TopK)
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
