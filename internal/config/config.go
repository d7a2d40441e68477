package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Clinic     ClinicConfig     `mapstructure:"clinic"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	WorkerPort      int           `mapstructure:"worker_port"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	Channel      string        `mapstructure:"channel"`
}

type StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	PublicRead      bool   `mapstructure:"public_read"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type AdminConfig struct {
	Email        string        `mapstructure:"email"`
	Password     string        `mapstructure:"password"`
	PasswordHash string        `mapstructure:"password_hash"`
	Name         string        `mapstructure:"name"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
}

type ClinicConfig struct {
	Name             string   `mapstructure:"name"`
	Address          string   `mapstructure:"address"`
	ClosedDay        string   `mapstructure:"closed_day"`
	Timezone         string   `mapstructure:"timezone"`
	TimeSlots        []string `mapstructure:"time_slots"`
	NotifyNumbers    []string `mapstructure:"notify_numbers"`
	CountryCode      string   `mapstructure:"country_code"`
	MessagingBaseURL string   `mapstructure:"messaging_base_url"`
}

// ClosedWeekday parses ClosedDay.
func (c ClinicConfig) ClosedWeekday() (time.Weekday, error) {
	return ParseWeekday(c.ClosedDay)
}

// Location loads Timezone, falling back to UTC when unset.
func (c ClinicConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type MonitoringConfig struct {
	MetricsPath string `mapstructure:"metrics_path"`
	Namespace   string `mapstructure:"namespace"`
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// Enabled reports whether outbound email is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != "" && s.To != ""
}

// WorkerConfig tunes the booking event worker. A zero DigestInterval
// disables the pending bookings digest.
type WorkerConfig struct {
	DigestInterval time.Duration `mapstructure:"digest_interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// secrets are read straight from the environment and win over the file.
type secrets struct {
	DatabasePassword string `envconfig:"DB_PASSWORD"`
	DatabaseHost     string `envconfig:"DB_HOST"`
	RedisURL         string `envconfig:"REDIS_URL"`
	AdminEmail       string `envconfig:"ADMIN_EMAIL"`
	AdminPassword    string `envconfig:"ADMIN_PASSWORD"`
	Bucket           string `envconfig:"AWS_S3_BUCKET"`
	Region           string `envconfig:"AWS_REGION"`
	AccessKeyID      string `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey  string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	SMTPPassword     string `envconfig:"SMTP_PASSWORD"`
}

// LoadConfig reads .env, then config.yml from the given paths (or the
// default search paths), then environment overrides.
func LoadConfig(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config", "/app/config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env secrets
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	env.apply(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (s secrets) apply(c *Config) {
	override := func(dst *string, val string) {
		if val != "" {
			*dst = val
		}
	}
	override(&c.Database.Password, s.DatabasePassword)
	override(&c.Database.Host, s.DatabaseHost)
	override(&c.Redis.URL, s.RedisURL)
	override(&c.Admin.Email, s.AdminEmail)
	override(&c.Admin.Password, s.AdminPassword)
	override(&c.Storage.Bucket, s.Bucket)
	override(&c.Storage.Region, s.Region)
	override(&c.Storage.AccessKeyID, s.AccessKeyID)
	override(&c.Storage.SecretAccessKey, s.SecretAccessKey)
	override(&c.SMTP.Password, s.SMTPPassword)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.worker_port", 8081)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "clinic_portal")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.channel", "bookings.events")

	v.SetDefault("storage.region", "ap-south-1")
	v.SetDefault("storage.public_read", false)

	v.SetDefault("admin.email", "admin@romasdentalcare.com")
	v.SetDefault("admin.name", "Admin")
	v.SetDefault("admin.session_ttl", 12*time.Hour)

	v.SetDefault("clinic.name", "Roma's Dental Care")
	v.SetDefault("clinic.address", "Shop no. 7, Society Complex, SHUBH SHAGUN, Old Mundhwa Rd, opposite Bollywood Multiplex, Tukaram Nagar, Kharadi, Pune - 411014")
	v.SetDefault("clinic.closed_day", "Tuesday")
	v.SetDefault("clinic.timezone", "Asia/Kolkata")
	v.SetDefault("clinic.time_slots", []string{
		"10:00 AM", "11:00 AM", "12:00 PM", "01:00 PM", "02:00 PM", "03:00 PM",
		"04:00 PM", "05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
	})
	v.SetDefault("clinic.notify_numbers", []string{"7499537267", "9284338406"})
	v.SetDefault("clinic.country_code", "91")
	v.SetDefault("clinic.messaging_base_url", "https://wa.me")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 1)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 86400)

	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.namespace", "clinic_portal")

	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("smtp.port", 587)

	v.SetDefault("worker.digest_interval", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Validate checks values the services cannot start without.
func (c *Config) Validate() error {
	if _, err := c.Clinic.ClosedWeekday(); err != nil {
		return err
	}
	if _, err := c.Clinic.Location(); err != nil {
		return fmt.Errorf("clinic.timezone: %w", err)
	}
	if len(c.Clinic.TimeSlots) == 0 {
		return fmt.Errorf("clinic.time_slots must not be empty")
	}
	if c.Admin.Email == "" {
		return fmt.Errorf("admin.email is required")
	}
	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("admin.session_ttl must be positive")
	}
	return nil
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full English day names in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid weekday %q", s)
	}
	return d, nil
}
