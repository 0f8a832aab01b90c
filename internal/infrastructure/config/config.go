package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageDynamoDB = "dynamodb"
)

// Notification drivers.
const (
	NotificationMemory = "memory"
	NotificationRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Log          LogConfig
	Storage      StorageConfig
	Database     DatabaseConfig
	DynamoDB     DynamoDBConfig
	Redis        RedisConfig
	Quote        QuoteConfig
	Notification NotificationConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type StorageConfig struct {
	Driver string // postgres, sqlite, dynamodb
}

// DatabaseConfig holds the gorm connection settings for postgres and sqlite.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	SQLitePath      string
	LogLevel        string // silent, error, warn, info
	AutoMigrate     bool
}

type DynamoDBConfig struct {
	Region                    string
	Endpoint                  string
	AccessKeyID               string
	SecretAccessKey           string
	CustomersTable            string
	VehiclesTable             string
	ConversationsTable        string
	ConversationVehiclesTable string
	RiskSnapshotsTable        string
	QuotesTable               string
	QuoteAlternativesTable    string
	UniqueKeysTable           string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// QuoteConfig drives the asynchronous pricing pipeline.
type QuoteConfig struct {
	MaxAttempts      int
	Backoff          []int // multiples of BackoffUnit
	BackoffUnit      time.Duration
	Expiry           time.Duration
	Workers          int
	QueueSize        int
	SimulatorLatency time.Duration
	SimulatorFailure float64 // probability in [0,1] of an injected simulator failure
	SweepSchedule    string
	StaleAfter       time.Duration
}

// BackoffSchedule expands Backoff into durations.
func (q QuoteConfig) BackoffSchedule() []time.Duration {
	out := make([]time.Duration, len(q.Backoff))
	for i, n := range q.Backoff {
		out[i] = time.Duration(n) * q.BackoffUnit
	}
	return out
}

type NotificationConfig struct {
	Driver        string // memory, redis
	ChannelPrefix string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with COTIZADOR_ prefix (e.g., COTIZADOR_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("COTIZADOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			SQLitePath:      v.GetString("database.sqlite_path"),
			LogLevel:        v.GetString("database.log_level"),
			AutoMigrate:     !v.IsSet("database.auto_migrate") || v.GetBool("database.auto_migrate"),
		},
		DynamoDB: DynamoDBConfig{
			Region:                    v.GetString("dynamodb.region"),
			Endpoint:                  v.GetString("dynamodb.endpoint"),
			AccessKeyID:               v.GetString("dynamodb.access_key_id"),
			SecretAccessKey:           v.GetString("dynamodb.secret_access_key"),
			CustomersTable:            v.GetString("dynamodb.customers_table"),
			VehiclesTable:             v.GetString("dynamodb.vehicles_table"),
			ConversationsTable:        v.GetString("dynamodb.conversations_table"),
			ConversationVehiclesTable: v.GetString("dynamodb.conversation_vehicles_table"),
			RiskSnapshotsTable:        v.GetString("dynamodb.risk_snapshots_table"),
			QuotesTable:               v.GetString("dynamodb.quotes_table"),
			QuoteAlternativesTable:    v.GetString("dynamodb.quote_alternatives_table"),
			UniqueKeysTable:           v.GetString("dynamodb.unique_keys_table"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Quote: QuoteConfig{
			MaxAttempts:      v.GetInt("quote.max_attempts"),
			Backoff:          intSlice(v, "quote.backoff"),
			BackoffUnit:      v.GetDuration("quote.backoff_unit"),
			Expiry:           v.GetDuration("quote.expiry"),
			Workers:          v.GetInt("quote.workers"),
			QueueSize:        v.GetInt("quote.queue_size"),
			SimulatorLatency: v.GetDuration("quote.simulator_latency"),
			SimulatorFailure: v.GetFloat64("quote.simulator_failure_rate"),
			SweepSchedule:    v.GetString("quote.sweep_schedule"),
			StaleAfter:       v.GetDuration("quote.stale_after"),
		},
		Notification: NotificationConfig{
			Driver:        strings.ToLower(v.GetString("notification.driver")),
			ChannelPrefix: v.GetString("notification.channel_prefix"),
		},
	}

	applyDefaults(cfg, v)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// intSlice accepts both a TOML array and the comma separated form used in
// environment variables (COTIZADOR_QUOTE_BACKOFF=2,5,10).
func intSlice(v *viper.Viper, key string) []int {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetIntSlice(key)
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cotizador-seguros"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StoragePostgres
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "cotizador"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "cotizador.db"
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
	if cfg.DynamoDB.Region == "" {
		cfg.DynamoDB.Region = "us-east-1"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Quote.MaxAttempts == 0 {
		cfg.Quote.MaxAttempts = 3
	}
	if len(cfg.Quote.Backoff) == 0 && !v.IsSet("quote.backoff") {
		cfg.Quote.Backoff = []int{2, 5, 10}
	}
	if cfg.Quote.BackoffUnit == 0 {
		cfg.Quote.BackoffUnit = time.Second
	}
	if cfg.Quote.Expiry == 0 {
		cfg.Quote.Expiry = 168 * time.Hour
	}
	if cfg.Quote.Workers == 0 {
		cfg.Quote.Workers = 4
	}
	if cfg.Quote.QueueSize == 0 {
		cfg.Quote.QueueSize = 256
	}
	if cfg.Quote.SimulatorLatency == 0 && !v.IsSet("quote.simulator_latency") {
		cfg.Quote.SimulatorLatency = 3 * time.Second
	}
	if cfg.Quote.SweepSchedule == "" {
		cfg.Quote.SweepSchedule = "@every 1m"
	}
	if cfg.Quote.StaleAfter == 0 {
		cfg.Quote.StaleAfter = 10 * time.Minute
	}
	if cfg.Notification.Driver == "" {
		cfg.Notification.Driver = NotificationMemory
	}
	if cfg.Notification.ChannelPrefix == "" {
		cfg.Notification.ChannelPrefix = "chat."
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StoragePostgres, StorageSQLite, StorageDynamoDB:
	default:
		return fmt.Errorf("storage.driver must be one of postgres, sqlite, dynamodb, got %q", c.Storage.Driver)
	}
	switch c.Notification.Driver {
	case NotificationMemory, NotificationRedis:
	default:
		return fmt.Errorf("notification.driver must be memory or redis, got %q", c.Notification.Driver)
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Quote.MaxAttempts <= 0 {
		return fmt.Errorf("quote.max_attempts must be positive")
	}
	if c.Quote.Workers <= 0 {
		return fmt.Errorf("quote.workers must be positive")
	}
	if c.Quote.QueueSize <= 0 {
		return fmt.Errorf("quote.queue_size must be positive")
	}
	if len(c.Quote.Backoff) == 0 {
		return fmt.Errorf("quote.backoff must not be empty")
	}
	for i := 1; i < len(c.Quote.Backoff); i++ {
		if c.Quote.Backoff[i] < c.Quote.Backoff[i-1] {
			return fmt.Errorf("quote.backoff must be non-decreasing, got %v", c.Quote.Backoff)
		}
	}
	if c.Quote.SimulatorFailure < 0 || c.Quote.SimulatorFailure > 1 {
		return fmt.Errorf("quote.simulator_failure_rate must be between 0.0 and 1.0, got %f", c.Quote.SimulatorFailure)
	}

	if c.App.Env == "production" && c.Storage.Driver == StoragePostgres {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
