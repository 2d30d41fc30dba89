package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса доступности туров
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	Inventory    InventoryConfig    `toml:"inventory"`
	Availability AvailabilityConfig `toml:"availability"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig второй уровень кэша доступности (опционально)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// InventoryConfig клиент внешнего inventory-провайдера
type InventoryConfig struct {
	URL               string  `toml:"url"`
	APIKey            string  `toml:"api_key"`
	Timeout           int     `toml:"timeout"` // секунды
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`

	// Aliases product key -> product key, чей инвентарь используется (общий пул мест)
	Aliases map[string]string `toml:"aliases"`
}

// AvailabilityConfig параметры кэша и поиска доступных дат
type AvailabilityConfig struct {
	CacheTTLMinutes         int    `toml:"cache_ttl_minutes"`
	PreloadFreshnessMinutes int    `toml:"preload_freshness_minutes"`
	PreloadConcurrency      int    `toml:"preload_concurrency"`
	PreloadWindowDays       int    `toml:"preload_window_days"`
	ScanHorizonDays         int    `toml:"scan_horizon_days"`
	PreloadBudgetSeconds    int    `toml:"preload_budget_seconds"` // сколько запрос ждет провайдера при preload и поиске даты
	DefaultTimezone         string `toml:"default_timezone"`
}

// CacheTTL окно, в течение которого запись переиспользуется для одиночной даты
func (a AvailabilityConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLMinutes) * time.Minute
}

// PreloadFreshness окно, в течение которого preload не перезапрашивает дату
func (a AvailabilityConfig) PreloadFreshness() time.Duration {
	return time.Duration(a.PreloadFreshnessMinutes) * time.Minute
}

// PreloadBudget предел ожидания провайдера в рамках одного HTTP запроса
func (a AvailabilityConfig) PreloadBudget() time.Duration {
	return time.Duration(a.PreloadBudgetSeconds) * time.Second
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфигурацию из TOML файла
// Плейсхолдеры ${ENV_VAR} подставляются из окружения до парсинга
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if _, err := toml.Decode(os.ExpandEnv(string(data)), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "availability"
	}

	if c.Inventory.Timeout == 0 {
		c.Inventory.Timeout = 10
	}
	if c.Inventory.RequestsPerSecond == 0 {
		c.Inventory.RequestsPerSecond = 10
	}
	if c.Inventory.Burst == 0 {
		c.Inventory.Burst = 20
	}
	if c.Inventory.Aliases == nil {
		c.Inventory.Aliases = map[string]string{}
	}

	if c.Availability.CacheTTLMinutes == 0 {
		c.Availability.CacheTTLMinutes = 15
	}
	if c.Availability.PreloadFreshnessMinutes == 0 {
		c.Availability.PreloadFreshnessMinutes = 5
	}
	if c.Availability.PreloadConcurrency == 0 {
		c.Availability.PreloadConcurrency = 8
	}
	if c.Availability.PreloadWindowDays == 0 {
		c.Availability.PreloadWindowDays = 31
	}
	if c.Availability.ScanHorizonDays == 0 {
		c.Availability.ScanHorizonDays = 365
	}
	if c.Availability.PreloadBudgetSeconds == 0 {
		// Запас на чтение бронирований и запись ответа до write_timeout
		c.Availability.PreloadBudgetSeconds = c.Server.WriteTimeout * 2 / 3
		if c.Availability.PreloadBudgetSeconds < 1 {
			c.Availability.PreloadBudgetSeconds = 1
		}
	}
	if c.Availability.DefaultTimezone == "" {
		c.Availability.DefaultTimezone = "UTC"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "tour_availability"
	}
}

func (c *Config) validate() error {
	if c.Inventory.URL == "" {
		return fmt.Errorf("config: inventory.url is required")
	}
	if _, err := time.LoadLocation(c.Availability.DefaultTimezone); err != nil {
		return fmt.Errorf("config: invalid availability.default_timezone %q: %w", c.Availability.DefaultTimezone, err)
	}
	for from, to := range c.Inventory.Aliases {
		if from == to {
			return fmt.Errorf("config: inventory alias %q points to itself", from)
		}
	}
	if c.Inventory.Timeout >= c.Server.WriteTimeout {
		return fmt.Errorf("config: inventory.timeout (%ds) must be less than server.write_timeout (%ds)",
			c.Inventory.Timeout, c.Server.WriteTimeout)
	}
	if c.Availability.PreloadBudgetSeconds >= c.Server.WriteTimeout {
		return fmt.Errorf("config: availability.preload_budget_seconds (%ds) must be less than server.write_timeout (%ds)",
			c.Availability.PreloadBudgetSeconds, c.Server.WriteTimeout)
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return fmt.Errorf("config: redis.address is required when redis is enabled")
	}
	return nil
}
