package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/agendahub/AGH-BookingService/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	MailGateway MailGatewayConfig `toml:"mail_gateway"`
	Reminders   RemindersConfig   `toml:"reminders"`
	Booking     BookingConfig     `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// MailGatewayConfig настройки клиента почтового шлюза
type MailGatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RemindersConfig настройки планировщика напоминаний
type RemindersConfig struct {
	Enabled   bool   `toml:"enabled"`
	Frequency string `toml:"frequency"` // daily
	SendTime  string `toml:"send_time"` // "HH:MM"
	LeadHours int    `toml:"lead_hours"`
}

// BookingConfig политики бронирования
type BookingConfig struct {
	// Использовать ли общие окна компании, когда у услуги нет собственных
	ServiceWindowFallback bool `toml:"service_window_fallback"`
	// Статус создаваемого бронирования: pending или confirmed
	DefaultStatus string `toml:"default_status"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
		Reminders: RemindersConfig{
			Frequency: "daily",
			SendTime:  "09:00",
			LeadHours: 24,
		},
		Booking: BookingConfig{
			ServiceWindowFallback: true,
			DefaultStatus:         "confirmed",
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Reminders.Enabled {
		if c.Reminders.Frequency != "daily" {
			return fmt.Errorf("%w: reminders.frequency %q is not supported", ErrInvalidConfig, c.Reminders.Frequency)
		}
		if _, err := types.NewTimeStringFromString(c.Reminders.SendTime); err != nil {
			return fmt.Errorf("%w: reminders.send_time: %v", ErrInvalidConfig, err)
		}
		if c.Reminders.LeadHours <= 0 {
			return fmt.Errorf("%w: reminders.lead_hours must be positive", ErrInvalidConfig)
		}
	}
	switch c.Booking.DefaultStatus {
	case "pending", "confirmed":
	default:
		return fmt.Errorf("%w: booking.default_status must be pending or confirmed", ErrInvalidConfig)
	}
	return nil
}
