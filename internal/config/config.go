// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"printer-service/internal/driver/csna2"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Serial  SerialConfig  `mapstructure:"serial"`
	Printer PrinterConfig `mapstructure:"printer"`
	App     AppConfig     `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host" validate:"required"`
	Port         string        `mapstructure:"port" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	// AllowedOrigins for CORS; empty allows every origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"required"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// SerialConfig represents the serial link to the printer
type SerialConfig struct {
	Device   string        `mapstructure:"device" validate:"required"`
	BaudRate int           `mapstructure:"baud_rate"`
	DataBits int           `mapstructure:"data_bits"`
	StopBits int           `mapstructure:"stop_bits"`
	Parity   string        `mapstructure:"parity"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// PrinterConfig represents the device calibration applied to each session
type PrinterConfig struct {
	DotPrintTime  time.Duration `mapstructure:"dot_print_time"`
	DotFeedTime   time.Duration `mapstructure:"dot_feed_time"`
	LineSpacing   int           `mapstructure:"line_spacing"`
	BarcodeHeight int           `mapstructure:"barcode_height"`
	HeatDots      int           `mapstructure:"heat_dots"`
	HeatTime      int           `mapstructure:"heat_time"`
	HeatInterval  int           `mapstructure:"heat_interval"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required"`
	Debug       bool   `mapstructure:"debug"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Environment variable support
	viper.SetEnvPrefix("PRINTER_SERVICE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read config file; defaults alone are a complete configuration
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8084")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("logging.compress", true)

	// Serial defaults for the stock CSN-A2 TTL link
	viper.SetDefault("serial.device", "/dev/ttyAMA0")
	viper.SetDefault("serial.baud_rate", 19200)
	viper.SetDefault("serial.data_bits", 8)
	viper.SetDefault("serial.stop_bits", 1)
	viper.SetDefault("serial.parity", "none")
	viper.SetDefault("serial.timeout", "5s")

	// Printer calibration defaults
	viper.SetDefault("printer.dot_print_time", "30ms")
	viper.SetDefault("printer.dot_feed_time", "2100us")
	viper.SetDefault("printer.line_spacing", 6)
	viper.SetDefault("printer.barcode_height", 162)
	viper.SetDefault("printer.heat_dots", 11)
	viper.SetDefault("printer.heat_time", 120)
	viper.SetDefault("printer.heat_interval", 20)

	// App defaults
	viper.SetDefault("app.name", "printer-service")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if config.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if config.Serial.Device == "" {
		return fmt.Errorf("serial.device is required")
	}
	if config.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial.baud_rate must be positive")
	}
	if config.Printer.DotPrintTime <= 0 || config.Printer.DotFeedTime <= 0 {
		return fmt.Errorf("printer.dot_print_time and printer.dot_feed_time must be positive")
	}
	if config.Printer.LineSpacing < 0 {
		return fmt.Errorf("printer.line_spacing must not be negative")
	}
	if config.Printer.BarcodeHeight < 1 || config.Printer.BarcodeHeight > 255 {
		return fmt.Errorf("printer.barcode_height must be in range 1-255")
	}
	for name, v := range map[string]int{
		"printer.heat_dots":     config.Printer.HeatDots,
		"printer.heat_time":     config.Printer.HeatTime,
		"printer.heat_interval": config.Printer.HeatInterval,
	} {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s must fit in one byte", name)
		}
	}

	// Validate environment
	validEnvs := []string{"development", "staging", "production", "test"}
	isValidEnv := false
	for _, env := range validEnvs {
		if config.App.Environment == env {
			isValidEnv = true
			break
		}
	}
	if !isValidEnv {
		return fmt.Errorf("app.environment must be one of: %v", validEnvs)
	}

	// Validate logging level
	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	isValidLevel := false
	for _, level := range validLevels {
		if config.Logging.Level == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

// DriverConfig converts the printer section into the driver's calibration.
func (c *Config) DriverConfig() csna2.Config {
	return csna2.Config{
		BaudRate:      c.Serial.BaudRate,
		DotPrintTime:  c.Printer.DotPrintTime,
		DotFeedTime:   c.Printer.DotFeedTime,
		LineSpacing:   c.Printer.LineSpacing,
		BarcodeHeight: uint8(c.Printer.BarcodeHeight),
		Heat: csna2.PrintSettings{
			Dots:     uint8(c.Printer.HeatDots),
			Time:     uint8(c.Printer.HeatTime),
			Interval: uint8(c.Printer.HeatInterval),
		},
	}
}

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment checks if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsDebugEnabled checks if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.App.Debug || c.IsDevelopment()
}
