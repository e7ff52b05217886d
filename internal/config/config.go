package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "AUTOMATA_"

// Config is the application configuration.
type Config struct {
	Limits  domain.Limits `mapstructure:"limits"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	History HistoryConfig `mapstructure:"history"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

// LogConfig selects level and destination. An empty File logs to stderr.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// HistoryConfig selects the run history backend.
type HistoryConfig struct {
	Backend       string        `mapstructure:"backend" validate:"oneof=memory redis"`
	RedisAddr     string        `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"min=0"`
	TTL           time.Duration `mapstructure:"ttl" validate:"min=0"`
	MaxEntries    int           `mapstructure:"max_entries" validate:"min=0"`
}

// MCPConfig configures the Model Context Protocol adapter.
type MCPConfig struct {
	Transport string `mapstructure:"transport" validate:"oneof=stdio sse"`
	Port      int    `mapstructure:"port" validate:"min=1,max=65535"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Limits: domain.DefaultLimits(),
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{Addr: ":8080"},
		History: HistoryConfig{
			Backend:    "memory",
			RedisAddr:  "localhost:6379",
			MaxEntries: 100,
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8080,
		},
	}
}

// envKeys maps override variables (without prefix) to their dotted config path.
var envKeys = map[string]string{
	"MAX_STATES":             "limits.max_states",
	"MAX_TRANSITIONS":        "limits.max_transitions",
	"MAX_ALPHABET":           "limits.max_alphabet",
	"MAX_TRACE_RECORDS":      "limits.max_trace_records",
	"MAX_NAME_LENGTH":        "limits.max_name_length",
	"LOG_LEVEL":              "log.level",
	"LOG_FILE":               "log.file",
	"SERVER_ADDR":            "server.addr",
	"HISTORY_BACKEND":        "history.backend",
	"HISTORY_REDIS_ADDR":     "history.redis_addr",
	"HISTORY_REDIS_PASSWORD": "history.redis_password",
	"HISTORY_REDIS_DB":       "history.redis_db",
	"HISTORY_TTL":            "history.ttl",
	"HISTORY_MAX_ENTRIES":    "history.max_entries",
	"MCP_TRANSPORT":          "mcp.transport",
	"MCP_PORT":               "mcp.port",
}

// Load reads the YAML file at path (optional), applies AUTOMATA_* environment
// overrides on top and validates the result.
func Load(path string) (Config, error) {
	raw := make(map[string]any)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = make(map[string]any)
		}
	}

	applyEnv(raw, os.LookupEnv)

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnv writes every set override into raw at its dotted path.
func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for key, path := range envKeys {
		val, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		section, field, _ := strings.Cut(path, ".")
		m, ok := raw[section].(map[string]any)
		if !ok {
			m = make(map[string]any)
			raw[section] = m
		}
		m[field] = val
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
