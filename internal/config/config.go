package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Security  SecurityConfig  `mapstructure:"security"`
	Parser    ParserConfig    `mapstructure:"parser"`
	Renderer  RendererConfig  `mapstructure:"renderer"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	StaticDir   string   `mapstructure:"static_dir"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          string `mapstructure:"port"`
	Database      string `mapstructure:"database"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	AdminUser     string `mapstructure:"admin_user"`
	AdminPassword string `mapstructure:"admin_password"`
}

// Enabled reports whether enough is configured to open the user store.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != "" && d.Database != ""
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SecurityConfig struct {
	AccessTokenSecret string        `mapstructure:"access_token_secret"`
	AccessTokenTTL    time.Duration `mapstructure:"access_token_ttl"`
}

type ParserConfig struct {
	Driver       string        `mapstructure:"driver"`
	Strict       bool          `mapstructure:"strict"`
	MySQLVersion string        `mapstructure:"mysql_version"`
	Command      string        `mapstructure:"command"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type RendererConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
	Burst     int `mapstructure:"burst"`
}

// env maps config keys onto the flat variable names used in .env files.
var env = map[string]string{
	"server.port":                  "PORT",
	"server.mode":                  "GIN_MODE",
	"server.static_dir":            "STATIC_DIR",
	"server.cors_origins":          "CORS_ORIGINS",
	"database.host":                "DB_HOST",
	"database.port":                "DB_PORT",
	"database.database":            "DB_DATABASE",
	"database.username":            "DB_USERNAME",
	"database.password":            "DB_PASSWORD",
	"database.admin_user":          "DB_ADMIN_USER",
	"database.admin_password":      "DB_ADMIN_PASSWORD",
	"redis.addr":                   "REDIS_ADDR",
	"redis.password":               "REDIS_PASSWORD",
	"redis.db":                     "REDIS_DB",
	"security.access_token_secret": "ACCESS_TOKEN_SECRET",
	"security.access_token_ttl":    "ACCESS_TOKEN_TTL",
	"parser.driver":                "PARSER_DRIVER",
	"parser.strict":                "PARSER_STRICT",
	"parser.mysql_version":         "PARSER_MYSQL_VERSION",
	"parser.command":               "PARSER_COMMAND",
	"parser.timeout":               "PARSER_TIMEOUT",
	"renderer.url":                 "RENDERER_URL",
	"renderer.timeout":             "RENDERER_TIMEOUT",
	"rate_limit.per_minute":        "RATE_LIMIT_PER_MINUTE",
	"rate_limit.burst":             "RATE_LIMIT_BURST",
}

// Load reads config.yaml (./configs or .) when present, then overlays the
// environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Println("Config file not found, using defaults and environment variables")
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)
	cfg.Parser.Driver = strings.ToLower(strings.TrimSpace(cfg.Parser.Driver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.port", "5432")

	v.SetDefault("security.access_token_ttl", "1h")

	v.SetDefault("parser.driver", "vitess")
	v.SetDefault("parser.strict", true)
	v.SetDefault("parser.mysql_version", "8.0.30")
	v.SetDefault("parser.timeout", "10s")

	v.SetDefault("renderer.timeout", "60s")

	v.SetDefault("rate_limit.per_minute", 60)
	v.SetDefault("rate_limit.burst", 10)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.Server.Mode)
	}
	if c.Security.AccessTokenTTL <= 0 {
		return fmt.Errorf("invalid ACCESS_TOKEN_TTL %s", c.Security.AccessTokenTTL)
	}
	switch c.Parser.Driver {
	case "", "vitess":
	case "command":
		if c.Parser.Command == "" {
			return errors.New("PARSER_COMMAND is required when PARSER_DRIVER=command")
		}
	default:
		return fmt.Errorf("unknown PARSER_DRIVER %q", c.Parser.Driver)
	}
	return nil
}

// splitList accepts both YAML lists and a comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
