package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported completion providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// AIConfig selects the completion provider. The API key is resolved on every
// call so a key exported after startup is picked up without a restart.
type AIConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	BaseURL   string `mapstructure:"base_url"`
}

// ResolveAPIKey returns the key from APIKeyEnv, then from the selected
// provider's own variable, falling back to APIKey.
func (c AIConfig) ResolveAPIKey() string {
	for _, env := range []string{c.APIKeyEnv, ProviderKeyEnv(c.Provider)} {
		if env == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.APIKey)
}

// ProviderKeyEnv names the vendor-specific key variable of provider.
func ProviderKeyEnv(provider string) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// DefaultModel is the model used when ai.model is not set.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return ""
	}
}

// DatabaseConfig configures the generation log store.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.Path
}

type SessionConfig struct {
	CookieName    string        `mapstructure:"cookie_name"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load reads configs/config.yaml (or configPath), .env and the environment.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "GIN_MODE")
	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.model", "AI_MODEL")
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.api_key_env", "AI_API_KEY_ENV")
	v.BindEnv("database.enabled", "DATABASE_ENABLED")
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.path", "DATABASE_PATH")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = DefaultModel(cfg.AI.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.api_key_env", "API_KEY")
	v.SetDefault("ai.base_url", "")

	v.SetDefault("database.enabled", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/contentflow.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("session.cookie_name", "contentflow_session")
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("session.sweep_interval", 5*time.Minute)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	switch c.AI.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		result = multierror.Append(result, fmt.Errorf("ai.provider %q is not one of %s, %s", c.AI.Provider, ProviderGemini, ProviderOpenAI))
	}
	if c.AI.Model == "" {
		result = multierror.Append(result, fmt.Errorf("ai.model is required"))
	}

	if c.Database.Enabled {
		switch c.Database.Driver {
		case "sqlite":
			if c.Database.Path == "" {
				result = multierror.Append(result, fmt.Errorf("database.path is required for sqlite"))
			}
		case "postgres":
			if c.Database.Host == "" || c.Database.DBName == "" {
				result = multierror.Append(result, fmt.Errorf("database.host and database.dbname are required for postgres"))
			}
		default:
			result = multierror.Append(result, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
		}
	}

	if c.Session.IdleTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("session.idle_timeout must be positive"))
	}
	if c.Session.SweepInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("session.sweep_interval must be positive"))
	}
	if c.Session.CookieName == "" {
		result = multierror.Append(result, fmt.Errorf("session.cookie_name is required"))
	}

	return result.ErrorOrNil()
}
