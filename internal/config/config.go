package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama3-8b-8192"
)

var ErrMissingAPIKey = errors.New("GROQ_API_KEY is not set")

type Config struct {
	Server ServerConfig `yaml:"server"`
	AI     AIConfig     `yaml:"ai"`
	Web    WebConfig    `yaml:"web"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"` // 0 disables the deadline
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type AIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Stub    bool   `yaml:"stub"`
}

type WebConfig struct {
	IndexPath string `yaml:"index_path"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		AI: AIConfig{
			BaseURL: DefaultGroqBaseURL,
			Model:   DefaultGroqModel,
		},
		Web: WebConfig{IndexPath: "index.html"},
		Log: LogConfig{Mode: "development"},
	}
}

// Load resolves configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and then environment variables, in that order of precedence.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := envReader{lookup: lookup}
	cfg := defaults()

	if path := env.getString("CONFIG_FILE", ""); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Server.Host = env.getString("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = env.getInt("PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = env.getDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = env.getDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.ShutdownTimeout = env.getDuration("SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.AI.APIKey = env.getString("GROQ_API_KEY", cfg.AI.APIKey)
	cfg.AI.BaseURL = env.getString("GROQ_BASE_URL", cfg.AI.BaseURL)
	cfg.AI.Model = env.getString("GROQ_MODEL", cfg.AI.Model)
	cfg.AI.Stub = env.getBool("AI_STUB", cfg.AI.Stub)

	cfg.Web.IndexPath = env.getString("INDEX_HTML_PATH", cfg.Web.IndexPath)
	cfg.Log.Mode = env.getString("LOG_MODE", cfg.Log.Mode)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.AI.APIKey == "" && !c.AI.Stub {
		return ErrMissingAPIKey
	}
	if c.AI.Model == "" {
		return errors.New("GROQ_MODEL must not be empty")
	}
	return nil
}

type envReader struct {
	lookup func(string) (string, bool)
}

func (e envReader) getString(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) getInt(key string, defaultValue int) int {
	if value, ok := e.lookup(key); ok && value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func (e envReader) getBool(key string, defaultValue bool) bool {
	if value, ok := e.lookup(key); ok && value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func (e envReader) getDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := e.lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
