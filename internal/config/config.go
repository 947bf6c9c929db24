// Package config resolves runtime settings from flags, FITNUTRI_* environment
// variables, an optional .env file and an optional fitnutri.yaml, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/models"
)

const (
	EnvPrefix      = "FITNUTRI"
	configBaseName = "fitnutri"
)

const (
	KeyDBPath          = "db_path"
	KeyMemory          = "memory"
	KeyPort            = "port"
	KeyLogLevel        = "log_level"
	KeyLogFile         = "log_file"
	KeyTimezone        = "tz"
	KeyLanguage        = "language"
	KeyDefaultProvider = "provider.default"
	KeyGeminiAPIKey    = "gemini.api_key"
	KeyGeminiModel     = "gemini.model"
	KeyGeminiBaseURL   = "gemini.base_url"
	KeyOpenAIAPIKey    = "openai.api_key"
	KeyOpenAIModel     = "openai.model"
	KeyOpenAIBaseURL   = "openai.base_url"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	DBPath          string
	Memory          bool
	Port            string
	LogLevel        string
	LogFile         string
	Timezone        string
	Language        string
	DefaultProvider string
	Gemini          ai.GeminiConfig
	OpenAI          ai.OpenAIConfig
}

// New returns a viper instance with defaults and environment bindings. The
// provider API keys also accept the unprefixed GEMINI_API_KEY and
// OPENAI_API_KEY names.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDBPath, filepath.Join("data", "fitnutri.db"))
	v.SetDefault(KeyMemory, false)
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTimezone, "UTC")
	v.SetDefault(KeyLanguage, "en")
	v.SetDefault(KeyDefaultProvider, models.ProviderGemini)
	v.SetDefault(KeyGeminiModel, ai.DefaultGeminiModel)
	v.SetDefault(KeyGeminiBaseURL, "")
	v.SetDefault(KeyOpenAIModel, ai.DefaultOpenAIModel)
	v.SetDefault(KeyOpenAIBaseURL, "")

	_ = v.BindEnv(KeyGeminiAPIKey, EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv(KeyOpenAIAPIKey, EnvPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")
	return v
}

// Load reads .env and the config file into v and decodes the result. An
// explicit configFile must exist; the default fitnutri.yaml is optional.
func Load(v *viper.Viper, configFile string, envFile string) (Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return Config{}, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configBaseName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Decode(v)
}

func Decode(v *viper.Viper) (Config, error) {
	cfg := Config{
		DBPath:          strings.TrimSpace(v.GetString(KeyDBPath)),
		Memory:          v.GetBool(KeyMemory),
		Port:            strings.TrimSpace(v.GetString(KeyPort)),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:         strings.TrimSpace(v.GetString(KeyLogFile)),
		Timezone:        strings.TrimSpace(v.GetString(KeyTimezone)),
		Language:        strings.TrimSpace(v.GetString(KeyLanguage)),
		DefaultProvider: strings.ToLower(strings.TrimSpace(v.GetString(KeyDefaultProvider))),
		Gemini: ai.GeminiConfig{
			APIKey:  strings.TrimSpace(v.GetString(KeyGeminiAPIKey)),
			Model:   strings.TrimSpace(v.GetString(KeyGeminiModel)),
			BaseURL: strings.TrimSpace(v.GetString(KeyGeminiBaseURL)),
		},
		OpenAI: ai.OpenAIConfig{
			APIKey:  strings.TrimSpace(v.GetString(KeyOpenAIAPIKey)),
			Model:   strings.TrimSpace(v.GetString(KeyOpenAIModel)),
			BaseURL: strings.TrimSpace(v.GetString(KeyOpenAIBaseURL)),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.DefaultProvider {
	case models.ProviderGemini, models.ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %s must be %q or %q, got %q", ErrInvalidConfig, KeyDefaultProvider, models.ProviderGemini, models.ProviderOpenAI, cfg.DefaultProvider)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %s must be between 1 and 65535, got %q", ErrInvalidConfig, KeyPort, cfg.Port)
	}

	if hclog.LevelFromString(cfg.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, KeyLogLevel, cfg.LogLevel)
	}
	if !cfg.Memory && cfg.DBPath == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, KeyDBPath)
	}
	return nil
}

// Watch re-decodes the config file whenever it changes on disk and passes
// the valid results to onChange. It does nothing when no file was read.
func Watch(v *viper.Viper, logger hclog.Logger, onChange func(Config)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	v.OnConfigChange(reloadHandler(v, logger.Named("config"), onChange))
	v.WatchConfig()
	return true
}

func reloadHandler(v *viper.Viper, logger hclog.Logger, onChange func(Config)) func(fsnotify.Event) {
	return func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		cfg, err := Decode(v)
		if err != nil {
			logger.Warn("ignoring invalid config change", "file", event.Name, "error", err)
			return
		}
		logger.Info("config reloaded", "file", event.Name)
		onChange(cfg)
	}
}

func loadDotEnv(envFile string) error {
	path := envFile
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if envFile == "" && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
