package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/ai"
)

func writeConfigFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "", "")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DefaultProvider != "gemini" {
		t.Fatalf("expected default provider gemini, got %q", cfg.DefaultProvider)
	}
	if cfg.Gemini.Model != ai.DefaultGeminiModel || cfg.OpenAI.Model != ai.DefaultOpenAIModel {
		t.Fatalf("unexpected default models %q / %q", cfg.Gemini.Model, cfg.OpenAI.Model)
	}
	if cfg.DBPath != filepath.Join("data", "fitnutri.db") {
		t.Fatalf("unexpected default db path %q", cfg.DBPath)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfigFile(t, dir, "fitnutri.yaml", "port: \"9000\"\nprovider:\n  default: openai\nopenai:\n  model: gpt-4o-mini\n")
	t.Setenv("FITNUTRI_PORT", "9100")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load(New(), "", "")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected env to override file port, got %q", cfg.Port)
	}
	if cfg.DefaultProvider != "openai" || cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("expected file values, got provider %q model %q", cfg.DefaultProvider, cfg.OpenAI.Model)
	}
	if cfg.Gemini.APIKey != "gemini-key" {
		t.Fatalf("expected unprefixed api key env, got %q", cfg.Gemini.APIKey)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfigFile(t, dir, ".env", "FITNUTRI_OPENAI_API_KEY=sk-from-dotenv\n")
	t.Setenv("FITNUTRI_OPENAI_API_KEY", "")
	os.Unsetenv("FITNUTRI_OPENAI_API_KEY")

	cfg, err := Load(New(), "", "")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-dotenv" {
		t.Fatalf("expected api key from .env, got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadExplicitFilesMustExist(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := Load(New(), filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Fatal("expected missing explicit config file to fail")
	}
	if _, err := Load(New(), "", filepath.Join(dir, "missing.env")); err == nil {
		t.Fatal("expected missing explicit env file to fail")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	valid := Config{DBPath: "data/app.db", Port: "8080", LogLevel: "info", DefaultProvider: "gemini"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "provider", mutate: func(cfg *Config) { cfg.DefaultProvider = "claude" }},
		{name: "port", mutate: func(cfg *Config) { cfg.Port = "99999" }},
		{name: "port text", mutate: func(cfg *Config) { cfg.Port = "http" }},
		{name: "log level", mutate: func(cfg *Config) { cfg.LogLevel = "loud" }},
		{name: "db path", mutate: func(cfg *Config) { cfg.DBPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	memory := valid
	memory.DBPath = ""
	memory.Memory = true
	if err := memory.Validate(); err != nil {
		t.Fatalf("expected memory mode without db path to be valid, got %v", err)
	}
}

func TestReloadHandlerSkipsInvalidChanges(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfigFile(t, dir, "fitnutri.yaml", "provider:\n  default: gemini\n")

	v := New()
	if _, err := Load(v, path, ""); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	var received []string
	handler := reloadHandler(v, hclog.NewNullLogger(), func(cfg Config) {
		received = append(received, cfg.DefaultProvider)
	})

	writeConfigFile(t, dir, "fitnutri.yaml", "provider:\n  default: openai\n")
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() unexpected error: %v", err)
	}
	handler(fsnotify.Event{Name: path, Op: fsnotify.Write})

	writeConfigFile(t, dir, "fitnutri.yaml", "provider:\n  default: mystery\n")
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() unexpected error: %v", err)
	}
	handler(fsnotify.Event{Name: path, Op: fsnotify.Write})
	handler(fsnotify.Event{Name: path, Op: fsnotify.Chmod})

	if len(received) != 1 || received[0] != "openai" {
		t.Fatalf("expected a single openai reload, got %v", received)
	}
}

func TestWatchRequiresConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	v := New()
	if _, err := Load(v, "", ""); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if Watch(v, nil, func(Config) {}) {
		t.Fatal("expected Watch to be skipped without a config file")
	}
}
