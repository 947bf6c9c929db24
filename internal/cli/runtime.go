package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/catalog"
	"github.com/terraincognita07/fitnutri/internal/config"
	"github.com/terraincognita07/fitnutri/internal/db"
	"github.com/terraincognita07/fitnutri/internal/i18n"
	"github.com/terraincognita07/fitnutri/internal/logging"
	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/persistence"
	"github.com/terraincognita07/fitnutri/internal/services"
	"github.com/terraincognita07/fitnutri/internal/store"
)

// ClientFactory builds the provider clients for a configuration.
type ClientFactory func(ctx context.Context, cfg config.Config) ([]ai.Client, error)

// DefaultClients registers both providers. A provider without an API key is
// still listed but every call to it fails.
func DefaultClients(ctx context.Context, cfg config.Config) ([]ai.Client, error) {
	clients := make([]ai.Client, 0, 2)
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		clients = append(clients, gemini)
	} else {
		clients = append(clients, ai.UnconfiguredClient(models.ProviderGemini))
	}

	if cfg.OpenAI.APIKey != "" {
		clients = append(clients, ai.NewOpenAIClient(cfg.OpenAI))
	} else {
		clients = append(clients, ai.UnconfiguredClient(models.ProviderOpenAI))
	}
	return clients, nil
}

type BootstrapOptions struct {
	LogOutput io.Writer
	Clients   ClientFactory
}

// Runtime is the wired application shared by every command.
type Runtime struct {
	Config     config.Config
	Logger     hclog.Logger
	Store      *store.Store
	Router     *ai.Router
	Exercises  *catalog.Library
	Generation *services.GenerationService
	Plans      *services.PlanService
	Transfer   *services.TransferService
	I18n       *i18n.Manager

	closers []io.Closer
}

func Bootstrap(ctx context.Context, cfg config.Config, options BootstrapOptions) (*Runtime, error) {
	logger, logCloser := logging.New(logging.Options{
		Name:   "fitnutri",
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Output: options.LogOutput,
	})
	runtime := &Runtime{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	applyTimezone(cfg.Timezone, logger)

	backend, err := runtime.openBackend()
	if err != nil {
		runtime.Close()
		return nil, err
	}
	runtime.Exercises, err = catalog.NewEmbeddedLibrary()
	if err != nil {
		runtime.Close()
		return nil, fmt.Errorf("exercise library init failed: %w", err)
	}
	gateway := persistence.NewGateway(backend, logger)
	runtime.Store = store.New(store.Options{
		Preloaded:  store.Rehydrate(gateway),
		Middleware: []store.Middleware{store.Persist(gateway, logger)},
		Logger:     logger,
		Exercises:  runtime.Exercises,
	})

	clientFactory := options.Clients
	if clientFactory == nil {
		clientFactory = DefaultClients
	}
	clients, err := clientFactory(ctx, cfg)
	if err != nil {
		runtime.Close()
		return nil, fmt.Errorf("ai clients init failed: %w", err)
	}
	prompts, err := ai.NewPromptBuilder()
	if err != nil {
		runtime.Close()
		return nil, fmt.Errorf("prompt templates init failed: %w", err)
	}
	runtime.Router, err = ai.NewRouter(prompts, cfg.DefaultProvider, logger, clients...)
	if err != nil {
		runtime.Close()
		return nil, fmt.Errorf("ai router init failed: %w", err)
	}

	runtime.I18n, err = i18n.NewEmbeddedManager(cfg.Language)
	if err != nil {
		runtime.Close()
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	runtime.Generation = services.NewGenerationService(runtime.Router, ai.NewParser(logger), logger)
	runtime.Plans = services.NewPlanService(runtime.Store)
	runtime.Transfer = services.NewTransferService(runtime.Store, gateway, logger)
	return runtime, nil
}

func (runtime *Runtime) openBackend() (persistence.Backend, error) {
	if runtime.Config.Memory {
		runtime.Logger.Info("using in-memory storage")
		return persistence.NewMemoryBackend(), nil
	}

	database, err := db.OpenSQLite(runtime.Config.DBPath, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	runtime.closers = append(runtime.closers, sqlDB)
	return db.NewRepositories(database).Storage, nil
}

// ApplyConfig takes the parts of a reloaded configuration that can change
// while running: the default provider and the log level.
func (runtime *Runtime) ApplyConfig(cfg config.Config) {
	if err := runtime.Router.SetActive(cfg.DefaultProvider); err != nil {
		runtime.Logger.Warn("default provider not changed", "provider", cfg.DefaultProvider, "error", err)
	}
	if level := hclog.LevelFromString(cfg.LogLevel); level != hclog.NoLevel {
		runtime.Logger.SetLevel(level)
	}
}

// Close releases storage and log files in reverse order of opening.
func (runtime *Runtime) Close() {
	for index := len(runtime.closers) - 1; index >= 0; index-- {
		if err := runtime.closers[index].Close(); err != nil {
			runtime.Logger.Warn("close failed", "error", err)
		}
	}
	runtime.closers = nil
}

func applyTimezone(name string, logger hclog.Logger) {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", "tz", name)
		location = time.UTC
	}
	time.Local = location
}
