package api

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/catalog"
	"github.com/terraincognita07/fitnutri/internal/i18n"
	"github.com/terraincognita07/fitnutri/internal/services"
	"github.com/terraincognita07/fitnutri/internal/store"
)

// ProviderSwitch is the provider registry behind /api/provider.
type ProviderSwitch interface {
	Active() string
	Names() []string
	SetActive(name string) error
}

type Handler struct {
	store      *store.Store
	generation *services.GenerationService
	plans      *services.PlanService
	transfer   *services.TransferService
	providers  ProviderSwitch
	exercises  *catalog.Library
	parser     *ai.Parser
	i18n       *i18n.Manager
	logger     hclog.Logger
}

type Dependencies struct {
	Store      *store.Store
	Generation *services.GenerationService
	Plans      *services.PlanService
	Transfer   *services.TransferService
	Providers  ProviderSwitch
	Exercises  *catalog.Library
	I18n       *i18n.Manager
	Logger     hclog.Logger
}

func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("handler requires a store")
	case deps.Generation == nil:
		return nil, errors.New("handler requires a generation service")
	case deps.Providers == nil:
		return nil, errors.New("handler requires a provider switch")
	case deps.Exercises == nil:
		return nil, errors.New("handler requires an exercise library")
	case deps.I18n == nil:
		return nil, errors.New("handler requires an i18n manager")
	}

	logger := deps.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	handler := &Handler{
		store:      deps.Store,
		generation: deps.Generation,
		plans:      deps.Plans,
		transfer:   deps.Transfer,
		providers:  deps.Providers,
		exercises:  deps.Exercises,
		i18n:       deps.I18n,
		logger:     logger.Named("api"),
	}
	handler.parser = ai.NewParser(handler.logger)
	if handler.plans == nil {
		handler.plans = services.NewPlanService(deps.Store)
	}
	if handler.transfer == nil {
		return nil, errors.New("handler requires a transfer service")
	}
	return handler, nil
}
