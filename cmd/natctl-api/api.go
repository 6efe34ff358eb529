// Package main provides the natctl API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/eventbus"
	"github.com/natctl/natctl/pkg/interpreter"
	"github.com/natctl/natctl/pkg/persistence"
	"github.com/natctl/natctl/pkg/registry"
	"github.com/natctl/natctl/pkg/services"
	"github.com/natctl/natctl/pkg/store"
	actionvalidator "github.com/natctl/natctl/pkg/validator"
	"github.com/natctl/natctl/pkg/web"
)

type API struct {
	logger      *slog.Logger
	config      config.Config
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	sessions    store.Store
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	cfg config.Config,
	persistence persistence.Persistence,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	sessions store.Store,
) *API {
	return &API{
		logger:      logger,
		config:      cfg,
		persistence: persistence,
		registry:    registry,
		eventBus:    eventBus,
		sessions:    sessions,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	interp := interpreter.New(a.config.Interpreter, a.logger)
	actionValidator := actionvalidator.New(a.registry, a.logger)

	commandService := services.NewCommands(
		interp,
		actionValidator,
		a.registry,
		a.eventBus,
		a.persistence,
		a.sessions,
		a.logger,
	)

	handlers := web.NewAPIHandlers(commandService, interp, actionValidator, a.validate, a.registry)

	return web.NewApp(handlers)
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
