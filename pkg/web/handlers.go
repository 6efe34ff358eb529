package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/natctl/natctl/pkg/interpreter"
	"github.com/natctl/natctl/pkg/registry"
	"github.com/natctl/natctl/pkg/services"
	actionvalidator "github.com/natctl/natctl/pkg/validator"
)

type APIHandlers struct {
	commandService  *services.Commands
	interpreter     *interpreter.Interpreter
	actionValidator *actionvalidator.Validator
	validator       *validator.Validate
	registry        *registry.Registry
}

func NewAPIHandlers(
	commandService *services.Commands,
	interp *interpreter.Interpreter,
	actionValidator *actionvalidator.Validator,
	validate *validator.Validate,
	reg *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		commandService:  commandService,
		interpreter:     interp,
		actionValidator: actionValidator,
		validator:       validate,
		registry:        reg,
	}
}

// Interpret maps text to an action or sequence without validating or
// dispatching anything.
func (h *APIHandlers) Interpret(c fiber.Ctx) error {
	var req InterpretRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	action := h.interpreter.Interpret(req.Text)

	return c.JSON(fiber.Map{"action": action})
}

// ValidateAction checks an action document posted as a raw JSON object.
func (h *APIHandlers) ValidateAction(c fiber.Ctx) error {
	var document map[string]any
	if err := c.Bind().JSON(&document); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	outcome := h.actionValidator.ValidateDocument(document)

	return c.JSON(outcome)
}

// ValidateJSON runs strict-then-repaired JSON validation over a raw payload.
func (h *APIHandlers) ValidateJSON(c fiber.Ctx) error {
	var req ValidateJSONRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	outcome := h.actionValidator.ValidateJSON(req.Payload)

	return c.JSON(outcome)
}

// SubmitCommand runs the full pipeline for one command.
func (h *APIHandlers) SubmitCommand(c fiber.Ctx) error {
	var req CommandRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.commandService.Submit(c.Context(), services.SubmitRequest{
		SessionID: req.SessionID,
		Text:      req.Text,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

// GetHistory lists recorded commands, newest first.
func (h *APIHandlers) GetHistory(c fiber.Ctx) error {
	limit := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "Invalid limit parameter: "+err.Error())
		}

		limit = parsed
	}

	sessionID := c.Query("session_id")

	records, err := h.commandService.History(c.Context(), sessionID, limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"commands":   records,
		"count":      len(records),
		"session_id": sessionID,
	})
}

// GetCommand returns one recorded command by ID.
func (h *APIHandlers) GetCommand(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Command ID is required")
	}

	record, err := h.commandService.CommandByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(record)
}

// GetKinds lists the registered executable action kinds.
func (h *APIHandlers) GetKinds(c fiber.Ctx) error {
	ids := h.registry.KindIDs()
	kinds := make([]fiber.Map, 0, len(ids))

	for _, id := range ids {
		spec, _ := h.registry.Kind(id)
		kinds = append(kinds, fiber.Map{
			"id":          spec.ID,
			"description": spec.Description,
			"required":    spec.Required,
		})
	}

	return c.JSON(fiber.Map{"kinds": kinds})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.commandService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "natctl API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "natctl API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
