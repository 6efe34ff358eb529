// Package services implements the command pipeline behind the API: interpret,
// validate, dispatch, record.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/natctl/natctl/pkg/eventbus"
	"github.com/natctl/natctl/pkg/events"
	"github.com/natctl/natctl/pkg/interpreter"
	"github.com/natctl/natctl/pkg/models"
	"github.com/natctl/natctl/pkg/persistence"
	"github.com/natctl/natctl/pkg/registry"
	"github.com/natctl/natctl/pkg/store"
	"github.com/natctl/natctl/pkg/tracing"
	"github.com/natctl/natctl/pkg/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// sessionStateTTL bounds how long per-session state (last command text)
// survives without activity.
const sessionStateTTL = 30 * time.Minute

// Commands runs the full pipeline for one submitted text command. Validated
// actions are dispatched on the event bus for external executors; every step
// is recorded in the command history regardless of outcome.
type Commands struct {
	interpreter *interpreter.Interpreter
	validator   *validator.Validator
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	persistence persistence.Persistence
	sessions    store.Store
	logger      *slog.Logger
}

func NewCommands(
	interp *interpreter.Interpreter,
	actionValidator *validator.Validator,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
	persistence persistence.Persistence,
	sessions store.Store,
	logger *slog.Logger,
) *Commands {
	return &Commands{
		interpreter: interp,
		validator:   actionValidator,
		registry:    reg,
		eventBus:    eventBus,
		persistence: persistence,
		sessions:    sessions,
		logger:      logger.With("module", "commands"),
	}
}

// SubmitRequest is one raw text command attributed to a session.
type SubmitRequest struct {
	SessionID string
	Text      string
}

// ActionResult is the per-step outcome of a submission.
type ActionResult struct {
	CommandID  string         `json:"command_id"`
	Action     *models.Action `json:"action"`
	Valid      bool           `json:"valid"`
	Reason     string         `json:"reason,omitempty"`
	Dispatched bool           `json:"dispatched"`
}

// SubmitResult carries the interpreted action (possibly a sequence) and the
// outcome of every step in it.
type SubmitResult struct {
	Action  *models.Action `json:"action"`
	Results []ActionResult `json:"results"`
}

// Submit runs interpret, validate, dispatch, and record for one command.
// Interpretation and validation failures are data in the result; only
// infrastructure failures (bus, persistence) surface as errors.
func (s *Commands) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	tracer := otel.Tracer("natctl/commands")

	ctx, span := tracing.StartSpan(ctx, tracer, "commands.submit",
		attribute.String(tracing.SessionIDKey, req.SessionID),
		attribute.String(tracing.CommandTextKey, req.Text),
	)
	defer span.End()

	received := events.NewCommandReceived(req.SessionID, req.Text)
	if err := s.eventBus.Publish(ctx, req.SessionID, received); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish command received event", "error", err)
	}

	action := s.interpreter.Interpret(req.Text)
	span.SetAttributes(
		attribute.String(tracing.ActionKindKey, string(action.Kind)),
		attribute.Int(tracing.StepCountKey, len(action.Steps())),
	)

	steps := action.Steps()
	if steps == nil {
		steps = []*models.Action{action}
	}

	results := make([]ActionResult, 0, len(steps))

	for _, step := range steps {
		result, err := s.processStep(ctx, req.SessionID, step)
		if err != nil {
			tracing.SetError(span, err)

			return nil, err
		}

		results = append(results, result)
	}

	s.rememberLastCommand(ctx, req.SessionID, req.Text)

	return &SubmitResult{Action: action, Results: results}, nil
}

// processStep validates one step, dispatches or rejects it on the bus, and
// records it in the history.
func (s *Commands) processStep(ctx context.Context, sessionID string, step *models.Action) (ActionResult, error) {
	outcome := s.validator.Validate(step)

	reason := outcome.Reason
	valid := outcome.IsValid

	if valid {
		if err := s.registry.ValidateParameters(string(step.Kind), step.Parameters); err != nil {
			valid = false
			reason = err.Error()
		}
	}

	commandID := uuid.New().String()
	result := ActionResult{
		CommandID: commandID,
		Action:    step,
		Valid:     valid,
		Reason:    reason,
	}

	record := &models.CommandRecord{
		ID:        commandID,
		SessionID: sessionID,
		RawText:   step.RawText,
		Kind:      step.Kind,
		Valid:     valid,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.persistence.SaveCommand(ctx, record); err != nil {
		return result, fmt.Errorf("failed to record command %s: %w", commandID, err)
	}

	if !valid {
		rejected := events.NewCommandRejected(sessionID, commandID, step.RawText, reason)
		if err := s.eventBus.Publish(ctx, sessionID, rejected); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish command rejected event",
				"command_id", commandID, "error", err)
		}

		return result, nil
	}

	dispatched := events.NewActionDispatched(sessionID, commandID, step)
	if err := s.eventBus.Publish(ctx, sessionID, dispatched); err != nil {
		return result, fmt.Errorf("failed to dispatch action %s: %w", commandID, err)
	}

	result.Dispatched = true

	return result, nil
}

// rememberLastCommand keeps the most recent raw text per session so clients
// can offer "repeat last command". Best effort.
func (s *Commands) rememberLastCommand(ctx context.Context, sessionID, text string) {
	if sessionID == "" || s.sessions == nil {
		return
	}

	err := s.sessions.Set(ctx, lastCommandKey(sessionID), text, sessionStateTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to store session state", "session_id", sessionID, "error", err)
	}
}

// LastCommand returns the most recent raw text submitted in a session.
func (s *Commands) LastCommand(ctx context.Context, sessionID string) (string, bool, error) {
	if sessionID == "" || s.sessions == nil {
		return "", false, nil
	}

	return s.sessions.Get(ctx, lastCommandKey(sessionID))
}

// History lists recorded commands, newest first, optionally filtered by
// session.
func (s *Commands) History(ctx context.Context, sessionID string, limit int) ([]*models.CommandRecord, error) {
	records, err := s.persistence.Commands(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list command history: %w", err)
	}

	return records, nil
}

// CommandByID returns one recorded command.
func (s *Commands) CommandByID(ctx context.Context, id string) (*models.CommandRecord, error) {
	record, err := s.persistence.CommandByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load command %s: %w", id, err)
	}

	return record, nil
}

// HealthCheck checks the health of the persistence layer.
func (s *Commands) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func lastCommandKey(sessionID string) string {
	return "session:" + sessionID + ":last_command"
}
