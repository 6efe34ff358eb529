package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/natctl/natctl/pkg/channels/gochannel"
	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/eventbus"
	"github.com/natctl/natctl/pkg/interpreter"
	"github.com/natctl/natctl/pkg/persistence/file"
	"github.com/natctl/natctl/pkg/registry"
	"github.com/natctl/natctl/pkg/services"
	actionvalidator "github.com/natctl/natctl/pkg/validator"
	"github.com/natctl/natctl/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := slog.Default()
	reg := registry.Default(logger)
	interp := interpreter.New(config.Defaults().Interpreter, logger)
	av := actionvalidator.New(reg, logger)

	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	commandService := services.NewCommands(
		interp,
		av,
		reg,
		eventbus.NewWatermillEventBus(pub, sub),
		file.NewPersistence(t.TempDir()),
		nil,
		logger,
	)

	handlers := web.NewAPIHandlers(
		commandService,
		interp,
		av,
		validator.New(validator.WithRequiredStructEnabled()),
		reg,
	)

	app := fiber.New()
	app.Post("/interpret", handlers.Interpret)
	app.Post("/validate", handlers.ValidateAction)
	app.Post("/validate-json", handlers.ValidateJSON)
	app.Post("/commands", handlers.SubmitCommand)
	app.Get("/commands/:id", handlers.GetCommand)
	app.Get("/history", handlers.GetHistory)
	app.Get("/kinds", handlers.GetKinds)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))

	return body
}

func TestInterpret(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name         string
		text         string
		expectedKind string
	}{
		{name: "single action", text: "open chrome", expectedKind: "open_app"},
		{name: "sequence", text: "open chrome and type hello", expectedKind: "sequence"},
		{name: "unknown", text: "frobnicate the widget", expectedKind: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, "/interpret", web.InterpretRequest{Text: tt.text})

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			action, ok := body["action"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.expectedKind, action["kind"])
		})
	}
}

func TestInterpret_MissingText(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := postJSON(t, app, "/interpret", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateAction(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name          string
		document      map[string]any
		expectedValid bool
		reasonPart    string
	}{
		{
			name: "valid open_app",
			document: map[string]any{
				"kind":       "open_app",
				"parameters": map[string]any{"app_name": "chrome"},
			},
			expectedValid: true,
		},
		{
			name: "missing required parameter",
			document: map[string]any{
				"kind":       "type_text",
				"parameters": map[string]any{},
			},
			expectedValid: false,
			reasonPart:    "text",
		},
		{
			name:          "unknown kind",
			document:      map[string]any{"kind": "fly"},
			expectedValid: false,
			reasonPart:    "invalid kind: fly",
		},
		{
			name:          "empty document",
			document:      map[string]any{},
			expectedValid: false,
			reasonPart:    "action is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, "/validate", tt.document)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.expectedValid, body["is_valid"])

			if tt.reasonPart != "" {
				assert.Contains(t, body["reason"], tt.reasonPart)
			}
		})
	}
}

func TestValidateJSON(t *testing.T) {
	app := setupTestApp(t)

	t.Run("strict payload", func(t *testing.T) {
		resp, body := postJSON(t, app, "/validate-json", web.ValidateJSONRequest{Payload: `{"kind": "done"}`})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["is_valid"])
		assert.Nil(t, body["repaired"])
	})

	t.Run("repairable payload", func(t *testing.T) {
		resp, body := postJSON(t, app, "/validate-json", web.ValidateJSONRequest{Payload: `{"done": True,}`})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["is_valid"])
		assert.Equal(t, true, body["repaired"])
	})

	t.Run("unrepairable payload", func(t *testing.T) {
		resp, body := postJSON(t, app, "/validate-json", web.ValidateJSONRequest{Payload: `{{{`})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["is_valid"])
	})

	t.Run("missing payload", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/validate-json", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSubmitCommand(t *testing.T) {
	app := setupTestApp(t)

	resp, body := postJSON(t, app, "/commands", web.CommandRequest{
		Text:      "open chrome, then take a screenshot",
		SessionID: "session-1",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	results, ok := body["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)

	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, first["valid"])
	assert.Equal(t, true, first["dispatched"])
	assert.NotEmpty(t, first["command_id"])
}

func TestSubmitCommand_MissingText(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := postJSON(t, app, "/commands", map[string]any{"session_id": "s"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetHistoryAndCommand(t *testing.T) {
	app := setupTestApp(t)

	_, submitBody := postJSON(t, app, "/commands", web.CommandRequest{
		Text:      "type hello",
		SessionID: "session-h",
	})

	results := submitBody["results"].([]any)
	commandID := results[0].(map[string]any)["command_id"].(string)

	resp, body := getJSON(t, app, "/history?session_id=session-h&limit=10")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, record := getJSON(t, app, "/commands/"+commandID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "type hello", record["raw_text"])

	resp, _ = getJSON(t, app, "/commands/missing-id")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetHistory_InvalidLimit(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := getJSON(t, app, "/history?limit=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetKinds(t *testing.T) {
	app := setupTestApp(t)

	resp, body := getJSON(t, app, "/kinds")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	kinds, ok := body["kinds"].([]any)
	require.True(t, ok)
	assert.Len(t, kinds, 8)
}

func TestHealthCheck(t *testing.T) {
	app := setupTestApp(t)

	resp, body := getJSON(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}
