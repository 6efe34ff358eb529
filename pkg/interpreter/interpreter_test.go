package interpreter

import (
	"log/slog"
	"testing"

	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterpreter() *Interpreter {
	return New(config.Defaults().Interpreter, slog.Default())
}

func TestInterpret_EmptyInput(t *testing.T) {
	interpreter := newTestInterpreter()

	for _, input := range []string{"", "   ", "\t\n"} {
		action := interpreter.Interpret(input)

		assert.Equal(t, models.KindInvalid, action.Kind)
		assert.False(t, action.SucceededParse)
		assert.Equal(t, "empty command", action.Error)
	}
}

func TestInterpret_SeparatorOnlyInput(t *testing.T) {
	interpreter := newTestInterpreter()

	action := interpreter.Interpret(" , , ")

	assert.Equal(t, models.KindInvalid, action.Kind)
}

func TestInterpret_Rules(t *testing.T) {
	interpreter := newTestInterpreter()

	tests := []struct {
		name       string
		input      string
		kind       models.ActionKind
		parameters map[string]any
	}{
		{
			name:       "open app",
			input:      "open chrome",
			kind:       models.KindOpenApp,
			parameters: map[string]any{"app_name": "chrome"},
		},
		{
			name:       "type text keeps original case",
			input:      "type Hello World",
			kind:       models.KindTypeText,
			parameters: map[string]any{"text": "Hello World"},
		},
		{
			name:       "click with target",
			input:      "click submit button",
			kind:       models.KindClick,
			parameters: map[string]any{"target": "submit button"},
		},
		{
			name:       "bare click omits empty capture",
			input:      "click",
			kind:       models.KindClick,
			parameters: map[string]any{},
		},
		{
			name:       "wait with unit",
			input:      "wait 5 seconds",
			kind:       models.KindWait,
			parameters: map[string]any{"seconds": "5"},
		},
		{
			name:       "wait fractional",
			input:      "wait for 2.5s",
			kind:       models.KindWait,
			parameters: map[string]any{"seconds": "2.5"},
		},
		{
			name:       "hotkey shadows press_key",
			input:      "press ctrl+c",
			kind:       models.KindHotkey,
			parameters: map[string]any{"key1": "ctrl", "key2": "c"},
		},
		{
			name:       "three key hotkey",
			input:      "hotkey ctrl+shift+p",
			kind:       models.KindHotkey,
			parameters: map[string]any{"key1": "ctrl", "key2": "shift", "key3": "p"},
		},
		{
			name:       "press single key",
			input:      "press the enter key",
			kind:       models.KindPressKey,
			parameters: map[string]any{"key": "enter"},
		},
		{
			name:       "screenshot",
			input:      "take a screenshot",
			kind:       models.KindScreenshot,
			parameters: map[string]any{},
		},
		{
			name:       "file create shadows open heuristic",
			input:      "create a file named todo.txt",
			kind:       models.KindFileCreate,
			parameters: map[string]any{"filename": "todo.txt"},
		},
		{
			name:       "done",
			input:      "DONE",
			kind:       models.KindDone,
			parameters: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := interpreter.Interpret(tt.input)

			require.NotNil(t, action)
			assert.Equal(t, tt.kind, action.Kind)
			assert.Equal(t, tt.parameters, action.Parameters)
			assert.True(t, action.SucceededParse)
			assert.Equal(t, tt.input, action.RawText)
		})
	}
}

func TestInterpret_Heuristics(t *testing.T) {
	interpreter := newTestInterpreter()

	tests := []struct {
		name       string
		input      string
		kind       models.ActionKind
		parameters map[string]any
	}{
		{
			name:       "vague create falls back to default filename",
			input:      "could you create some file for me",
			kind:       models.KindFileCreate,
			parameters: map[string]any{"filename": "new_file.txt"},
		},
		{
			name:       "vague open falls back to default app",
			input:      "please open the browser",
			kind:       models.KindOpenApp,
			parameters: map[string]any{"app_name": "notepad"},
		},
		{
			name:       "capture screen phrasing",
			input:      "capture my screen please",
			kind:       models.KindScreenshot,
			parameters: map[string]any{},
		},
		{
			name:       "vague wait uses default seconds",
			input:      "pause a moment",
			kind:       models.KindWait,
			parameters: map[string]any{"seconds": "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := interpreter.Interpret(tt.input)

			assert.Equal(t, tt.kind, action.Kind)
			assert.Equal(t, tt.parameters, action.Parameters)
			assert.True(t, action.SucceededParse)
		})
	}
}

func TestInterpret_Unknown(t *testing.T) {
	interpreter := newTestInterpreter()

	for _, input := range []string{"flurble the gronk", "qwerty", "do the thing"} {
		action := interpreter.Interpret(input)

		assert.Equal(t, models.KindUnknown, action.Kind, input)
		assert.False(t, action.SucceededParse)
		assert.Equal(t, input, action.Parameters["text"])
	}
}

func TestInterpret_Sequence(t *testing.T) {
	interpreter := newTestInterpreter()

	action := interpreter.Interpret("open chrome and type hello")

	require.True(t, action.IsSequence())
	steps := action.Steps()
	require.Len(t, steps, 2)

	assert.Equal(t, models.KindOpenApp, steps[0].Kind)
	assert.Equal(t, "chrome", steps[0].Parameters["app_name"])
	assert.Equal(t, models.KindTypeText, steps[1].Kind)
	assert.Equal(t, "hello", steps[1].Parameters["text"])
	assert.True(t, action.SucceededParse)
}

func TestInterpret_SequenceSeparators(t *testing.T) {
	interpreter := newTestInterpreter()

	tests := []struct {
		name  string
		input string
		kinds []models.ActionKind
	}{
		{
			name:  "comma then joiner collapses to one separator",
			input: "open chrome, then click",
			kinds: []models.ActionKind{models.KindOpenApp, models.KindClick},
		},
		{
			name:  "three parts keep left-to-right order",
			input: "open chrome and type hello and press enter",
			kinds: []models.ActionKind{models.KindOpenApp, models.KindTypeText, models.KindPressKey},
		},
		{
			name:  "bare comma",
			input: "wait 2, click",
			kinds: []models.ActionKind{models.KindWait, models.KindClick},
		},
		{
			name:  "trailing separator is discarded",
			input: "open chrome and ",
			kinds: nil, // single action, not a sequence
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := interpreter.Interpret(tt.input)

			if tt.kinds == nil {
				assert.False(t, action.IsSequence())

				return
			}

			require.True(t, action.IsSequence())
			steps := action.Steps()
			require.Len(t, steps, len(tt.kinds))

			for index, kind := range tt.kinds {
				assert.Equal(t, kind, steps[index].Kind)
			}
		})
	}
}

func TestInterpret_LocalizedSeparators(t *testing.T) {
	cfg := config.Defaults().Interpreter
	cfg.Separators = append(cfg.Separators, "und", "dann")
	interpreter := New(cfg, slog.Default())

	action := interpreter.Interpret("open chrome und type hallo")

	require.True(t, action.IsSequence())
	require.Len(t, action.Steps(), 2)
	assert.Equal(t, models.KindTypeText, action.Steps()[1].Kind)
}

func TestInterpret_SequenceWithUnknownStep(t *testing.T) {
	interpreter := newTestInterpreter()

	action := interpreter.Interpret("open chrome and flurble the gronk")

	require.True(t, action.IsSequence())
	require.Len(t, action.Steps(), 2)
	assert.Equal(t, models.KindUnknown, action.Steps()[1].Kind)
	assert.False(t, action.SucceededParse)
}

func TestInterpret_ConfigurableDefaults(t *testing.T) {
	cfg := config.Defaults().Interpreter
	cfg.DefaultFilename = "scratch.md"
	cfg.DefaultAppName = "firefox"
	interpreter := New(cfg, slog.Default())

	created := interpreter.Interpret("make a note file please")
	assert.Equal(t, "scratch.md", created.Parameters["filename"])

	opened := interpreter.Interpret("please open that application")
	assert.Equal(t, "firefox", opened.Parameters["app_name"])
}
