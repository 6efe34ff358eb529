// Package models defines the core domain models for the command pipeline.
package models

// ActionKind identifies the family of an action ("click", "type_text", ...).
type ActionKind string

const (
	KindOpenApp    ActionKind = "open_app"
	KindTypeText   ActionKind = "type_text"
	KindHotkey     ActionKind = "hotkey"
	KindPressKey   ActionKind = "press_key"
	KindClick      ActionKind = "click"
	KindWait       ActionKind = "wait"
	KindScreenshot ActionKind = "screenshot"
	KindDone       ActionKind = "done"

	// Kinds produced by interpretation but never executed directly.
	KindFileCreate ActionKind = "file_create"
	KindSequence   ActionKind = "sequence"
	KindUnknown    ActionKind = "unknown"
	KindInvalid    ActionKind = "invalid"
)

// SequenceStepsParameter is the parameter key holding the ordered child
// actions of a "sequence" action.
const SequenceStepsParameter = "actions"

// Action is the unit of work produced by interpretation and consumed by
// validation. Actions are immutable once produced; a new Action is created
// for every input string.
type Action struct {
	Kind           ActionKind     `json:"kind"`
	Parameters     map[string]any `json:"parameters,omitempty"`
	RawText        string         `json:"raw_text,omitempty"`
	SucceededParse bool           `json:"succeeded_parse"`
	Error          string         `json:"error,omitempty"`
}

// NewAction creates a successfully parsed action.
func NewAction(kind ActionKind, parameters map[string]any, rawText string) *Action {
	if parameters == nil {
		parameters = make(map[string]any)
	}

	return &Action{
		Kind:           kind,
		Parameters:     parameters,
		RawText:        rawText,
		SucceededParse: true,
	}
}

// NewInvalidAction flags structurally unusable input (empty command).
func NewInvalidAction(rawText, reason string) *Action {
	return &Action{
		Kind:           KindInvalid,
		Parameters:     map[string]any{},
		RawText:        rawText,
		SucceededParse: false,
		Error:          reason,
	}
}

// NewUnknownAction carries unmatched input back to the caller as data.
func NewUnknownAction(rawText string) *Action {
	return &Action{
		Kind:           KindUnknown,
		Parameters:     map[string]any{"text": rawText},
		RawText:        rawText,
		SucceededParse: false,
		Error:          "no rule or heuristic matched",
	}
}

// NewSequence wraps ordered child actions in a "sequence" action. The
// sequence counts as parsed only when every child parsed.
func NewSequence(rawText string, steps []*Action) *Action {
	succeeded := len(steps) > 0
	for _, step := range steps {
		if !step.SucceededParse {
			succeeded = false

			break
		}
	}

	return &Action{
		Kind:           KindSequence,
		Parameters:     map[string]any{SequenceStepsParameter: steps},
		RawText:        rawText,
		SucceededParse: succeeded,
	}
}

// IsSequence reports whether the action wraps an ordered list of steps.
func (a *Action) IsSequence() bool {
	return a != nil && a.Kind == KindSequence
}

// Steps returns the ordered child actions of a sequence, or nil for a
// non-sequence action.
func (a *Action) Steps() []*Action {
	if !a.IsSequence() {
		return nil
	}

	steps, _ := a.Parameters[SequenceStepsParameter].([]*Action)

	return steps
}

// Parameter returns the named parameter as a string when present. Non-string
// values are not converted.
func (a *Action) Parameter(name string) (string, bool) {
	if a == nil || a.Parameters == nil {
		return "", false
	}

	value, ok := a.Parameters[name].(string)

	return value, ok
}

// FromMap builds an Action from a decoded JSON object, the shape external
// producers (models, HTTP clients) hand to the validator. Missing fields stay
// zero-valued; the validator reports them.
func FromMap(document map[string]any) *Action {
	action := &Action{Parameters: map[string]any{}}

	if kind, ok := document["kind"].(string); ok {
		action.Kind = ActionKind(kind)
	}

	if parameters, ok := document["parameters"].(map[string]any); ok {
		action.Parameters = parameters
	}

	if rawText, ok := document["raw_text"].(string); ok {
		action.RawText = rawText
	}

	if succeeded, ok := document["succeeded_parse"].(bool); ok {
		action.SucceededParse = succeeded
	}

	return action
}
