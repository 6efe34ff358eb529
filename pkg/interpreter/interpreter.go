// Package interpreter maps free-text commands to structured actions using
// ordered pattern rules with a keyword-heuristic fallback.
package interpreter

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/natctl/natctl/pkg/config"
	"github.com/natctl/natctl/pkg/models"
)

// Interpreter deterministically maps one line of input to zero, one, or many
// actions. It is stateless per call and safe for concurrent use; it never
// panics and never returns an error — unmatched input degrades to an
// "unknown" action.
type Interpreter struct {
	rules      []Rule
	heuristics []Heuristic
	splitter   *regexp.Regexp
	defaults   config.InterpreterConfig
	logger     *slog.Logger
}

func New(cfg config.InterpreterConfig, logger *slog.Logger) *Interpreter {
	separators := cfg.Separators
	if len(separators) == 0 {
		separators = config.Defaults().Interpreter.Separators
	}

	return &Interpreter{
		rules:      defaultRules(),
		heuristics: defaultHeuristics(),
		splitter:   buildSplitter(separators),
		defaults:   cfg,
		logger:     logger.With("module", "interpreter"),
	}
}

// Interpret converts text into a single action or a "sequence" action whose
// steps preserve left-to-right order. Only empty input is structurally
// invalid; everything else produces something actionable.
func (i *Interpreter) Interpret(text string) *models.Action {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.NewInvalidAction(text, "empty command")
	}

	parts := i.splitParts(trimmed)
	if len(parts) == 0 {
		// Separators only ("and, then").
		return models.NewInvalidAction(text, "empty command")
	}

	if len(parts) == 1 {
		return i.interpretSingle(parts[0])
	}

	steps := make([]*models.Action, 0, len(parts))
	for _, part := range parts {
		steps = append(steps, i.interpretSingle(part))
	}

	i.logger.Debug("Interpreted sequence", "parts", len(steps), "raw", trimmed)

	return models.NewSequence(text, steps)
}

// splitParts splits on every separator occurrence and discards empty
// sub-strings. Splitting on bare commas is not quote-aware; a command that
// legitimately contains a comma will be split. Known limitation.
func (i *Interpreter) splitParts(trimmed string) []string {
	parts := make([]string, 0, 2)

	for _, part := range i.splitter.Split(trimmed, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

func (i *Interpreter) interpretSingle(text string) *models.Action {
	for _, rule := range i.rules {
		match := rule.Pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		parameters := make(map[string]any, len(rule.Parameters))

		for index, name := range rule.Parameters {
			if index+1 >= len(match) {
				break
			}

			// A capture that matched but was empty is omitted rather than
			// stored as an empty string.
			if capture := strings.TrimSpace(match[index+1]); capture != "" {
				parameters[name] = capture
			}
		}

		return models.NewAction(rule.Kind, parameters, text)
	}

	lowered := strings.ToLower(text)

	for _, heuristic := range i.heuristics {
		if heuristic.Predicate(lowered) {
			i.logger.Debug("Heuristic fallback matched", "heuristic", heuristic.Name, "raw", text)

			return heuristic.Build(i.defaults, text)
		}
	}

	return models.NewUnknownAction(text)
}

// buildSplitter compiles the separator set into one alternation. A comma
// followed by a word joiner ("open x, then click") counts as a single
// separator so the joiner is not left glued to the next sub-string.
func buildSplitter(separators []string) *regexp.Regexp {
	words := make([]string, 0, len(separators))
	hasComma := false

	for _, separator := range separators {
		if separator == "," {
			hasComma = true

			continue
		}

		words = append(words, regexp.QuoteMeta(separator))
	}

	alternatives := make([]string, 0, 2)

	if hasComma {
		comma := `\s*,\s*`
		if len(words) > 0 {
			comma += `(?:(?i:` + strings.Join(words, "|") + `)\s+)?`
		}

		alternatives = append(alternatives, comma)
	}

	if len(words) > 0 {
		alternatives = append(alternatives, `\s+(?i:`+strings.Join(words, "|")+`)\s+`)
	}

	return regexp.MustCompile(strings.Join(alternatives, "|"))
}
