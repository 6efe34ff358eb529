package validator

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/natctl/natctl/pkg/models"
)

// Model output is JSON-ish more often than JSON. The repairs below are the
// bounded, deterministic subset that fixes transport artifacts without
// guessing at meaning: fenced code block markers, Python literals, trailing
// commas. Anything beyond that stays invalid.
var (
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	pythonTruePattern    = regexp.MustCompile(`\bTrue\b`)
	pythonFalsePattern   = regexp.MustCompile(`\bFalse\b`)
	pythonNonePattern    = regexp.MustCompile(`\bNone\b`)
)

// ValidateJSON attempts strict parsing of a raw textual payload; on failure
// it applies the repairs once and retries. A repaired parse is valid with the
// parsed structure in Normalized and the Repaired flag set; a second failure
// is invalid with the original parser error.
func (v *Validator) ValidateJSON(text string) models.ValidationOutcome {
	var parsed any

	strictErr := json.Unmarshal([]byte(text), &parsed)
	if strictErr == nil {
		return models.ValidNormalized(parsed, false)
	}

	repaired := repairJSON(text)
	if repaired == text {
		return models.Invalid(strictErr.Error())
	}

	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return models.Invalid(strictErr.Error())
	}

	v.logger.Warn("Payload parsed only after repair", "original_error", strictErr.Error())

	return models.ValidNormalized(parsed, true)
}

func repairJSON(text string) string {
	repaired := stripCodeFence(text)
	repaired = pythonTruePattern.ReplaceAllString(repaired, "true")
	repaired = pythonFalsePattern.ReplaceAllString(repaired, "false")
	repaired = pythonNonePattern.ReplaceAllString(repaired, "null")
	repaired = trailingCommaPattern.ReplaceAllString(repaired, "$1")

	return repaired
}

// stripCodeFence removes a leading/trailing markdown fence, including an
// optional language tag on the opening fence ("```json").
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)

	if !strings.HasPrefix(trimmed, "```") {
		return text
	}

	trimmed = strings.TrimPrefix(trimmed, "```")

	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(trimmed[:newline])
		if isLanguageTag(firstLine) {
			trimmed = trimmed[newline+1:]
		}
	} else {
		trimmed = strings.TrimSpace(trimmed)
		trimmed = strings.TrimSuffix(trimmed, "```")

		return strings.TrimSpace(trimmed)
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")

	return strings.TrimSpace(trimmed)
}

func isLanguageTag(line string) bool {
	if line == "" {
		return true
	}

	for _, r := range line {
		if !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') {
			return false
		}
	}

	return true
}
