package models

// ValidationOutcome is the result of validating one action or one raw JSON
// payload. It is data, not an error: validation never raises.
type ValidationOutcome struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason,omitempty"`

	// Normalized holds a corrected value to substitute for the original
	// (repaired JSON, or the typed Action parsed from a raw document).
	Normalized any `json:"normalized,omitempty"`

	// Repaired is set when the payload only parsed after deterministic
	// repair; callers may want to surface that the input was not strict.
	Repaired bool `json:"repaired,omitempty"`
}

// Valid returns a passing outcome.
func Valid() ValidationOutcome {
	return ValidationOutcome{IsValid: true}
}

// ValidNormalized returns a passing outcome carrying a substitute value.
func ValidNormalized(normalized any, repaired bool) ValidationOutcome {
	return ValidationOutcome{IsValid: true, Normalized: normalized, Repaired: repaired}
}

// Invalid returns a failing outcome with a specific reason.
func Invalid(reason string) ValidationOutcome {
	return ValidationOutcome{IsValid: false, Reason: reason}
}
