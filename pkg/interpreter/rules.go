package interpreter

import (
	"regexp"

	"github.com/natctl/natctl/pkg/models"
)

// Rule pairs a match pattern with an action kind and the parameter names its
// captures bind to, positionally. Rules are evaluated top to bottom and the
// first match wins, so earlier rules shadow later ones on overlapping text.
type Rule struct {
	Name       string
	Pattern    *regexp.Regexp
	Kind       models.ActionKind
	Parameters []string
}

// defaultRules is the built-in rule table. Ordering constraints:
// hotkey before press_key ("press ctrl+c" is a combination, not a key),
// file_create before open_app ("open a file named x" is not an app launch),
// wait before the generic verbs so bare numbers are not swallowed.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:       "wait",
			Pattern:    regexp.MustCompile(`(?i)^wait(?:\s+for)?\s+(\d+(?:\.\d+)?)\s*(?:seconds?|secs?|s)?$`),
			Kind:       models.KindWait,
			Parameters: []string{"seconds"},
		},
		{
			Name:       "file_create",
			Pattern:    regexp.MustCompile(`(?i)^(?:create|make)\s+(?:a\s+)?(?:new\s+)?file\s+(?:(?:named|called)\s+)?(.+)$`),
			Kind:       models.KindFileCreate,
			Parameters: []string{"filename"},
		},
		{
			Name:       "open_app",
			Pattern:    regexp.MustCompile(`(?i)^(?:open|launch|start)\s+(.+)$`),
			Kind:       models.KindOpenApp,
			Parameters: []string{"app_name"},
		},
		{
			Name:       "type_text",
			Pattern:    regexp.MustCompile(`(?i)^(?:type|write|enter)\s+(.+)$`),
			Kind:       models.KindTypeText,
			Parameters: []string{"text"},
		},
		{
			Name:       "hotkey",
			Pattern:    regexp.MustCompile(`(?i)^(?:hotkey\s+|press\s+)?(\w+)\s*\+\s*(\w+)(?:\s*\+\s*(\w+))?$`),
			Kind:       models.KindHotkey,
			Parameters: []string{"key1", "key2", "key3"},
		},
		{
			Name:       "press_key",
			Pattern:    regexp.MustCompile(`(?i)^press\s+(?:the\s+)?(.+?)(?:\s+key)?$`),
			Kind:       models.KindPressKey,
			Parameters: []string{"key"},
		},
		{
			Name:       "click",
			Pattern:    regexp.MustCompile(`(?i)^(?:click|tap)(?:\s+(?:on\s+)?(.*))?$`),
			Kind:       models.KindClick,
			Parameters: []string{"target"},
		},
		{
			Name:       "screenshot",
			Pattern:    regexp.MustCompile(`(?i)^(?:(?:take\s+)?(?:a\s+)?screenshot|capture\s+(?:the\s+)?screen)$`),
			Kind:       models.KindScreenshot,
			Parameters: nil,
		},
		{
			Name:       "done",
			Pattern:    regexp.MustCompile(`(?i)^(?:done|finish(?:ed)?|stop)$`),
			Kind:       models.KindDone,
			Parameters: nil,
		},
	}
}
