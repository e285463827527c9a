package mcp

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestions represents an error with tool suggestions
type ErrorWithSuggestions struct {
	Message     string
	Suggestions []string
}

// Error returns the error message with suggestions
func (e *ErrorWithSuggestions) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Message
	}

	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString("\n\nDid you mean to use one of these tools instead?\n")
	for _, suggestion := range e.Suggestions {
		sb.WriteString("  - ")
		sb.WriteString(suggestion)
		sb.WriteString("\n")
	}
	return sb.String()
}

// NewErrorWithSuggestions creates a new error with tool suggestions
func NewErrorWithSuggestions(message string, suggestions ...string) error {
	return &ErrorWithSuggestions{
		Message:     message,
		Suggestions: suggestions,
	}
}

// EmptyBaseError is returned when a batch tool gets a blank base article
func EmptyBaseError() error {
	return NewErrorWithSuggestions(
		"base article is empty",
		"label_peek - Look up the next free article for a prefix first",
	)
}

// InvalidParameterError returns an error with suggestions for invalid parameters
func InvalidParameterError(param string, expected string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("invalid %s: expected %s", param, expected),
		"Use the tool descriptions to understand parameter requirements",
		"Check examples in the tool description",
	)
}
