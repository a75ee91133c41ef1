package runtime

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors collects per-field validation failures from one
// instantiation attempt. A field may carry several messages.
type ValidationErrors struct {
	Model  string
	Fields map[string][]string
}

// NewValidationErrors creates an empty error collection for a model.
func NewValidationErrors(model string) *ValidationErrors {
	return &ValidationErrors{
		Model:  model,
		Fields: make(map[string][]string),
	}
}

// Add records a validation failure for a field.
func (ve *ValidationErrors) Add(field, message string) {
	ve.Fields[field] = append(ve.Fields[field], message)
}

// HasErrors reports whether any failures were recorded.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Fields) > 0
}

// FieldErrors returns the messages recorded for a field.
func (ve *ValidationErrors) FieldErrors(field string) []string {
	return ve.Fields[field]
}

// Error formats all failures, fields in sorted order for stable output.
func (ve *ValidationErrors) Error() string {
	if !ve.HasErrors() {
		return fmt.Sprintf("validation passed for %s", ve.Model)
	}

	fields := make([]string, 0, len(ve.Fields))
	for field := range ve.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		for _, message := range ve.Fields[field] {
			parts = append(parts, fmt.Sprintf("%s: %s", field, message))
		}
	}
	return fmt.Sprintf("validation failed for %s: %s", ve.Model, strings.Join(parts, "; "))
}
