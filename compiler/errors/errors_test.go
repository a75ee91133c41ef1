package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestSchemaErrorFormat(t *testing.T) {
	err := NewSchemaError(CodeMissingOutputModels, "YAML must contain 'output_models' key")

	if got := err.Error(); got != "GEM002: YAML must contain 'output_models' key" {
		t.Errorf("unexpected message: %q", got)
	}
	if err.Unwrap() != nil {
		t.Error("expected no wrapped cause")
	}
}

func TestSchemaErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("yaml: line 3: mapping values are not allowed")
	err := WrapSchemaError(CodeMalformedDocument, cause, "Failed to parse YAML")

	if !strings.Contains(err.Error(), "Failed to parse YAML") {
		t.Errorf("message missing context: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("message missing cause: %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestUnknownTypeError(t *testing.T) {
	err := NewUnknownTypeError("CustomType", "List[CustomType]")

	if err.Code != CodeUnknownType {
		t.Errorf("code = %q, want %q", err.Code, CodeUnknownType)
	}
	if err.TypeName != "CustomType" {
		t.Errorf("type name = %q, want CustomType", err.TypeName)
	}
	if err.Expr != "List[CustomType]" {
		t.Errorf("expr = %q, want List[CustomType]", err.Expr)
	}
	if got := err.Error(); !strings.Contains(got, "Unknown type: CustomType") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestCircularReferenceErrorMessage(t *testing.T) {
	err := &CircularReferenceError{Model: "ModelA"}

	want := "Circular reference detected involving model 'ModelA'"
	if !strings.Contains(err.Error(), want) {
		t.Errorf("message %q does not contain %q", err.Error(), want)
	}
	if !strings.Contains(err.Error(), CodeCircularReference) {
		t.Errorf("message %q does not carry its code", err.Error())
	}
}

func TestPredicates(t *testing.T) {
	schemaErr := NewSchemaError(CodeInvalidShape, "'output_models' must be a list")
	typeErr := NewUnknownTypeError("Foo", "Foo")
	cycleErr := &CircularReferenceError{Model: "Self"}
	plain := stderrors.New("not ours")

	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"schema error matches IsSchema", schemaErr, IsSchema, true},
		{"type error does not match IsSchema", typeErr, IsSchema, false},
		{"type error matches IsTypeResolution", typeErr, IsTypeResolution, true},
		{"cycle error matches IsCircularReference", cycleErr, IsCircularReference, true},
		{"plain error matches nothing", plain, IsCircularReference, false},
		{"wrapped schema error still matches", fmt.Errorf("compile: %w", schemaErr), IsSchema, true},
		{"wrapped cycle error still matches", fmt.Errorf("compile: %w", cycleErr), IsCircularReference, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}
