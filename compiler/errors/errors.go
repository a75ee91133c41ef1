// Package errors defines the error taxonomy for the gem schema compiler.
//
// Every failure surfaced by the compiler is one of three kinds: a
// SchemaError (the document itself is malformed), a TypeResolutionError
// (a field names a type that cannot be resolved), or a
// CircularReferenceError (models reference each other in a cycle).
// Each carries a stable code from codes.go so callers can match on the
// class of failure without parsing messages.
package errors

import (
	stderrors "errors"
	"fmt"
)

// SchemaError reports a structural problem with a schema document:
// unparseable YAML, a missing or malformed output_models section, or a
// field entry without its required keys.
type SchemaError struct {
	Code    string
	Message string
	Err     error // underlying cause, if any (YAML or I/O failure)
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewSchemaError creates a SchemaError with a formatted message.
func NewSchemaError(code, format string, args ...interface{}) *SchemaError {
	return &SchemaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapSchemaError creates a SchemaError that records err as its cause.
func WrapSchemaError(code string, err error, format string, args ...interface{}) *SchemaError {
	return &SchemaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// TypeResolutionError reports that a field's type expression could not be
// resolved: the name is unknown, the expression is syntactically invalid,
// or a generic was given the wrong number of arguments.
type TypeResolutionError struct {
	Code     string
	TypeName string // the unresolvable name, if the failure is a lookup
	Expr     string // the full expression being parsed
	Message  string
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnknownTypeError reports a name that is neither a declared model nor
// a registered type.
func NewUnknownTypeError(name, expr string) *TypeResolutionError {
	return &TypeResolutionError{
		Code:     CodeUnknownType,
		TypeName: name,
		Expr:     expr,
		Message:  fmt.Sprintf("Unknown type: %s", name),
	}
}

// NewMalformedTypeError reports a syntactically invalid type expression.
func NewMalformedTypeError(expr, format string, args ...interface{}) *TypeResolutionError {
	return &TypeResolutionError{
		Code:    CodeMalformedTypeExpr,
		Expr:    expr,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewArityError reports a generic type with the wrong number of arguments.
func NewArityError(expr, format string, args ...interface{}) *TypeResolutionError {
	return &TypeResolutionError{
		Code:    CodeArityMismatch,
		Expr:    expr,
		Message: fmt.Sprintf(format, args...),
	}
}

// CircularReferenceError reports a cycle in the model reference graph.
// Model names one model on the cycle; self-references report themselves.
type CircularReferenceError struct {
	Model string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("%s: Circular reference detected involving model '%s'", CodeCircularReference, e.Model)
}

// IsSchema reports whether err is (or wraps) a SchemaError.
func IsSchema(err error) bool {
	var target *SchemaError
	return stderrors.As(err, &target)
}

// IsTypeResolution reports whether err is (or wraps) a TypeResolutionError.
func IsTypeResolution(err error) bool {
	var target *TypeResolutionError
	return stderrors.As(err, &target)
}

// IsCircularReference reports whether err is (or wraps) a
// CircularReferenceError.
func IsCircularReference(err error) bool {
	var target *CircularReferenceError
	return stderrors.As(err, &target)
}
