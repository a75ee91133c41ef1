package gem

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/caesar0301/wizagent/compiler/errors"
	"github.com/caesar0301/wizagent/compiler/parser"
	"github.com/caesar0301/wizagent/runtime"
)

// Compiler turns schema documents into sealed runtime model sets. The
// type registry persists across Compile calls, so host-registered types
// are available to every compilation; declaration state never does, each
// call starts from the document alone.
//
// A Compiler is safe for concurrent Compile calls.
type Compiler struct {
	registry *runtime.Registry
	logger   *zap.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the compiler's logger. The default discards all logs.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithTypes registers host types at construction time.
func WithTypes(types map[string]runtime.Type) Option {
	return func(c *Compiler) {
		for name, t := range types {
			c.registry.Register(name, t)
		}
	}
}

// NewCompiler creates a compiler with the default type registry.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		registry: runtime.DefaultRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterType binds a name in the compiler's type registry. Types
// registered here persist for the lifetime of the compiler and can
// shadow built-ins.
func (c *Compiler) RegisterType(name string, t runtime.Type) {
	c.registry.Register(name, t)
}

// Registry exposes the compiler's type registry.
func (c *Compiler) Registry() *runtime.Registry {
	return c.registry
}

// CompileString parses source as a YAML schema document and compiles it.
func (c *Compiler) CompileString(source string) (*runtime.ModelSet, error) {
	doc, err := ParseDocument([]byte(source))
	if err != nil {
		return nil, err
	}
	return c.Compile(doc)
}

// CompileFile loads a schema document from disk and compiles it.
func (c *Compiler) CompileFile(path string) (*runtime.ModelSet, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return c.Compile(doc)
}

// Compile builds the document's models into a sealed ModelSet.
//
// Phases run in order and the first failure aborts with no partial
// results: type expressions are parsed and classified, the model
// reference graph is checked for cycles, and only then are models built
// in three passes (declare stubs, fill fields, seal the set).
func (c *Compiler) Compile(doc *Document) (*runtime.ModelSet, error) {
	if doc == nil {
		return nil, errors.NewSchemaError(errors.CodeInvalidShape, "document is nil")
	}
	start := time.Now()

	scope, err := newCompileScope(doc, c.registry)
	if err != nil {
		return nil, err
	}

	models, err := parseFieldTypes(doc, scope)
	if err != nil {
		return nil, err
	}

	graph := buildDependencyGraph(models)
	if err := graph.checkCycles(); err != nil {
		return nil, err
	}

	set, err := c.build(models)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("compiled schema document",
		zap.Int("models", set.Len()),
		zap.Strings("names", set.Names()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return set, nil
}

// Dependencies reports, for each model in the document, the declared
// models its fields reference, in first-use order. The document is
// shape-checked and every type expression parsed, but no models are
// built and cycles are not an error: the result describes the reference
// graph as written.
func (c *Compiler) Dependencies(doc *Document) (map[string][]string, error) {
	if doc == nil {
		return nil, errors.NewSchemaError(errors.CodeInvalidShape, "document is nil")
	}

	scope, err := newCompileScope(doc, c.registry)
	if err != nil {
		return nil, err
	}
	models, err := parseFieldTypes(doc, scope)
	if err != nil {
		return nil, err
	}

	graph := buildDependencyGraph(models)
	out := make(map[string][]string, len(graph.order))
	for _, name := range graph.order {
		out[name] = graph.dependencies(name)
	}
	return out, nil
}

// compileScope carries the name-resolution context of one compilation:
// the declared model names plus the compiler's registry.
type compileScope struct {
	models   map[string]bool
	registry *runtime.Registry
}

func newCompileScope(doc *Document, registry *runtime.Registry) (*compileScope, error) {
	scope := &compileScope{
		models:   make(map[string]bool, len(doc.Models)),
		registry: registry,
	}
	for _, decl := range doc.Models {
		if decl.Name == "" {
			return nil, errors.NewSchemaError(errors.CodeInvalidShape, "model name must be a non-empty string")
		}
		if scope.models[decl.Name] {
			return nil, errors.NewSchemaError(errors.CodeDuplicateModel, "Duplicate model name '%s'", decl.Name)
		}
		scope.models[decl.Name] = true
	}
	return scope, nil
}

func (s *compileScope) HasModel(name string) bool { return s.models[name] }
func (s *compileScope) HasType(name string) bool  { return s.registry.Has(name) }

// parseFieldTypes parses every field's type expression, in declaration
// order so the first bad expression reported is deterministic.
func parseFieldTypes(doc *Document, scope *compileScope) ([]typedModel, error) {
	models := make([]typedModel, 0, len(doc.Models))
	for _, decl := range doc.Models {
		tm := typedModel{
			decl:  decl,
			exprs: make([]*parser.TypeExpr, len(decl.Fields)),
		}
		for i, field := range decl.Fields {
			expr, err := parser.Parse(field.Type, scope)
			if err != nil {
				return nil, err
			}
			tm.exprs[i] = expr
		}
		models = append(models, tm)
	}
	return models, nil
}

// build runs the three construction passes over cycle-free models.
func (c *Compiler) build(models []typedModel) (*runtime.ModelSet, error) {
	set := runtime.NewModelSet()

	// Stub pass: every model gets its slot in the table so references
	// can be taken regardless of declaration order.
	for _, m := range models {
		if _, err := set.Declare(m.decl.Name); err != nil {
			return nil, fmt.Errorf("declaring model %s: %w", m.decl.Name, err)
		}
	}

	// Fill pass: resolve each field's expression against the table and
	// the registry, and attach the finished fields.
	for _, m := range models {
		fields := make([]runtime.Field, len(m.decl.Fields))
		for i, fieldDecl := range m.decl.Fields {
			resolved, err := c.resolveType(m.exprs[i], set)
			if err != nil {
				return nil, err
			}
			fields[i] = runtime.Field{
				Name:        fieldDecl.Name,
				Type:        resolved,
				Description: fieldDecl.Desc,
			}
		}

		model, _ := set.Get(m.decl.Name)
		if err := model.SetFields(fields); err != nil {
			return nil, fmt.Errorf("filling model %s: %w", m.decl.Name, err)
		}
	}

	// Binding pass: verify every reference lands on a filled model and
	// freeze the set.
	if err := set.Seal(); err != nil {
		return nil, fmt.Errorf("sealing model set: %w", err)
	}
	return set, nil
}

// resolveType lowers a parsed type expression into its runtime type.
// Model references become handles into the set being built.
func (c *Compiler) resolveType(expr *parser.TypeExpr, set *runtime.ModelSet) (runtime.Type, error) {
	switch expr.Kind {
	case parser.KindPrimitive:
		t, ok := c.registry.Get(expr.Name)
		if !ok {
			return nil, errors.NewUnknownTypeError(expr.Name, expr.String())
		}
		return t, nil

	case parser.KindModel:
		ref, ok := set.Ref(expr.Name)
		if !ok {
			return nil, errors.NewUnknownTypeError(expr.Name, expr.String())
		}
		return ref, nil

	case parser.KindList:
		elem, err := c.resolveType(expr.Elem, set)
		if err != nil {
			return nil, err
		}
		return runtime.NewList(elem), nil

	case parser.KindOptional:
		elem, err := c.resolveType(expr.Elem, set)
		if err != nil {
			return nil, err
		}
		return runtime.NewOptional(elem), nil

	case parser.KindMapping:
		key, err := c.resolveType(expr.Key, set)
		if err != nil {
			return nil, err
		}
		value, err := c.resolveType(expr.Value, set)
		if err != nil {
			return nil, err
		}
		return runtime.NewMap(key, value), nil

	case parser.KindUnion:
		alternatives := make([]runtime.Type, len(expr.Args))
		for i, arg := range expr.Args {
			alt, err := c.resolveType(arg, set)
			if err != nil {
				return nil, err
			}
			alternatives[i] = alt
		}
		return runtime.NewUnion(alternatives...), nil

	default:
		return nil, errors.NewMalformedTypeError(expr.String(), "unsupported type expression kind %s", expr.Kind)
	}
}

// CompileString compiles a YAML schema document in one call.
func CompileString(source string, opts ...Option) (*runtime.ModelSet, error) {
	return NewCompiler(opts...).CompileString(source)
}

// CompileFile compiles a schema file in one call.
func CompileFile(path string, opts ...Option) (*runtime.ModelSet, error) {
	return NewCompiler(opts...).CompileFile(path)
}
