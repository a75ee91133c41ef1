package runtime

import (
	"fmt"
	"strings"
)

// Field describes one field of a model: its name, resolved type, and the
// human-readable description carried from the schema document.
type Field struct {
	Name        string
	Type        Type
	Description string
}

// ModelSet is the table of models produced by one compilation. It is
// built in three passes: every model is declared first, then each model's
// fields are filled in, and finally the set is sealed. Model references
// created between the first two passes stay valid because they hold an
// index into this table rather than a pointer to a finished model.
type ModelSet struct {
	models []*Model
	index  map[string]int
	sealed bool
}

// NewModelSet creates an empty, unsealed model set.
func NewModelSet() *ModelSet {
	return &ModelSet{
		index: make(map[string]int),
	}
}

// Declare adds a named model stub to the set and returns it. Fields are
// attached later with SetFields.
func (s *ModelSet) Declare(name string) (*Model, error) {
	if s.sealed {
		return nil, fmt.Errorf("cannot declare %s: model set is sealed", name)
	}
	if name == "" {
		return nil, fmt.Errorf("model name must not be empty")
	}
	if _, exists := s.index[name]; exists {
		return nil, fmt.Errorf("model %s is already declared", name)
	}

	m := &Model{name: name, set: s}
	s.index[name] = len(s.models)
	s.models = append(s.models, m)
	return m, nil
}

// Ref returns a Type referring to the named model. The reference may be
// taken as soon as the model is declared, before its fields exist, which
// is what makes forward and mutual references work.
func (s *ModelSet) Ref(name string) (Type, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return &modelRef{set: s, index: i}, true
}

// Get retrieves a model by name.
func (s *ModelSet) Get(name string) (*Model, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.models[i], true
}

// Names returns the model names in declaration order.
func (s *ModelSet) Names() []string {
	names := make([]string, len(s.models))
	for i, m := range s.models {
		names[i] = m.name
	}
	return names
}

// Len returns the number of models in the set.
func (s *ModelSet) Len() int {
	return len(s.models)
}

// Sealed reports whether the set has been sealed.
func (s *ModelSet) Sealed() bool {
	return s.sealed
}

// Seal verifies that every declared model has been filled and that every
// model reference reachable from a field resolves inside this set, then
// freezes the set. Sealing twice is a no-op. After Seal the set is
// immutable and safe for concurrent use.
func (s *ModelSet) Seal() error {
	if s.sealed {
		return nil
	}

	for _, m := range s.models {
		if !m.filled {
			return fmt.Errorf("model %s was declared but never filled", m.name)
		}
	}
	for _, m := range s.models {
		for _, f := range m.fields {
			if err := s.checkResolved(f.Type); err != nil {
				return fmt.Errorf("model %s, field %s: %w", m.name, f.Name, err)
			}
		}
	}

	s.sealed = true
	return nil
}

// checkResolved walks a type tree and verifies every model reference in
// it points at a filled model of this set.
func (s *ModelSet) checkResolved(t Type) error {
	switch v := t.(type) {
	case *modelRef:
		if v.set != s {
			return fmt.Errorf("model reference crosses model sets")
		}
		if v.index < 0 || v.index >= len(s.models) {
			return fmt.Errorf("model reference index %d is out of range", v.index)
		}
		if !s.models[v.index].filled {
			return fmt.Errorf("reference to unfilled model %s", s.models[v.index].name)
		}
		return nil
	case *ListType:
		return s.checkResolved(v.Elem)
	case *OptionalType:
		return s.checkResolved(v.Elem)
	case *MapType:
		if err := s.checkResolved(v.Key); err != nil {
			return err
		}
		return s.checkResolved(v.Value)
	case *UnionType:
		for _, alt := range v.Alternatives {
			if err := s.checkResolved(alt); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return fmt.Errorf("field type is missing")
	default:
		return nil
	}
}

// Model is a compiled model definition. Instances are created with New
// and checked with Validate; both require the owning set to be sealed.
type Model struct {
	name       string
	set        *ModelSet
	fields     []Field
	fieldIndex map[string]int
	filled     bool
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// String renders the model signature, e.g. "Metric(metric_key: str)".
func (m *Model) String() string {
	parts := make([]string, len(m.fields))
	for i, f := range m.fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return fmt.Sprintf("%s(%s)", m.name, strings.Join(parts, ", "))
}

// Fields returns a copy of the model's fields in declaration order.
func (m *Model) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Field retrieves a field by name.
func (m *Model) Field(name string) (Field, bool) {
	i, ok := m.fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return m.fields[i], true
}

// SetFields attaches the model's fields. It may be called once per model,
// before the set is sealed. An empty slice is valid: models may declare
// no fields.
func (m *Model) SetFields(fields []Field) error {
	if m.set.sealed {
		return fmt.Errorf("cannot fill %s: model set is sealed", m.name)
	}
	if m.filled {
		return fmt.Errorf("model %s is already filled", m.name)
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("model %s: field name must not be empty", m.name)
		}
		if f.Type == nil {
			return fmt.Errorf("model %s: field %s has no type", m.name, f.Name)
		}
		if _, dup := index[f.Name]; dup {
			return fmt.Errorf("model %s: duplicate field %s", m.name, f.Name)
		}
		index[f.Name] = i
	}

	m.fields = make([]Field, len(fields))
	copy(m.fields, fields)
	m.fieldIndex = index
	m.filled = true
	return nil
}

// New validates values against the model's fields and creates an
// instance. Optional fields may be omitted and default to nil; all other
// fields are required. Keys that match no field are ignored. On failure
// the returned error is a *ValidationErrors naming every bad field.
func (m *Model) New(values map[string]interface{}) (*Instance, error) {
	if !m.set.sealed {
		return nil, fmt.Errorf("cannot instantiate %s: model set is not sealed", m.name)
	}

	verrs := NewValidationErrors(m.name)
	out := make(map[string]interface{}, len(m.fields))

	for _, f := range m.fields {
		raw, present := values[f.Name]
		if !present {
			if _, optional := f.Type.(*OptionalType); optional {
				out[f.Name] = nil
				continue
			}
			verrs.Add(f.Name, "field is required")
			continue
		}

		normalized, err := f.Type.Validate(raw)
		if err != nil {
			verrs.Add(f.Name, err.Error())
			continue
		}
		out[f.Name] = normalized
	}

	if verrs.HasErrors() {
		return nil, verrs
	}
	return &Instance{model: m, values: out}, nil
}

// Validate checks values against the model without keeping the instance.
func (m *Model) Validate(values map[string]interface{}) error {
	_, err := m.New(values)
	return err
}

// coerce converts a raw value into an instance of this model. Existing
// instances pass through after a model check; mappings are instantiated.
func (m *Model) coerce(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case *Instance:
		if v.model != m {
			return nil, fmt.Errorf("expected %s instance, got %s", m.name, v.model.name)
		}
		return v, nil
	case map[string]interface{}:
		return m.New(v)
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, val := range v {
			s, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("expected %s value, mapping has non-string key %v", m.name, key)
			}
			converted[s] = val
		}
		return m.New(converted)
	default:
		return nil, typeError(m.name, value)
	}
}

// modelRef is a resolved handle to a model: the owning set plus the
// model's index in its table. The target is looked up on use, so a
// reference taken during the declaration pass works once the target is
// filled.
type modelRef struct {
	set   *ModelSet
	index int
}

func (r *modelRef) target() *Model {
	return r.set.models[r.index]
}

func (r *modelRef) String() string {
	return r.target().name
}

func (r *modelRef) Validate(value interface{}) (interface{}, error) {
	return r.target().coerce(value)
}

// Instance is a validated instance of a model. Values are the normalized
// forms produced by field validation.
type Instance struct {
	model  *Model
	values map[string]interface{}
}

// Model returns the model this instance belongs to.
func (i *Instance) Model() *Model { return i.model }

// Get retrieves a field value by name. The second return is false if the
// model has no such field.
func (i *Instance) Get(name string) (interface{}, bool) {
	if _, ok := i.model.fieldIndex[name]; !ok {
		return nil, false
	}
	return i.values[name], true
}

// Values returns a shallow copy of all field values.
func (i *Instance) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(i.values))
	for k, v := range i.values {
		out[k] = v
	}
	return out
}

// String renders the instance with its field values in declaration order.
func (i *Instance) String() string {
	parts := make([]string, len(i.model.fields))
	for idx, f := range i.model.fields {
		parts[idx] = fmt.Sprintf("%s=%v", f.Name, i.values[f.Name])
	}
	return fmt.Sprintf("%s(%s)", i.model.name, strings.Join(parts, ", "))
}
