package parser

import (
	"fmt"
	"strings"
)

// Kind discriminates the variants of a TypeExpr.
type Kind int

const (
	KindPrimitive Kind = iota // a registered scalar type such as str or int
	KindModel                 // a reference to a declared model
	KindList                  // List[T]
	KindOptional              // Optional[T]
	KindUnion                 // Union[A, B, ...]
	KindMapping               // Dict[K, V] (also spelled Map or Mapping)
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindModel:
		return "model"
	case KindList:
		return "list"
	case KindOptional:
		return "optional"
	case KindUnion:
		return "union"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// TypeExpr is a parsed type expression. Exactly one variant is populated,
// selected by Kind:
//
//   - KindPrimitive, KindModel: Name
//   - KindList, KindOptional:   Elem
//   - KindMapping:              Key and Value
//   - KindUnion:                Args (two or more alternatives)
type TypeExpr struct {
	Kind  Kind
	Name  string
	Elem  *TypeExpr
	Key   *TypeExpr
	Value *TypeExpr
	Args  []*TypeExpr
}

// NewPrimitive creates a primitive type expression.
func NewPrimitive(name string) *TypeExpr {
	return &TypeExpr{Kind: KindPrimitive, Name: name}
}

// NewModelRef creates a model reference expression.
func NewModelRef(name string) *TypeExpr {
	return &TypeExpr{Kind: KindModel, Name: name}
}

// NewList creates a List[elem] expression.
func NewList(elem *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindList, Elem: elem}
}

// NewOptional creates an Optional[elem] expression.
func NewOptional(elem *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindOptional, Elem: elem}
}

// NewUnion creates a Union expression over the given alternatives.
func NewUnion(args ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindUnion, Args: args}
}

// NewMapping creates a Dict[key, value] expression.
func NewMapping(key, value *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindMapping, Key: key, Value: value}
}

// IsPrimitive returns true if this is a primitive type expression.
func (t *TypeExpr) IsPrimitive() bool { return t.Kind == KindPrimitive }

// IsModel returns true if this is a model reference.
func (t *TypeExpr) IsModel() bool { return t.Kind == KindModel }

// IsList returns true if this is a list expression.
func (t *TypeExpr) IsList() bool { return t.Kind == KindList }

// IsOptional returns true if this is an optional expression.
func (t *TypeExpr) IsOptional() bool { return t.Kind == KindOptional }

// IsUnion returns true if this is a union expression.
func (t *TypeExpr) IsUnion() bool { return t.Kind == KindUnion }

// IsMapping returns true if this is a mapping expression.
func (t *TypeExpr) IsMapping() bool { return t.Kind == KindMapping }

// String renders the expression in canonical form: mappings print as Dict
// regardless of the spelling used in the source.
func (t *TypeExpr) String() string {
	switch t.Kind {
	case KindPrimitive, KindModel:
		return t.Name
	case KindList:
		return fmt.Sprintf("List[%s]", t.Elem)
	case KindOptional:
		return fmt.Sprintf("Optional[%s]", t.Elem)
	case KindMapping:
		return fmt.Sprintf("Dict[%s, %s]", t.Key, t.Value)
	case KindUnion:
		parts := make([]string, len(t.Args))
		for i, arg := range t.Args {
			parts[i] = arg.String()
		}
		return fmt.Sprintf("Union[%s]", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("<%s>", t.Kind)
	}
}

// ModelRefs returns the names of all models referenced anywhere in the
// expression, deduplicated, in first-appearance order. This is the input
// to dependency graph construction: "Dict[str, List[Item]]" contributes
// Item, however deeply it is nested.
func (t *TypeExpr) ModelRefs() []string {
	seen := make(map[string]bool)
	var refs []string
	t.walk(func(node *TypeExpr) {
		if node.Kind == KindModel && !seen[node.Name] {
			seen[node.Name] = true
			refs = append(refs, node.Name)
		}
	})
	return refs
}

func (t *TypeExpr) walk(visit func(*TypeExpr)) {
	if t == nil {
		return
	}
	visit(t)
	t.Elem.walk(visit)
	t.Key.walk(visit)
	t.Value.walk(visit)
	for _, arg := range t.Args {
		arg.walk(visit)
	}
}
