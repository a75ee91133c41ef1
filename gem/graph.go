package gem

import (
	"github.com/caesar0301/wizagent/compiler/errors"
	"github.com/caesar0301/wizagent/compiler/parser"
)

// typedModel pairs a model declaration with the parsed type expression of
// each of its fields, index-aligned with decl.Fields.
type typedModel struct {
	decl  ModelDecl
	exprs []*parser.TypeExpr
}

// dependencyGraph records, for each model, the models its fields
// reference. Nodes keep declaration order so traversal and error
// reporting are deterministic.
type dependencyGraph struct {
	order []string
	edges map[string][]string
}

// buildDependencyGraph collects model references from the parsed type
// expressions. References inside generic arguments count the same as
// direct ones: Dict[str, List[Item]] depends on Item.
func buildDependencyGraph(models []typedModel) *dependencyGraph {
	g := &dependencyGraph{
		order: make([]string, 0, len(models)),
		edges: make(map[string][]string, len(models)),
	}

	for _, m := range models {
		g.order = append(g.order, m.decl.Name)

		seen := make(map[string]bool)
		deps := []string{}
		for _, expr := range m.exprs {
			for _, ref := range expr.ModelRefs() {
				if !seen[ref] {
					seen[ref] = true
					deps = append(deps, ref)
				}
			}
		}
		g.edges[m.decl.Name] = deps
	}

	return g
}

// dependencies returns the models a model references, in first-use order.
func (g *dependencyGraph) dependencies(model string) []string {
	return g.edges[model]
}

// checkCycles searches the graph depth-first and reports the first cycle
// found. The returned error names the model at which the cycle closes,
// so a self-reference reports the model itself and A -> B -> C -> B
// reports B. Mutual references are a cycle; only acyclic graphs pass.
func (g *dependencyGraph) checkCycles() error {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var visit func(node string) error
	visit = func(node string) error {
		visited[node] = true
		recStack[node] = true

		for _, next := range g.edges[node] {
			if recStack[next] {
				return &errors.CircularReferenceError{Model: next}
			}
			if !visited[next] {
				if err := visit(next); err != nil {
					return err
				}
			}
		}

		recStack[node] = false
		return nil
	}

	for _, node := range g.order {
		if !visited[node] {
			if err := visit(node); err != nil {
				return err
			}
		}
	}
	return nil
}
