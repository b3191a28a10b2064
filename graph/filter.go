package graph

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/zero-day-ai/threatgraph/threat"
)

// attackFilter is a compiled CEL predicate over attack fields. The
// expression is compiled once per query and evaluated per candidate attack.
type attackFilter struct {
	program cel.Program
}

// compileAttackFilter compiles a CEL expression with the attack variables
// declared in OutstandingOptions.Filter.
func compileAttackFilter(expr string) (*attackFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("pattern", cel.StringType),
		cel.Variable("contexts", cel.ListType(cel.StringType)),
		cel.Variable("targets", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create filter environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expr, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("plan filter %q: %w", expr, err)
	}

	return &attackFilter{program: program}, nil
}

// match evaluates the filter against a single attack.
func (f *attackFilter) match(a *threat.Attack) (bool, error) {
	out, _, err := f.program.Eval(map[string]any{
		"id":       a.ID,
		"name":     a.Name,
		"pattern":  a.VariantOf,
		"contexts": a.OccursIn,
		"targets":  a.Targets,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter against attack %q: %w", a.ID, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter must evaluate to a boolean, got %T", out.Value())
	}
	return matched, nil
}
