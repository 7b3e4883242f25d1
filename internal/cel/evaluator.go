// Package cel evaluates CEL expressions over lawlens records. It backs the
// --where filters of the history and bookmarks commands.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles CEL predicates.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the string and list extensions loaded.
func NewEvaluator() (*Evaluator, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// newStandardCELEnv binds the record under evaluation to "_".
func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 4+len(opts))
	allOpts = append(allOpts,
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); out != nil && !out.IsExactType(types.BoolType) && !out.IsExactType(types.DynType) {
		return nil, fmt.Errorf("expression must return a bool, got %v", out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return prg, nil
}

// Filter is a compiled boolean predicate.
type Filter struct {
	expr string
	prg  cel.Program
}

// Compile parses a predicate. Expressions whose static type is not bool are
// rejected up front.
func (e *Evaluator) Compile(expr string) (*Filter, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, err
	}
	return &Filter{expr: expr, prg: prg}, nil
}

func (f *Filter) String() string { return f.expr }

// Match evaluates the predicate with record bound to "_".
func (f *Filter) Match(record map[string]interface{}) (bool, error) {
	result, _, err := f.prg.Eval(map[string]interface{}{"_": record})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := result.(types.Bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %v, not bool", f.expr, result.Type())
	}
	return bool(b), nil
}

// Select keeps the items whose record matches. A nil filter keeps everything.
func Select[T any](f *Filter, items []T, record func(int, T) map[string]interface{}) ([]T, error) {
	if f == nil {
		return items, nil
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(record(i, item))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}
