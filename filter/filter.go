// Package filter compiles boolean expressions used to narrow down
// listings, sales and catalog items on the client side. Expressions use
// the expr language and are evaluated against a flat map environment,
// e.g. `price < 1000 && contains(lower(name), "helm")`.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled, reusable boolean expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// CompilationError describes why an expression failed to compile.
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

// Error implements the error interface.
func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid filter %q: %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid filter %q: %s", e.Expression, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *CompilationError) Unwrap() error { return e.Err }

// Compile validates and compiles an expression. The expression must
// evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string { return f.expression }

// Match evaluates the filter against one item's environment.
func (f *Filter) Match(env map[string]any) (bool, error) {
	merged := helperFunctions()
	for k, v := range env {
		merged[k] = v
	}

	result, err := expr.Run(f.program, merged)
	if err != nil {
		return false, fmt.Errorf("filter %q failed: %w", f.expression, err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not return a boolean", f.expression)
	}

	return matched, nil
}

// helperFunctions builds the functions available inside expressions.
func helperFunctions() map[string]any {
	return map[string]any{
		"now": func() time.Time {
			return time.Now()
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"lower": strings.ToLower,
		"contains": func(s, substr string) bool {
			return strings.Contains(s, substr)
		},
	}
}
