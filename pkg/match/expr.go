package match

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type exprMatcher struct {
	src  string
	prog *vm.Program
}

// Expr compiles src as an expr-lang boolean expression and returns a matcher
// that evaluates it with the candidate bound to "value". Example:
//
//	m, err := match.Expr(`value startsWith "/api/" && value contains "v2"`)
func Expr(src string) (Matcher, error) {
	prog, err := expr.Compile(src, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", src, err)
	}
	return exprMatcher{src: src, prog: prog}, nil
}

// MustExpr is like Expr but panics on a compile error.
func MustExpr(src string) Matcher {
	m, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return m
}

// exprEnv is the evaluation environment for Expr matchers.
type exprEnv struct {
	Value string `expr:"value"`
}

func (m exprMatcher) MatchString(s string) bool {
	out, err := expr.Run(m.prog, exprEnv{Value: s})
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func (m exprMatcher) MatchBytes(b []byte) bool { return m.MatchString(string(b)) }

// Equal compares by expression source.
func (m exprMatcher) Equal(other Matcher) bool {
	o, ok := other.(exprMatcher)
	return ok && o.src == m.src
}

func (m exprMatcher) String() string { return fmt.Sprintf("expr(%s)", m.src) }
