// Package condition implements the predicates that decide whether a target is
// part of a realized build graph. Predicates use Starlark's expression syntax
// but they are plain data: only flag names, "and", "or", "not", parentheses
// and the constants True and False are allowed. Evaluation walks the parsed
// expression and never executes Starlark code.
package condition

import (
	"github.com/rotisserie/eris"
	"go.starlark.net/syntax"
)

// Predicate is a parsed condition. Use Parse to construct one.
type Predicate struct {
	src  string
	expr syntax.Expr
}

// Parse checks that src only uses the supported subset of Starlark expressions
// and returns the parsed predicate.
func Parse(src string) (*Predicate, error) {
	expr, err := syntax.ParseExpr("<condition>", src, 0)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse condition %q", src)
	}

	err = validate(expr)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid condition %q", src)
	}

	return &Predicate{src: src, expr: expr}, nil
}

func validate(expr syntax.Expr) error {
	switch expr := expr.(type) {
	case *syntax.Ident:
		return nil
	case *syntax.ParenExpr:
		return validate(expr.X)
	case *syntax.UnaryExpr:
		if expr.Op != syntax.NOT {
			return eris.Errorf("unsupported operator %q", expr.Op)
		}
		return validate(expr.X)
	case *syntax.BinaryExpr:
		if expr.Op != syntax.AND && expr.Op != syntax.OR {
			return eris.Errorf("unsupported operator %q", expr.Op)
		}

		err := validate(expr.X)
		if err != nil {
			return err
		}
		return validate(expr.Y)
	default:
		start, _ := expr.Span()
		return eris.Errorf("unsupported expression at %s", start)
	}
}

// Eval evaluates the predicate against the passed flags. Every referenced flag
// has to be present, even in branches that can't change the result. This keeps
// failures independent of the current flag values.
func (p *Predicate) Eval(flags map[string]bool) (bool, error) {
	return eval(p.expr, flags)
}

func eval(expr syntax.Expr, flags map[string]bool) (bool, error) {
	switch expr := expr.(type) {
	case *syntax.Ident:
		switch expr.Name {
		case "True":
			return true, nil
		case "False":
			return false, nil
		}

		value, present := flags[expr.Name]
		if !present {
			return false, UnknownFlagError{Flag: expr.Name}
		}
		return value, nil
	case *syntax.ParenExpr:
		return eval(expr.X, flags)
	case *syntax.UnaryExpr:
		value, err := eval(expr.X, flags)
		if err != nil {
			return false, err
		}
		return !value, nil
	case *syntax.BinaryExpr:
		left, err := eval(expr.X, flags)
		if err != nil {
			return false, err
		}

		right, err := eval(expr.Y, flags)
		if err != nil {
			return false, err
		}

		if expr.Op == syntax.AND {
			return left && right, nil
		}
		return left || right, nil
	}

	// Parse() rejects every other node type.
	start, _ := expr.Span()
	return false, eris.Errorf("unsupported expression at %s", start)
}

// Flags returns the names of all flags the predicate references in order of
// first use.
func (p *Predicate) Flags() []string {
	var result []string
	collectFlags(p.expr, map[string]bool{}, &result)
	return result
}

func collectFlags(expr syntax.Expr, seen map[string]bool, result *[]string) {
	switch expr := expr.(type) {
	case *syntax.Ident:
		if expr.Name == "True" || expr.Name == "False" {
			return
		}

		if !seen[expr.Name] {
			seen[expr.Name] = true
			*result = append(*result, expr.Name)
		}
	case *syntax.ParenExpr:
		collectFlags(expr.X, seen, result)
	case *syntax.UnaryExpr:
		collectFlags(expr.X, seen, result)
	case *syntax.BinaryExpr:
		collectFlags(expr.X, seen, result)
		collectFlags(expr.Y, seen, result)
	}
}

func (p *Predicate) String() string {
	return p.src
}

// Evaluate parses src and evaluates it against flags in a single step.
func Evaluate(src string, flags map[string]bool) (bool, error) {
	pred, err := Parse(src)
	if err != nil {
		return false, err
	}

	return pred.Eval(flags)
}
