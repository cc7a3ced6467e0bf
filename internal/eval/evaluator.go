package eval

import (
	"fmt"

	"github.com/sagproto/sag/internal/ast"
	"github.com/sagproto/sag/internal/grammar"
)

// EvalError is the typed failure returned by Evaluate (§7:
// INVALID_EXPRESSION, DIVISION_BY_ZERO).
type EvalError struct {
	Code    ast.ErrorCode
	Message string
}

func (e EvalError) Error() string {
	return fmt.Sprintf("eval error (%s): %s", e.Code, e.Message)
}

// Evaluate parses expr with the same grammar the message parser uses and
// walks the result against ctx.
func Evaluate(expr string, ctx Context) (ast.Value, error) {
	tree, err := grammar.ParseExpr(expr)
	if err != nil {
		return ast.Value{}, EvalError{Code: ast.ErrInvalidExpression, Message: err.Error()}
	}
	return evalOr(tree, ctx)
}

func evalOr(e *grammar.OrExprAST, ctx Context) (ast.Value, error) {
	v, err := evalAnd(e.Left, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	for _, r := range e.Rest {
		if v.Truthy() {
			// Short-circuit: still must be syntactically valid, but the
			// right operand is not evaluated once true.
			continue
		}
		rv, err := evalAnd(r, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		v = ast.Bool(rv.Truthy())
	}
	if len(e.Rest) > 0 {
		return ast.Bool(v.Truthy()), nil
	}
	return v, nil
}

func evalAnd(e *grammar.AndExprAST, ctx Context) (ast.Value, error) {
	v, err := evalRel(e.Left, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	for _, r := range e.Rest {
		if !v.Truthy() {
			continue
		}
		rv, err := evalRel(r, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		v = ast.Bool(rv.Truthy())
	}
	if len(e.Rest) > 0 {
		return ast.Bool(v.Truthy()), nil
	}
	return v, nil
}

func evalRel(e *grammar.RelExprAST, ctx Context) (ast.Value, error) {
	left, err := evalAdd(e.Left, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	if e.Tail == nil {
		return left, nil
	}
	right, err := evalAdd(e.Tail.Right, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	return applyRel(e.Tail.Op, left, right)
}

func applyRel(op string, a, b ast.Value) (ast.Value, error) {
	switch op {
	case "==":
		return ast.Bool(equalityOf(a, b)), nil
	case "!=":
		return ast.Bool(!equalityOf(a, b)), nil
	default:
		if !a.IsNumeric() || !b.IsNumeric() {
			return ast.Value{}, EvalError{
				Code:    ast.ErrInvalidExpression,
				Message: fmt.Sprintf("ordering operator %q requires numeric operands", op),
			}
		}
		af, bf := a.AsFloat(), b.AsFloat()
		switch op {
		case ">":
			return ast.Bool(af > bf), nil
		case "<":
			return ast.Bool(af < bf), nil
		case ">=":
			return ast.Bool(af >= bf), nil
		case "<=":
			return ast.Bool(af <= bf), nil
		}
		return ast.Value{}, EvalError{Code: ast.ErrInvalidExpression, Message: "unknown relational operator " + op}
	}
}

// equalityOf implements §4.3's equality rule: both-null, null/non-null,
// numeric (compared as doubles), and otherwise tagged-variant equality.
func equalityOf(a, b ast.Value) bool {
	if a.Kind == ast.NullVal || b.Kind == ast.NullVal {
		return a.Kind == ast.NullVal && b.Kind == ast.NullVal
	}
	return ast.Equal(a, b)
}

func evalAdd(e *grammar.AddExprAST, ctx Context) (ast.Value, error) {
	v, err := evalMul(e.Left, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	if len(e.Ops) == 0 {
		return v, nil
	}
	acc := v.AsFloat()
	for _, op := range e.Ops {
		rv, err := evalMul(op.Right, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		acc2 := rv.AsFloat()
		if op.Op == "+" {
			acc += acc2
		} else {
			acc -= acc2
		}
	}
	return ast.Float(acc), nil
}

func evalMul(e *grammar.MulExprAST, ctx Context) (ast.Value, error) {
	v, err := evalPrimary(e.Left, ctx)
	if err != nil {
		return ast.Value{}, err
	}
	if len(e.Ops) == 0 {
		return v, nil
	}
	acc := v.AsFloat()
	for _, op := range e.Ops {
		rv, err := evalPrimary(op.Right, ctx)
		if err != nil {
			return ast.Value{}, err
		}
		rf := rv.AsFloat()
		switch op.Op {
		case "*":
			acc *= rf
		case "/":
			if rf == 0 {
				return ast.Value{}, EvalError{Code: ast.ErrDivisionByZero, Message: "division by zero"}
			}
			acc /= rf
		}
	}
	return ast.Float(acc), nil
}

func evalPrimary(e *grammar.PrimaryAST, ctx Context) (ast.Value, error) {
	if e.Paren != nil {
		return evalOr(e.Paren, ctx)
	}
	return evalValue(e.Value, ctx)
}

func evalValue(v *grammar.ValueAST, ctx Context) (ast.Value, error) {
	switch {
	case v.Path != nil:
		path := grammar.PathString(v.Path)
		if val, ok := ctx.Get(path); ok {
			return val, nil
		}
		return ast.Null(), nil
	case v.List != nil:
		items := make([]ast.Value, len(v.List.Items))
		for i, it := range v.List.Items {
			val, err := evalValue(it, ctx)
			if err != nil {
				return ast.Value{}, err
			}
			items[i] = val
		}
		return ast.List(items), nil
	case v.Obj != nil:
		m := ast.NewObjectMap()
		for _, p := range v.Obj.Pairs {
			val, err := evalValue(p.Value, ctx)
			if err != nil {
				return ast.Value{}, err
			}
			m.Set(p.Key, val)
		}
		return ast.Object(m), nil
	default:
		return grammar.ToValue(v), nil
	}
}
