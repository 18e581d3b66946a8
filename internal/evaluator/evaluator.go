package evaluator

import (
	"fmt"
	"math"

	"stylic/internal/ast"
	"stylic/internal/symbols"
)

// Env carries the binding table and the set of bindings currently being
// folded, which breaks initializer cycles.
type Env struct {
	Table     *symbols.Table
	unfolding map[symbols.SymbolID]bool
}

func NewEnv(table *symbols.Table) *Env {
	return &Env{
		Table:     table,
		unfolding: make(map[symbols.SymbolID]bool),
	}
}

// Evaluate folds expr to a constant. Exactly one of the results is
// non-nil.
func Evaluate(expr *ast.Expr, env *Env) (Value, *RequiresRuntime) {
	switch data := expr.Data.(type) {
	case *ast.EString:
		return StringValue(data.Value), nil
	case *ast.ENumber:
		return NumberValue(data.Value), nil
	case *ast.EBool:
		return BoolValue(data.Value), nil
	case *ast.ENull:
		return NullValue{}, nil
	case *ast.EUndefined:
		return UndefinedValue{}, nil
	case *ast.EArrow, *ast.EFunction:
		return &FunctionValue{Span: expr.Span}, nil
	case *ast.EIdent:
		return evalIdent(expr, data, env)
	case *ast.ETemplate:
		return evalTemplate(expr, data, env)
	case *ast.EObject:
		return evalObject(expr, data, env)
	case *ast.EArray:
		return evalArray(data, env)
	case *ast.EDot:
		return evalDot(expr, data, env)
	case *ast.EIndex:
		return evalIndex(expr, data, env)
	case *ast.EUnary:
		return evalUnary(expr, data, env)
	case *ast.EBinary:
		return evalBinary(expr, data, env)
	case *ast.ECond:
		test, rr := Evaluate(&data.Test, env)
		if rr != nil {
			return nil, rr
		}
		if Truthy(test) {
			return Evaluate(&data.Yes, env)
		}
		return Evaluate(&data.No, env)
	case *ast.ECall:
		return nil, NewRequiresRuntime("function calls are evaluated at runtime", expr.Span)
	case *ast.ENew:
		return nil, NewRequiresRuntime("constructor calls are evaluated at runtime", expr.Span)
	default:
		return nil, NewRequiresRuntime("expression is not a compile-time constant", expr.Span)
	}
}

func evalIdent(expr *ast.Expr, ident *ast.EIdent, env *Env) (Value, *RequiresRuntime) {
	id, ok := env.Table.ResolveIdent(ident)
	if !ok {
		return nil, NewRequiresRuntime(
			fmt.Sprintf("'%s' does not resolve to a binding in this file", ident.Name), expr.Span)
	}
	if !env.Table.IsConst(id) {
		sym := env.Table.Get(id)
		return nil, NewRequiresRuntime(
			fmt.Sprintf("'%s' is a %s binding, not a foldable const", ident.Name, sym.Kind), expr.Span)
	}
	init, ok := env.Table.DeclInit(id)
	if !ok {
		return nil, NewRequiresRuntime(
			fmt.Sprintf("'%s' has no initializer", ident.Name), expr.Span)
	}
	if env.unfolding[id] {
		// цикл инициализации — дальше не разворачиваем
		return nil, NewRequiresRuntime(
			fmt.Sprintf("'%s' is part of an initializer cycle", ident.Name), expr.Span)
	}
	env.unfolding[id] = true
	defer delete(env.unfolding, id)
	return Evaluate(init, env)
}

func evalTemplate(expr *ast.Expr, tmpl *ast.ETemplate, env *Env) (Value, *RequiresRuntime) {
	out := ""
	for i := range tmpl.Parts {
		part := &tmpl.Parts[i]
		if part.Expr == nil {
			out += part.Text
			continue
		}
		v, rr := Evaluate(part.Expr, env)
		if rr != nil {
			return nil, rr
		}
		s, ok := ToString(v)
		if !ok {
			return nil, NewRequiresRuntime("template substitution is not a primitive", part.Expr.Span)
		}
		out += s
	}
	_ = expr
	return StringValue(out), nil
}

func evalObject(expr *ast.Expr, obj *ast.EObject, env *Env) (Value, *RequiresRuntime) {
	out := NewObject()
	for i := range obj.Properties {
		p := &obj.Properties[i]
		if p.Computed != nil {
			return nil, NewRequiresRuntime("computed property keys are evaluated at runtime", p.Computed.Span)
		}
		if p.Spread {
			v, rr := Evaluate(&p.Value, env)
			if rr != nil {
				return nil, rr
			}
			spread, ok := v.(*ObjectValue)
			if !ok {
				return nil, NewRequiresRuntime("spread source is not a constant object", p.Value.Span)
			}
			for _, key := range spread.Keys {
				out.Set(key, spread.Values[key])
			}
			continue
		}
		v, rr := Evaluate(&p.Value, env)
		if rr != nil {
			return nil, rr
		}
		out.Set(p.Key, v)
	}
	_ = expr
	return out, nil
}

func evalArray(arr *ast.EArray, env *Env) (Value, *RequiresRuntime) {
	out := &ArrayValue{}
	for i := range arr.Items {
		if spread, ok := arr.Items[i].Data.(*ast.ESpread); ok {
			v, rr := Evaluate(&spread.Value, env)
			if rr != nil {
				return nil, rr
			}
			inner, ok := v.(*ArrayValue)
			if !ok {
				return nil, NewRequiresRuntime("spread source is not a constant array", spread.Value.Span)
			}
			out.Items = append(out.Items, inner.Items...)
			continue
		}
		v, rr := Evaluate(&arr.Items[i], env)
		if rr != nil {
			return nil, rr
		}
		out.Items = append(out.Items, v)
	}
	return out, nil
}

func evalDot(expr *ast.Expr, dot *ast.EDot, env *Env) (Value, *RequiresRuntime) {
	target, rr := Evaluate(&dot.Target, env)
	if rr != nil {
		return nil, rr
	}
	obj, ok := target.(*ObjectValue)
	if !ok {
		return nil, NewRequiresRuntime("member access on a non-object constant", expr.Span)
	}
	v, ok := obj.Get(dot.Name)
	if !ok {
		return UndefinedValue{}, nil
	}
	return v, nil
}

func evalIndex(expr *ast.Expr, index *ast.EIndex, env *Env) (Value, *RequiresRuntime) {
	target, rr := Evaluate(&index.Target, env)
	if rr != nil {
		return nil, rr
	}
	key, rr := Evaluate(&index.Index, env)
	if rr != nil {
		return nil, rr
	}
	switch t := target.(type) {
	case *ObjectValue:
		s, ok := ToString(key)
		if !ok {
			return nil, NewRequiresRuntime("index key is not a primitive", index.Index.Span)
		}
		if v, found := t.Get(s); found {
			return v, nil
		}
		return UndefinedValue{}, nil
	case *ArrayValue:
		n, ok := key.(NumberValue)
		if !ok {
			return nil, NewRequiresRuntime("array index is not a number", index.Index.Span)
		}
		i := int(n)
		if i < 0 || i >= len(t.Items) {
			return UndefinedValue{}, nil
		}
		return t.Items[i], nil
	}
	return nil, NewRequiresRuntime("index access on a non-container constant", expr.Span)
}

func evalUnary(expr *ast.Expr, unary *ast.EUnary, env *Env) (Value, *RequiresRuntime) {
	v, rr := Evaluate(&unary.Value, env)
	if rr != nil {
		return nil, rr
	}
	switch unary.Op {
	case ast.UnaryNot:
		return BoolValue(!Truthy(v)), nil
	case ast.UnaryNeg:
		if n, ok := v.(NumberValue); ok {
			return NumberValue(-n), nil
		}
	case ast.UnaryPos:
		if n, ok := v.(NumberValue); ok {
			return n, nil
		}
	case ast.UnaryTypeof:
		return StringValue(typeofString(v)), nil
	}
	return nil, NewRequiresRuntime("unary operand is not a constant of the right type", expr.Span)
}

func typeofString(v Value) string {
	switch v.(type) {
	case StringValue:
		return "string"
	case NumberValue:
		return "number"
	case BoolValue:
		return "boolean"
	case UndefinedValue:
		return "undefined"
	case *FunctionValue:
		return "function"
	default:
		return "object"
	}
}

func evalBinary(expr *ast.Expr, bin *ast.EBinary, env *Env) (Value, *RequiresRuntime) {
	if bin.Op == ast.BinAssign {
		return nil, NewRequiresRuntime("assignment is evaluated at runtime", expr.Span)
	}

	left, rr := Evaluate(&bin.Left, env)
	if rr != nil {
		return nil, rr
	}

	// Short-circuit forms decide on the left value alone when they can.
	switch bin.Op {
	case ast.BinAnd:
		if !Truthy(left) {
			return left, nil
		}
		return Evaluate(&bin.Right, env)
	case ast.BinOr:
		if Truthy(left) {
			return left, nil
		}
		return Evaluate(&bin.Right, env)
	case ast.BinNullish:
		switch left.(type) {
		case NullValue, UndefinedValue:
			return Evaluate(&bin.Right, env)
		}
		return left, nil
	}

	right, rr := Evaluate(&bin.Right, env)
	if rr != nil {
		return nil, rr
	}

	if bin.Op == ast.BinAdd {
		if ls, lok := left.(StringValue); lok {
			rs, ok := ToString(right)
			if !ok {
				return nil, NewRequiresRuntime("cannot concatenate a non-primitive", bin.Right.Span)
			}
			return StringValue(string(ls) + rs), nil
		}
		if rs, rok := right.(StringValue); rok {
			ls, ok := ToString(left)
			if !ok {
				return nil, NewRequiresRuntime("cannot concatenate a non-primitive", bin.Left.Span)
			}
			return StringValue(ls + string(rs)), nil
		}
	}

	ln, lok := left.(NumberValue)
	rn, rok := right.(NumberValue)
	if lok && rok {
		switch bin.Op {
		case ast.BinAdd:
			return ln + rn, nil
		case ast.BinSub:
			return ln - rn, nil
		case ast.BinMul:
			return ln * rn, nil
		case ast.BinDiv:
			return ln / rn, nil
		case ast.BinMod:
			return NumberValue(math.Mod(float64(ln), float64(rn))), nil
		case ast.BinLt:
			return BoolValue(ln < rn), nil
		case ast.BinGt:
			return BoolValue(ln > rn), nil
		case ast.BinLtEq:
			return BoolValue(ln <= rn), nil
		case ast.BinGtEq:
			return BoolValue(ln >= rn), nil
		}
	}

	switch bin.Op {
	case ast.BinEq, ast.BinStrictEq:
		return BoolValue(primitiveEqual(left, right)), nil
	case ast.BinNotEq, ast.BinStrictNotEq:
		return BoolValue(!primitiveEqual(left, right)), nil
	}

	return nil, NewRequiresRuntime("binary operands are not foldable constants", expr.Span)
}

// primitiveEqual compares primitives by value; containers and functions
// compare by nothing and are never equal here.
func primitiveEqual(a, b Value) bool {
	as, aok := ToString(a)
	bs, bok := ToString(b)
	if !aok || !bok {
		return false
	}
	return as == bs && typeofString(a) == typeofString(b)
}
