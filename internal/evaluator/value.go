// Package evaluator folds expressions to compile-time constants.
//
// Evaluation either produces a Value or a *RequiresRuntime verdict naming
// the node that blocked folding. Functions fold to opaque FunctionValue
// leaves rather than verdicts: whether a function leaf is acceptable is
// the caller's decision, not the evaluator's.
package evaluator

import (
	"strconv"

	"stylic/internal/diag"
	"stylic/internal/source"
)

// Value is a folded constant.
type Value interface{ isValue() }

func (StringValue) isValue()    {}
func (NumberValue) isValue()    {}
func (BoolValue) isValue()      {}
func (NullValue) isValue()      {}
func (UndefinedValue) isValue() {}
func (*ArrayValue) isValue()    {}
func (*ObjectValue) isValue()   {}
func (*FunctionValue) isValue() {}

type StringValue string

type NumberValue float64

type BoolValue bool

type NullValue struct{}

type UndefinedValue struct{}

type ArrayValue struct {
	Items []Value
}

// ObjectValue preserves property order; style output depends on it.
type ObjectValue struct {
	Keys   []string
	Values map[string]Value
}

func NewObject() *ObjectValue {
	return &ObjectValue{Values: make(map[string]Value)}
}

// Set adds or replaces a property, keeping first-insertion order.
func (o *ObjectValue) Set(key string, v Value) {
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = v
}

func (o *ObjectValue) Get(key string) (Value, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// FunctionValue is an opaque function leaf carrying the source location
// of the function node.
type FunctionValue struct {
	Span source.Span
}

// RequiresRuntime marks an expression that cannot be folded.
type RequiresRuntime struct {
	Reason string
	Origin source.Span
}

// NewRequiresRuntime builds a verdict for a node.
func NewRequiresRuntime(reason string, origin source.Span) *RequiresRuntime {
	return &RequiresRuntime{Reason: reason, Origin: origin}
}

// Diagnostic renders the verdict as an info diagnostic; callers escalate
// severity as directives demand.
func (r *RequiresRuntime) Diagnostic() diag.Diagnostic {
	return diag.New(diag.SevInfo, diag.EvalRequiresRuntime, r.Origin, r.Reason)
}

// Truthy implements the JS boolean coercion for folded values. Functions
// and containers are always truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case StringValue:
		return val != ""
	case NumberValue:
		return val != 0
	case BoolValue:
		return bool(val)
	case NullValue, UndefinedValue:
		return false
	default:
		return true
	}
}

// FormatNumber renders a number the way JS string coercion does for the
// common cases: integers without a decimal point.
func FormatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// ToString coerces a primitive value to its JS string form. The second
// result is false for containers and functions.
func ToString(v Value) (string, bool) {
	switch val := v.(type) {
	case StringValue:
		return string(val), true
	case NumberValue:
		return FormatNumber(float64(val)), true
	case BoolValue:
		return strconv.FormatBool(bool(val)), true
	case NullValue:
		return "null", true
	case UndefinedValue:
		return "undefined", true
	}
	return "", false
}
