package styles

import (
	"strings"
	"testing"

	"stylic/internal/evaluator"
	"stylic/internal/source"
)

func obj(pairs ...any) *evaluator.ObjectValue {
	o := evaluator.NewObject()
	for i := 0; i < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(evaluator.Value))
	}
	return o
}

func str(s string) evaluator.Value     { return evaluator.StringValue(s) }
func num(n float64) evaluator.Value    { return evaluator.NumberValue(n) }
func stack(os ...*evaluator.ObjectValue) []*evaluator.ObjectValue { return os }

func TestInjectIdempotent(t *testing.T) {
	e := NewEngine()
	s := stack(obj("color", str("red"), "fontSize", num(12)))
	a, err := e.Inject(s)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	b, err := e.Inject(stack(obj("color", str("red"), "fontSize", num(12))))
	if err != nil {
		t.Fatalf("inject again: %v", err)
	}
	if a != b {
		t.Fatalf("same style produced %q and %q", a, b)
	}
	if e.RuleCount() != 1 {
		t.Fatalf("RuleCount = %d, want 1", e.RuleCount())
	}
}

func TestStackOverride(t *testing.T) {
	e := NewEngine()
	name, err := e.Inject(stack(
		obj("color", str("red"), "margin", num(4)),
		obj("color", str("blue")),
	))
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	css := e.CSS()
	if !strings.Contains(css, "color: blue;") {
		t.Fatalf("override lost:\n%s", css)
	}
	if strings.Contains(css, "color: red;") {
		t.Fatalf("overridden value leaked:\n%s", css)
	}
	if !strings.Contains(css, "."+name+" {") {
		t.Fatalf("missing rule for %s:\n%s", name, css)
	}
}

func TestPixelDefaulting(t *testing.T) {
	e := NewEngine()
	if _, err := e.Inject(stack(obj(
		"fontSize", num(12),
		"lineHeight", num(1.5),
		"zIndex", num(3),
		"margin", num(0),
	))); err != nil {
		t.Fatalf("inject: %v", err)
	}
	css := e.CSS()
	for _, want := range []string{"font-size: 12px;", "line-height: 1.5;", "z-index: 3;", "margin: 0;"} {
		if !strings.Contains(css, want) {
			t.Fatalf("missing %q in:\n%s", want, css)
		}
	}
}

func TestNestedSelectorsAndMedia(t *testing.T) {
	e := NewEngine()
	name, err := e.Inject(stack(obj(
		"color", str("black"),
		":hover", obj("color", str("teal")),
		"@media (max-width: 600px)", obj("fontSize", num(10)),
	)))
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	css := e.CSS()
	if !strings.Contains(css, "."+name+":hover {") {
		t.Fatalf("pseudo rule missing:\n%s", css)
	}
	if !strings.Contains(css, "@media (max-width: 600px) {") {
		t.Fatalf("media rule missing:\n%s", css)
	}
	hover := strings.Index(css, ":hover")
	media := strings.Index(css, "@media")
	if hover > media {
		t.Fatalf("media block must come after plain rules:\n%s", css)
	}
}

func TestKeyOrderInsideBlocksDoesNotSplitClasses(t *testing.T) {
	e := NewEngine()
	a, _ := e.Inject(stack(obj("color", str("x"), ":hover", obj("color", str("y")))))
	b, _ := e.Inject(stack(obj(":hover", obj("color", str("y")), "color", str("x"))))
	if a != b {
		t.Fatalf("nested block position split the class: %q vs %q", a, b)
	}
}

func TestFunctionLeafRejected(t *testing.T) {
	e := NewEngine()
	o := evaluator.NewObject()
	o.Set("color", &evaluator.FunctionValue{Span: source.Span{Start: 7, End: 9}})
	_, err := e.Inject(stack(o))
	if err == nil {
		t.Fatal("function leaf accepted")
	}
	if err.Origin.Start != 7 {
		t.Fatalf("origin span lost: %+v", err.Origin)
	}
}

func TestNFCNormalization(t *testing.T) {
	e := NewEngine()
	// e + combining acute vs precomposed.
	a, _ := e.Inject(stack(obj("fontFamily", str("Caf\u0065\u0301"))))
	b, _ := e.Inject(stack(obj("fontFamily", str("Caf\u00e9"))))
	if a != b {
		t.Fatalf("equivalent strings produced %q and %q", a, b)
	}
}

func TestArrayValueJoined(t *testing.T) {
	e := NewEngine()
	arr := &evaluator.ArrayValue{Items: []evaluator.Value{str("Inter"), str("sans-serif")}}
	if _, err := e.Inject(stack(obj("fontFamily", arr))); err != nil {
		t.Fatalf("inject: %v", err)
	}
	if !strings.Contains(e.CSS(), "font-family: Inter, sans-serif;") {
		t.Fatalf("array join wrong:\n%s", e.CSS())
	}
}

func TestEmptyStack(t *testing.T) {
	e := NewEngine()
	name, err := e.Inject(nil)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	if name != "" || e.RuleCount() != 0 {
		t.Fatalf("empty stack produced %q with %d rules", name, e.RuleCount())
	}
}
