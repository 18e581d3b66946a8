package styles

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"stylic/internal/evaluator"
)

// Engine accumulates injected styles and hands out class names. Equal
// flattened styles always map to the same class, within one engine and
// across runs.
type Engine struct {
	prefix  string
	classes map[string]string // serialized style -> class name
	order   []string          // class names in injection order
	rules   map[string]*Style // class name -> flattened style
}

func NewEngine() *Engine {
	return &Engine{
		prefix:  "sc",
		classes: make(map[string]string),
		rules:   make(map[string]*Style),
	}
}

// WithPrefix overrides the default class name prefix.
func (e *Engine) WithPrefix(prefix string) *Engine {
	e.prefix = prefix
	return e
}

// Inject folds a style stack into the sheet and returns its class
// name. Later stack entries win over earlier ones. Injecting the same
// stack twice returns the same name without growing the sheet.
func (e *Engine) Inject(stack []*evaluator.ObjectValue) (string, *InvalidStyle) {
	flat, err := Flatten(stack)
	if err != nil {
		return "", err
	}
	if flat.empty() {
		return "", nil
	}
	key := serialize(flat)
	if name, ok := e.classes[key]; ok {
		return name, nil
	}
	name := e.className(key)
	e.classes[key] = name
	e.order = append(e.order, name)
	e.rules[name] = flat
	return name, nil
}

func (e *Engine) className(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("%s-%x", e.prefix, h.Sum64())
}

// RuleCount reports how many distinct classes the sheet holds.
func (e *Engine) RuleCount() int { return len(e.order) }

// NamedRule pairs a class name with its rendered CSS text. Class names
// are content hashes, so identical rules from different files carry the
// same name and can be merged by keeping the first occurrence.
type NamedRule struct {
	Name string
	CSS  string
}

// Rules returns the sheet as one entry per class, in injection order.
func (e *Engine) Rules() []NamedRule {
	out := make([]NamedRule, 0, len(e.order))
	for _, name := range e.order {
		var b strings.Builder
		writeRule(&b, "."+name, e.rules[name])
		out = append(out, NamedRule{Name: name, CSS: b.String()})
	}
	return out
}

// CSS renders the accumulated sheet. Plain rules come out in injection
// order; within a class, nested selectors follow the base block and
// media blocks come last, each sorted by query text so output is
// stable regardless of descriptor shape.
func (e *Engine) CSS() string {
	var b strings.Builder
	for _, name := range e.order {
		writeRule(&b, "."+name, e.rules[name])
	}
	return b.String()
}

func writeRule(b *strings.Builder, selector string, s *Style) {
	if len(s.keys) > 0 {
		b.WriteString(selector)
		b.WriteString(" {\n")
		for _, k := range s.keys {
			fmt.Fprintf(b, "  %s: %s;\n", k, s.props[k])
		}
		b.WriteString("}\n")
	}

	plain, media := splitNested(s)
	for _, nb := range plain {
		writeRule(b, expandSelector(selector, nb.selector), nb.style)
	}
	for _, nb := range media {
		b.WriteString(nb.selector)
		b.WriteString(" {\n")
		var inner strings.Builder
		writeRule(&inner, selector, nb.style)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}
}

func splitNested(s *Style) (plain, media []*nestedBlock) {
	for _, nb := range s.nested {
		if strings.HasPrefix(nb.selector, "@") {
			media = append(media, nb)
		} else {
			plain = append(plain, nb)
		}
	}
	sort.SliceStable(plain, func(i, j int) bool { return plain[i].selector < plain[j].selector })
	sort.SliceStable(media, func(i, j int) bool { return media[i].selector < media[j].selector })
	return plain, media
}

func expandSelector(base, nested string) string {
	if strings.Contains(nested, "&") {
		return strings.ReplaceAll(nested, "&", base)
	}
	return base + nested
}

// serialize builds the canonical text of a flattened style, the input
// to both deduplication and class naming. Declarations keep insertion
// order; nested blocks are sorted so `{":hover":{}, color:"x"}` and
// `{color:"x", ":hover":{}}` collapse to one class.
func serialize(s *Style) string {
	var b strings.Builder
	serializeInto(&b, s)
	return b.String()
}

func serializeInto(b *strings.Builder, s *Style) {
	for _, k := range s.keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(s.props[k])
		b.WriteByte(';')
	}
	plain, media := splitNested(s)
	for _, nb := range append(plain, media...) {
		b.WriteString(nb.selector)
		b.WriteByte('{')
		serializeInto(b, nb.style)
		b.WriteByte('}')
	}
}
