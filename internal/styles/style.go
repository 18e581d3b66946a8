package styles

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"stylic/internal/evaluator"
	"stylic/internal/source"
)

// Style — сплющенный стилевой дескриптор: обычные декларации плюс
// вложенные блоки (псевдоселекторы и медиазапросы), каждый со
// стабильным порядком ключей.
type Style struct {
	keys   []string
	props  map[string]string
	nested []*nestedBlock
}

type nestedBlock struct {
	// selector is either a pseudo/nested selector (":hover", "& > svg")
	// or a media query ("@media (max-width: 600px)").
	selector string
	style    *Style
}

func newStyle() *Style {
	return &Style{props: make(map[string]string)}
}

// InvalidStyle describes a descriptor fragment that cannot become a
// static declaration.
type InvalidStyle struct {
	Reason string
	Origin source.Span
}

func (e *InvalidStyle) Error() string { return e.Reason }

func (s *Style) set(key, value string) {
	if _, ok := s.props[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.props[key] = value
}

func (s *Style) nestedFor(selector string) *Style {
	for _, b := range s.nested {
		if b.selector == selector {
			return b.style
		}
	}
	b := &nestedBlock{selector: selector, style: newStyle()}
	s.nested = append(s.nested, b)
	return b.style
}

func (s *Style) empty() bool {
	return len(s.keys) == 0 && len(s.nested) == 0
}

// Flatten merges a style stack into one Style. Later entries override
// earlier ones key by key; nested blocks merge recursively.
func Flatten(stack []*evaluator.ObjectValue) (*Style, *InvalidStyle) {
	out := newStyle()
	for _, obj := range stack {
		if obj == nil {
			continue
		}
		if err := mergeObject(out, obj); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mergeObject(dst *Style, obj *evaluator.ObjectValue) *InvalidStyle {
	for _, key := range obj.Keys {
		val := obj.Values[key]
		switch v := val.(type) {
		case *evaluator.ObjectValue:
			sel := key
			if !strings.HasPrefix(sel, "@") {
				sel = normalizeSelector(sel)
			}
			if err := mergeObject(dst.nestedFor(sel), v); err != nil {
				return err
			}
		case *evaluator.FunctionValue:
			return &InvalidStyle{
				Reason: fmt.Sprintf("property %q holds a function and cannot be folded", key),
				Origin: v.Span,
			}
		default:
			text, err := declarationValue(key, val)
			if err != nil {
				return err
			}
			dst.set(kebabCase(key), text)
		}
	}
	return nil
}

// normalizeSelector keeps pseudo selectors as-is and prefixes bare
// combinator selectors with the ampersand placeholder.
func normalizeSelector(sel string) string {
	sel = strings.TrimSpace(sel)
	if strings.HasPrefix(sel, ":") || strings.HasPrefix(sel, "&") {
		return sel
	}
	return "& " + sel
}

func declarationValue(key string, val evaluator.Value) (string, *InvalidStyle) {
	switch v := val.(type) {
	case evaluator.StringValue:
		return norm.NFC.String(string(v)), nil
	case evaluator.NumberValue:
		n := evaluator.FormatNumber(float64(v))
		if float64(v) != 0 && !unitless[key] {
			n += "px"
		}
		return n, nil
	case evaluator.BoolValue:
		if v {
			return "true", nil
		}
		return "false", nil
	case *evaluator.ArrayValue:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			p, err := declarationValue(key, item)
			if err != nil {
				return "", err
			}
			parts = append(parts, p)
		}
		return strings.Join(parts, ", "), nil
	case evaluator.NullValue, evaluator.UndefinedValue:
		return "", &InvalidStyle{Reason: fmt.Sprintf("property %q has no value", key)}
	case *evaluator.FunctionValue:
		return "", &InvalidStyle{
			Reason: fmt.Sprintf("property %q holds a function and cannot be folded", key),
			Origin: v.Span,
		}
	default:
		return "", &InvalidStyle{Reason: fmt.Sprintf("property %q has an unsupported value", key)}
	}
}

// unitless lists the numeric properties that never receive the px
// default. Mirrors what CSS-in-JS runtimes special-case.
var unitless = map[string]bool{
	"animationIterationCount": true,
	"columnCount":             true,
	"fillOpacity":             true,
	"flex":                    true,
	"flexGrow":                true,
	"flexShrink":              true,
	"fontWeight":              true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"strokeOpacity":           true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}

func kebabCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
