package rule

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

// ruleAST mirrors the canonical rule text:
// [@]element[attr=v|v]...[:selector]...
type ruleAST struct {
	Annotation bool       `parser:"@'@'?"`
	Element    string     `parser:"@Ident"`
	Attributes []*attrAST `parser:"@@*"`
	Selectors  []string   `parser:"( ':' @Ident )*"`
}

type attrAST struct {
	Name   string   `parser:"'[' @Ident '='"`
	Values []string `parser:"( @Int | @Ident ) ( '|' ( @Int | @Ident ) )* ']'"`
}

var ruleDefinition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_-]*`},
	{Name: "Punct", Pattern: `[@\[\]=|:]`},
})

var ruleParser = participle.MustBuild[ruleAST](
	participle.Lexer(ruleDefinition),
)

// Parse reads the canonical text form produced by Rule.String. Filter values
// may appear in any order; modes are accepted by name or integer value.
func Parse(text string) (Rule, error) {
	ast, err := ruleParser.ParseString("", text)
	if err != nil {
		return Rule{}, snyggerrors.NewValidationError("rule", fmt.Sprintf("malformed rule %q", text), err)
	}

	var opts []Option
	seen := make(map[string]bool)
	for _, attr := range ast.Attributes {
		if seen[attr.Name] {
			return Rule{}, snyggerrors.NewValidationError("rule", fmt.Sprintf("duplicate attribute %q in %q", attr.Name, text), nil)
		}
		seen[attr.Name] = true

		opt, err := attributeOption(attr)
		if err != nil {
			return Rule{}, snyggerrors.NewValidationError("rule", fmt.Sprintf("rule %q: %v", text, err), err)
		}
		opts = append(opts, opt)
	}

	for _, selector := range ast.Selectors {
		key := ":" + selector
		if seen[key] {
			return Rule{}, snyggerrors.NewValidationError("rule", fmt.Sprintf("duplicate selector :%s in %q", selector, text), nil)
		}
		seen[key] = true

		switch selector {
		case selectorPressed:
			opts = append(opts, Pressed())
		case selectorFocus:
			opts = append(opts, Focus())
		case selectorDisabled:
			opts = append(opts, Disabled())
		default:
			return Rule{}, snyggerrors.NewValidationError("rule", fmt.Sprintf("unknown selector :%s in %q", selector, text), nil)
		}
	}

	if ast.Annotation {
		return NewAnnotation(ast.Element, opts...)
	}
	return New(ast.Element, opts...)
}

// MustParse is Parse for statically known rule text; it panics on error.
func MustParse(text string) Rule {
	r, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return r
}

func attributeOption(attr *attrAST) (Option, error) {
	switch attr.Name {
	case attrCode, attrGroup:
		ints := make([]int, len(attr.Values))
		for i, v := range attr.Values {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%s value %q is not an integer", attr.Name, v)
			}
			ints[i] = n
		}
		if attr.Name == attrCode {
			return Codes(ints...), nil
		}
		return Groups(ints...), nil
	case attrMode:
		modes := make([]InputMode, len(attr.Values))
		for i, v := range attr.Values {
			m, err := ParseInputMode(v)
			if err != nil {
				return nil, err
			}
			modes[i] = m
		}
		return Modes(modes...), nil
	}
	return nil, fmt.Errorf("unknown attribute %q", attr.Name)
}
