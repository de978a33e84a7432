package stylesheet

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/spec"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

const indent = "  "

// Marshal writes s as indented JSON with rules in declaration order and
// properties in insertion order. Values use their canonical text. A
// document that would not load back is rejected with *errors.ValidationError.
func Marshal(s *Stylesheet) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	entries := s.Entries()

	var buf bytes.Buffer
	if len(entries) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for i, e := range entries {
		buf.WriteString(indent)
		if err := writeJSONString(&buf, e.Rule.Key()); err != nil {
			return nil, err
		}
		buf.WriteString(": {")

		props := e.Properties.Properties()
		for j, p := range props {
			if j == 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(indent + indent)
			if err := writeJSONString(&buf, p.Name); err != nil {
				return nil, err
			}
			buf.WriteString(": ")
			if err := writeJSONString(&buf, p.Value.String()); err != nil {
				return nil, err
			}
			if j < len(props)-1 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
		}
		if len(props) > 0 {
			buf.WriteString(indent)
		}
		buf.WriteString("}")
		if i < len(entries)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode %q: %w", s, err)
	}
	// Encode terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Unmarshal reads a JSON stylesheet. Rules and properties keep document
// order. Errors are *errors.ParseError.
func Unmarshal(data []byte, opts ...Option) (*Stylesheet, error) {
	o := newOptions(opts)

	if !gjson.ValidBytes(data) {
		return nil, snyggerrors.NewParseError("", 0, fmt.Errorf("invalid JSON"))
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, snyggerrors.NewParseError("", 0, fmt.Errorf("stylesheet must be a JSON object"))
	}

	doc := New(WithCatalog(o.catalog))
	var parseErr error
	root.ForEach(func(key, body gjson.Result) bool {
		line := lineAt(data, key.Index)
		ruleText := key.String()

		if !body.IsObject() {
			parseErr = ruleError(ruleText, "", line, fmt.Errorf("rule body must be an object"))
			return false
		}

		b := newRuleBuilder(o.catalog, ruleText)
		if err := b.parseRule(); err != nil {
			parseErr = ruleError(ruleText, "", line, err)
			return false
		}

		body.ForEach(func(name, raw gjson.Result) bool {
			if raw.Type != gjson.String {
				parseErr = ruleError(ruleText, name.String(), lineAt(data, name.Index), fmt.Errorf("property value must be a string"))
				return false
			}
			if err := b.addProperty(name.String(), raw.String()); err != nil {
				parseErr = ruleError(ruleText, name.String(), lineAt(data, name.Index), err)
				return false
			}
			return true
		})
		if parseErr != nil {
			return false
		}

		if !doc.add(b.rule, b.props) {
			parseErr = ruleError(ruleText, "", line, fmt.Errorf("duplicate rule %s", b.rule.Key()))
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return doc, nil
}

func ruleError(ruleText, property string, line int, err error) error {
	pe := &snyggerrors.ParseError{Line: line, Rule: ruleText, Property: property, Err: err}
	if err != nil {
		pe.Message = err.Error()
	}
	return pe
}

// lineAt converts a byte offset to a 1-based line number. Unknown offsets
// map to 0.
func lineAt(data []byte, offset int) int {
	if offset <= 0 || offset > len(data) {
		return 0
	}
	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}

// ruleBuilder accumulates one rule and its validated properties.
type ruleBuilder struct {
	catalog *spec.Catalog
	text    string
	rule    rule.Rule
	props   *PropertySet
}

func newRuleBuilder(catalog *spec.Catalog, text string) *ruleBuilder {
	return &ruleBuilder{catalog: catalog, text: text, props: NewPropertySet()}
}

func (b *ruleBuilder) parseRule() error {
	r, err := rule.Parse(b.text)
	if err != nil {
		return err
	}
	if _, ok := b.catalog.ElementFor(r); !ok {
		return fmt.Errorf("unknown element %q", r.ElementKey())
	}
	b.rule = r
	return nil
}

func (b *ruleBuilder) addProperty(name, raw string) error {
	if b.props.Has(name) {
		return fmt.Errorf("duplicate property %q", name)
	}
	v, err := b.catalog.DecodeProperty(b.rule, name, raw)
	if err != nil {
		return err
	}
	b.props.Set(name, v)
	return nil
}
