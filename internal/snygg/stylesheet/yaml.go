package stylesheet

import (
	"fmt"

	"gopkg.in/yaml.v3"

	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

// UnmarshalYAML reads the YAML form of a stylesheet: a mapping of rule text
// to a mapping of property names to scalar values.
func UnmarshalYAML(data []byte, opts ...Option) (*Stylesheet, error) {
	o := newOptions(opts)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, snyggerrors.NewParseError("", 0, fmt.Errorf("invalid YAML: %w", err))
	}

	doc := New(WithCatalog(o.catalog))
	if root.Kind == 0 {
		return doc, nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, snyggerrors.NewParseError("", 0, fmt.Errorf("stylesheet must be a single YAML document"))
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, snyggerrors.NewParseError("", top.Line, fmt.Errorf("stylesheet must be a mapping"))
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		keyNode, body := top.Content[i], top.Content[i+1]
		ruleText := keyNode.Value

		if body.Kind != yaml.MappingNode {
			// An empty rule may be written as "key:" with no body.
			if !(body.Kind == yaml.ScalarNode && body.Tag == "!!null") {
				return nil, ruleError(ruleText, "", keyNode.Line, fmt.Errorf("rule body must be a mapping"))
			}
		}

		b := newRuleBuilder(o.catalog, ruleText)
		if err := b.parseRule(); err != nil {
			return nil, ruleError(ruleText, "", keyNode.Line, err)
		}

		for j := 0; j+1 < len(body.Content); j += 2 {
			nameNode, valueNode := body.Content[j], body.Content[j+1]
			if valueNode.Kind != yaml.ScalarNode {
				return nil, ruleError(ruleText, nameNode.Value, nameNode.Line, fmt.Errorf("property value must be a scalar"))
			}
			if err := b.addProperty(nameNode.Value, valueNode.Value); err != nil {
				return nil, ruleError(ruleText, nameNode.Value, nameNode.Line, err)
			}
		}

		if !doc.add(b.rule, b.props) {
			return nil, ruleError(ruleText, "", keyNode.Line, fmt.Errorf("duplicate rule %s", b.rule.Key()))
		}
	}

	return doc, nil
}

// MarshalYAML writes s as YAML, preserving rule and property order.
func MarshalYAML(s *Stylesheet) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	top := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.Entries() {
		body := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range e.Properties.Properties() {
			body.Content = append(body.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: p.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Value: p.Value.String(), Style: yaml.DoubleQuotedStyle},
			)
		}
		top.Content = append(top.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Rule.Key(), Style: yaml.DoubleQuotedStyle},
			body,
		)
	}

	out, err := yaml.Marshal(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{top}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stylesheet: %w", err)
	}
	return out, nil
}
