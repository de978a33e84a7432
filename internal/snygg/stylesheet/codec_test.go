package stylesheet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/rule"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/spec"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

const canonicalJSON = `{
  "@defines": {
    "--primary": "rgba(255,0,0,1)"
  },
  "key": {
    "background": "var(--primary)",
    "width": "40dp"
  },
  "key:pressed": {
    "background": "rgba(0,0,0,1)"
  }
}
`

func TestMarshalIsCanonical(t *testing.T) {
	t.Parallel()

	out, err := Marshal(sampleDocument(t))
	require.NoError(t, err)
	require.Equal(t, canonicalJSON, string(out))
}

func TestMarshalEmpty(t *testing.T) {
	t.Parallel()

	out, err := Marshal(New())
	require.NoError(t, err)
	require.Equal(t, "{}\n", string(out))

	doc := New()
	doc.InsertOrReplace(rule.MustNew("keyboard"), nil)
	out, err = Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"keyboard\": {}\n}\n", string(out))
}

func TestUnmarshalRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := Unmarshal([]byte(canonicalJSON))
	require.NoError(t, err)
	require.True(t, doc.Equal(sampleDocument(t)))
	require.Equal(t, uint64(0), doc.Version())

	out, err := Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, canonicalJSON, string(out))
}

func TestUnmarshalCanonicalizes(t *testing.T) {
	t.Parallel()

	input := `{"key[code=32|10]:disabled:pressed": {"background": "#FF0000", "font-weight": "bold"}}`
	doc, err := Unmarshal([]byte(input))
	require.NoError(t, err)

	rules := doc.Rules()
	require.Len(t, rules, 1)
	require.Equal(t, "key[code=10|32]:pressed:disabled", rules[0].Key())

	props, _ := doc.Get(rules[0])
	bg, _ := props.Get("background")
	require.Equal(t, value.RGBA(255, 0, 0, 1), bg)
	weight, _ := props.Get("font-weight")
	require.Equal(t, value.FontWeight{Weight: 700}, weight)
}

func TestUnmarshalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		rule     string
		property string
	}{
		{name: "invalid json", input: `{`},
		{name: "not an object", input: `[]`},
		{name: "bad rule", input: `{"key:hover": {}}`, rule: "key:hover"},
		{name: "unknown element", input: `{"toolbar": {}}`, rule: "toolbar"},
		{name: "body not object", input: `{"key": "red"}`, rule: "key"},
		{name: "non string value", input: `{"key": {"width": 12}}`, rule: "key", property: "width"},
		{name: "unknown property", input: `{"key": {"color": "#000000"}}`, rule: "key", property: "color"},
		{name: "bad value", input: "{\n  \"key\": {\n    \"background\": \"rgba(256,0,0,1)\"\n  }\n}", rule: "key", property: "background"},
		{name: "variable outside defines", input: `{"key": {"--primary": "#000000"}}`, rule: "key", property: "--primary"},
		{name: "duplicate property", input: `{"key": {"width": "1dp", "width": "2dp"}}`, rule: "key", property: "width"},
		{name: "duplicate rule", input: `{"key[code=1|2]": {}, "key[code=2|1]": {}}`, rule: "key[code=2|1]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Unmarshal([]byte(tt.input))
			require.Nil(t, doc)

			var parseErr *snyggerrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, tt.rule, parseErr.Rule)
			require.Equal(t, tt.property, parseErr.Property)
		})
	}
}

func TestUnmarshalNestedDecodeError(t *testing.T) {
	t.Parallel()

	_, err := Unmarshal([]byte(`{"key": {"width": "12px"}}`))
	var decodeErr *snyggerrors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, snyggerrors.ReasonUnit, decodeErr.Reason)
}

const sampleYAML = `"@defines":
  --primary: "#FF0000"
key:
  background: var(--primary)
  width: 40dp
key:pressed:
  background: rgba(0,0,0,1)
`

func TestUnmarshalYAML(t *testing.T) {
	t.Parallel()

	doc, err := UnmarshalYAML([]byte(sampleYAML))
	require.NoError(t, err)
	require.True(t, doc.Equal(sampleDocument(t)))

	out, err := MarshalYAML(doc)
	require.NoError(t, err)

	again, err := UnmarshalYAML(out)
	require.NoError(t, err)
	require.True(t, again.Equal(doc))

	empty, err := UnmarshalYAML(nil)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
}

func TestUnmarshalYAMLErrors(t *testing.T) {
	t.Parallel()

	_, err := UnmarshalYAML([]byte("- key\n"))
	var parseErr *snyggerrors.ParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = UnmarshalYAML([]byte("key:\n  width: 12px\n"))
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "key", parseErr.Rule)
	require.Equal(t, "width", parseErr.Property)
	require.Equal(t, 2, parseErr.Line)

	_, err = UnmarshalYAML([]byte("key:\n  width: [1, 2]\n"))
	require.ErrorAs(t, err, &parseErr)
}

func TestUnmarshalWithCustomCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := spec.NewCatalog(spec.ElementSpec{Name: "keyboard"})
	require.NoError(t, err)

	_, err = Unmarshal([]byte(`{"key": {}}`), WithCatalog(catalog))
	require.Error(t, err)

	doc, err := Unmarshal([]byte(`{"keyboard": {}}`), WithCatalog(catalog))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())
}

func TestMarshalOutputLoadsBack(t *testing.T) {
	t.Parallel()

	doc := New()
	doc.InsertOrReplace(rule.MustParse("key:pressed"), NewPropertySet(
		Property{Name: "background", Value: value.RGBA(255, 0, 0, 1)},
	))
	doc.InsertOrReplace(rule.MustParse("key"), NewPropertySet(
		Property{Name: "background", Value: value.RGBA(0, 255, 0, 1)},
	))
	require.NoError(t, doc.SetProperty(rule.MustParse("key"), "width", value.SpSize{Sp: 40}))

	out, err := Marshal(doc)
	require.NoError(t, err)
	loaded, err := Unmarshal(out)
	require.NoError(t, err)
	require.True(t, loaded.Equal(doc))

	out, err = MarshalYAML(doc)
	require.NoError(t, err)
	loaded, err = UnmarshalYAML(out)
	require.NoError(t, err)
	require.True(t, loaded.Equal(doc))
}

func TestMarshalRejectsUndeclaredProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  rule.Rule
		props *PropertySet
	}{
		{
			name:  "unknown property",
			rule:  rule.MustNew("key"),
			props: NewPropertySet(Property{Name: "not-a-property", Value: value.DpSize{Dp: 1}}),
		},
		{
			name:  "variable outside defines",
			rule:  rule.MustNew("key"),
			props: NewPropertySet(Property{Name: "--x", Value: value.DpSize{Dp: 1}}),
		},
		{
			name:  "kind not accepted",
			rule:  rule.MustNew("key"),
			props: NewPropertySet(Property{Name: "background", Value: value.DpSize{Dp: 1}}),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := New()
			doc.InsertOrReplace(tt.rule, tt.props)

			var validationErr *snyggerrors.ValidationError

			out, err := Marshal(doc)
			require.Nil(t, out)
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tt.rule.Key(), validationErr.Field)
			require.Contains(t, validationErr.Message, tt.props.Names()[0])

			out, err = MarshalYAML(doc)
			require.Nil(t, out)
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestDecodedDocumentKeepsCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := spec.NewCatalog(spec.ElementSpec{Name: "keyboard"})
	require.NoError(t, err)

	doc, err := Unmarshal([]byte(`{"keyboard": {}}`), WithCatalog(catalog))
	require.NoError(t, err)
	require.Same(t, catalog, doc.Catalog())
	require.Same(t, catalog, doc.Clone().Catalog())
	require.Error(t, doc.SetProperty(rule.MustNew("keyboard"), "width", value.DpSize{Dp: 1}))
}
