package jsonschema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := Normalize(json.RawMessage(s))
	require.NoError(t, err)
	return v
}

var validators = map[string]Validator{
	"draft4":   NewDraft4Validator(),
	"compiler": NewCompilerValidator(),
}

func TestValidate_ValidDocument(t *testing.T) {
	schema := mustDecode(t, `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`)
	doc := mustDecode(t, `{"name":"miku"}`)

	for name, v := range validators {
		t.Run(name, func(t *testing.T) {
			errs, err := v.Validate(doc, schema)
			require.NoError(t, err)
			assert.Empty(t, errs)
		})
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	schema := mustDecode(t, `{"type":"object","required":["name"]}`)
	doc := mustDecode(t, `{}`)

	for name, v := range validators {
		t.Run(name, func(t *testing.T) {
			errs, err := v.Validate(doc, schema)
			require.NoError(t, err)
			require.Len(t, errs, 1)
			assert.Equal(t, `"name" is a required property`, errs[0].Message)
			assert.Empty(t, errs[0].Path)
		})
	}
}

func TestValidate_InvalidSchema(t *testing.T) {
	schema := mustDecode(t, `{"type":5}`)

	for name, v := range validators {
		t.Run(name, func(t *testing.T) {
			_, err := v.Validate(map[string]any{}, schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchemaValidationSystem), "got %v", err)
		})
	}
}

func TestValidate_UnsupportedInstance(t *testing.T) {
	_, err := NewCompilerValidator().Validate(func() {}, map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaValidationSystem)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestDraft4Validator_TypeError(t *testing.T) {
	schema := mustDecode(t, `{"type":"object","properties":{"age":{"type":"integer"}}}`)
	doc := mustDecode(t, `{"age":"old"}`)

	errs, err := NewDraft4Validator().Validate(doc, schema)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "'old' is not of type 'integer'", errs[0].Message)
	assert.Equal(t, []string{"age"}, errs[0].Path)
	assert.Equal(t, "old", errs[0].Value)
}

func TestDraft4Validator_NestedArrayPath(t *testing.T) {
	schema := mustDecode(t, `{
		"type": "object",
		"properties": {
			"tags": {"type": "array", "items": {"type": "string"}}
		}
	}`)
	doc := mustDecode(t, `{"tags":["a", 2]}`)

	errs, err := NewDraft4Validator().Validate(doc, schema)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"tags", "1"}, errs[0].Path)
	assert.Equal(t, json.Number("2"), errs[0].Value)
	assert.Equal(t, "2 is not of type 'string'", errs[0].Message)
}

func TestDraft4Validator_MultipleTypes(t *testing.T) {
	schema := mustDecode(t, `{"type":["string","null"]}`)

	errs, err := NewDraft4Validator().Validate(true, schema)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "true is not of type 'string', 'null'", errs[0].Message)
	assert.Empty(t, errs[0].Path)
}

func TestDraft4Validator_AdditionalProperties(t *testing.T) {
	schema := mustDecode(t, `{"type":"object","additionalProperties":false}`)
	doc := mustDecode(t, `{"extra":1}`)

	errs, err := NewDraft4Validator().Validate(doc, schema)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "Additional properties are not allowed ('extra' was unexpected)", errs[0].Message)
}

func TestCompilerValidator_TypeError(t *testing.T) {
	schema := mustDecode(t, `{"type":"object","properties":{"age":{"type":"integer"}}}`)
	doc := mustDecode(t, `{"age":"old"}`)

	errs, err := NewCompilerValidator().Validate(doc, schema)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "integer")
	assert.Equal(t, []string{"age"}, errs[0].Path)
	assert.Equal(t, "old", errs[0].Value)
}

func TestCompilerValidator_SplitsMissingProperties(t *testing.T) {
	schema := mustDecode(t, `{"type":"object","required":["a","b"]}`)

	errs, err := NewCompilerValidator().Validate(map[string]any{}, schema)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	msgs := []string{errs[0].Message, errs[1].Message}
	assert.ElementsMatch(t, []string{`"a" is a required property`, `"b" is a required property`}, msgs)
}

func TestCompilerValidator_QuotesRequiredNamesLikeDraft4(t *testing.T) {
	schema := mustDecode(t, `{"type":"object","required":["it's", "a\"b"]}`)

	compiler, err := NewCompilerValidator().Validate(map[string]any{}, schema)
	require.NoError(t, err)
	draft4, err := NewDraft4Validator().Validate(map[string]any{}, schema)
	require.NoError(t, err)

	msgs := func(errs []ValidationError) []string {
		out := make([]string, 0, len(errs))
		for _, e := range errs {
			out = append(out, e.Message)
		}
		return out
	}
	want := []string{`"it's" is a required property`, `"a\"b" is a required property`}
	assert.ElementsMatch(t, want, msgs(compiler))
	assert.ElementsMatch(t, want, msgs(draft4))
}

func TestMissingProperties(t *testing.T) {
	cases := []struct {
		msg    string
		want   []string
		wantOK bool
	}{
		{`missing properties: 'name'`, []string{"name"}, true},
		{`missing properties: 'a', 'b'`, []string{"a", "b"}, true},
		{`missing properties: 'x, y', 'z'`, []string{"x, y", "z"}, true},
		{`missing properties: 'it\'s'`, []string{"it's"}, true},
		{`missing properties: 'a"b'`, []string{`a"b`}, true},
		{`missing properties: 'tab\t'`, []string{"tab\t"}, true},
		{`missing properties: 'open`, nil, false},
		{`expected integer, but got string`, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			got, ok := missingProperties(tc.msg)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPointerPath(t *testing.T) {
	cases := []struct {
		pointer string
		want    []string
	}{
		{"", nil},
		{"/age", []string{"age"}},
		{"/tags/0", []string{"tags", "0"}},
		{"/a~1b/c~0d", []string{"a/b", "c~d"}},
	}
	for _, tc := range cases {
		t.Run(tc.pointer, func(t *testing.T) {
			assert.Equal(t, tc.want, pointerPath(tc.pointer))
		})
	}
}

func TestLookup(t *testing.T) {
	doc := mustDecode(t, `{"a":{"b":[10,{"c":"x"}]}}`)

	assert.Equal(t, "x", lookup(doc, []string{"a", "b", "1", "c"}))
	assert.Equal(t, json.Number("10"), lookup(doc, []string{"a", "b", "0"}))
	assert.Nil(t, lookup(doc, []string{"a", "b", "9"}))
	assert.Nil(t, lookup(doc, []string{"a", "missing", "x"}))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "'old'", Display("old"))
	assert.Equal(t, `'it\'s'`, Display("it's"))
	assert.Equal(t, "3", Display(json.Number("3")))
	assert.Equal(t, "null", Display(nil))
	assert.Equal(t, `{"a":[1,true]}`, Display(map[string]any{"a": []any{1, true}}))
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	out, err := Encode("<a&b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, out)
}

func TestDraft4Validator_AnyOfKeepsClosestBranch(t *testing.T) {
	schema := mustDecode(t, `{"anyOf":[{"type":"string"},{"type":"integer","minimum":10}]}`)

	errs, err := NewDraft4Validator().Validate(json.Number("3"), schema)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(errs), 2)
	assert.Equal(t, "3 is not valid under any of the given schemas", errs[0].Message)
	for _, e := range errs {
		assert.Empty(t, e.Path)
		assert.Equal(t, json.Number("3"), e.Value)
	}
}
