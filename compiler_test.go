package jschema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileBooleanSchemas(t *testing.T) {
	catalog := NewCatalog()

	always, err := catalog.Compile([]byte(`true`))
	require.NoError(t, err)
	assert.True(t, always.IsBoolean())
	for _, instance := range []any{nil, 1, "x", []any{}, map[string]any{"a": 1}} {
		assert.True(t, always.Validate(instance).IsValid())
	}

	never, err := catalog.Compile([]byte(`false`))
	require.NoError(t, err)
	for _, instance := range []any{nil, 1, "x"} {
		assert.False(t, never.Validate(instance).IsValid())
	}
}

func TestCompileEmptySchemaValidatesEverything(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{}`))
	require.NoError(t, err)
	for _, instance := range []any{nil, true, 3, "s", []any{1}, map[string]any{"k": "v"}} {
		assert.True(t, schema.Validate(instance).IsValid())
	}
}

func TestCompileGeneratesURNForAnonymousRoot(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{"type": "string"}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(schema.URI(), "urn:uuid:"), schema.URI())

	again, err := catalog.GetSchema(schema.URI())
	require.NoError(t, err)
	assert.Same(t, schema, again)
}

func TestCompileRejectsNonSchemaValues(t *testing.T) {
	catalog := NewCatalog()
	for _, raw := range []string{`42`, `"schema"`, `[true]`, `null`} {
		_, err := catalog.Compile([]byte(raw))
		assert.ErrorIs(t, err, ErrSchema, raw)
	}
}

func TestCompileIllegalSubschemaID(t *testing.T) {
	catalog := NewCatalog()

	_, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/outer",
		"$defs": {"inner": {"$id": "https://example.com/inner#/oops"}}
	}`))
	assert.ErrorIs(t, err, ErrIllegalID)

	// 2019-09 tolerates a plain-name fragment $id; it registers as an anchor
	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/legacy",
		"$defs": {"inner": {"$id": "#frag", "type": "integer"}},
		"properties": {"x": {"$ref": "#frag"}}
	}`))
	require.NoError(t, err)
	assert.True(t, schema.Validate(map[string]any{"x": 3}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"x": "three"}).IsValid())
}

func TestCompileNestedResource(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/outer",
		"properties": {
			"part": {
				"$id": "https://example.com/part",
				"type": "object",
				"properties": {"n": {"type": "integer"}}
			}
		}
	}`))
	require.NoError(t, err)

	part, err := catalog.GetSchema("https://example.com/part")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/part", part.URI())
	assert.Same(t, schema, part.Parent())

	// pointer descent from the outer resource crosses the $id boundary
	nested, err := catalog.GetSchema("https://example.com/outer#/properties/part/properties/n")
	require.NoError(t, err)
	byOwn, err := catalog.GetSchema("https://example.com/part#/properties/n")
	require.NoError(t, err)
	assert.Same(t, byOwn, nested)
}

func TestCompileUnknownKeywordsAnnotate(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"x-internal": {"team": "platform"}
	}`))
	require.NoError(t, err)

	result := schema.Validate(map[string]any{})
	require.True(t, result.IsValid())

	out, err := result.Output(OutputBasic)
	require.NoError(t, err)
	found := false
	for _, unit := range out.Annotations {
		if unit.KeywordLocation != nil && *unit.KeywordLocation == "/x-internal" {
			found = true
			assert.Equal(t, map[string]any{"team": "platform"}, unit.Annotation)
		}
	}
	assert.True(t, found, "unknown keyword collected as annotation")
}

func TestCompileMetaschemaNotFound(t *testing.T) {
	catalog := NewCatalog()
	_, err := catalog.Compile([]byte(`{"$schema": "https://example.com/no-such-meta"}`))
	assert.ErrorIs(t, err, ErrMetaschemaNotFound)
}

func TestCompileKeywordOrdering(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"unevaluatedProperties": false,
		"additionalProperties": {"type": "integer"},
		"patternProperties": {"^s": {"type": "string"}},
		"properties": {"id": {"type": "integer"}}
	}`))
	require.NoError(t, err)

	var order []string
	for _, kw := range schema.keywords {
		order = append(order, kw.Binding().Key)
	}
	assert.Equal(t, []string{"$schema", "patternProperties", "properties", "additionalProperties", "unevaluatedProperties"}, order)
}

func TestSchemaWinsOverConstructorMetaschema(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/legacy-items",
		"items": [{"type": "string"}, {"type": "integer"}],
		"additionalItems": false
	}`), WithMetaschemaURI(Draft202012MetaschemaURI))
	require.NoError(t, err)
	assert.Equal(t, Draft201909MetaschemaURI, schema.MetaschemaURI())

	// array-form items only exists under the 2019-09 vocabulary
	assert.True(t, schema.Validate([]any{"a", 1}).IsValid())
	assert.False(t, schema.Validate([]any{"a", 1, true}).IsValid())
}
