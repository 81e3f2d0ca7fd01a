package jschema

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentKeywordsAnnotateByDefault(t *testing.T) {
	schema := mustCompile(t, `{
		"type": "string",
		"contentEncoding": "base64",
		"contentMediaType": "application/json"
	}`)

	result := schema.Validate("definitely not base64 json!!!")
	require.True(t, result.IsValid(), "content keywords are annotations by default")

	out, err := result.Output(OutputBasic)
	require.NoError(t, err)
	values := map[any]bool{}
	for _, unit := range out.Annotations {
		values[unit.Annotation] = true
	}
	assert.True(t, values["base64"])
	assert.True(t, values["application/json"])
}

func TestContentAssertionOptIn(t *testing.T) {
	catalog := NewCatalog(WithContentAssertion())
	schema, err := catalog.Compile([]byte(`{
		"type": "string",
		"contentEncoding": "base64",
		"contentMediaType": "application/json"
	}`))
	require.NoError(t, err)

	good := base64.StdEncoding.EncodeToString([]byte(`{"ok": true}`))
	assert.True(t, schema.Validate(good).IsValid())

	assert.False(t, schema.Validate("!!! not base64 !!!").IsValid())

	notJSON := base64.StdEncoding.EncodeToString([]byte(`{broken`))
	assert.False(t, schema.Validate(notJSON).IsValid())
}

func TestContentSchemaCompiles(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{
		"$id": "https://example.com/envelope",
		"type": "string",
		"contentMediaType": "application/json",
		"contentSchema": {"type": "object", "required": ["id"]}
	}`))
	require.NoError(t, err)

	// the subschema is addressable even though the keyword only annotates
	inner, err := catalog.GetSchema("https://example.com/envelope#/contentSchema")
	require.NoError(t, err)
	assert.True(t, inner.Validate(map[string]any{"id": 1}).IsValid())
	assert.False(t, inner.Validate(map[string]any{}).IsValid())
}
