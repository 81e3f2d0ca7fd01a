package jschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The strict-tree extension retargets the tree's $dynamicRef through the
// dynamic scope, so unevaluatedProperties sees misspelled members.
func TestDynamicRefTree(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", MapSource{
		"tree": []byte(`{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"$id": "https://example.com/tree",
			"$dynamicAnchor": "node",
			"type": "object",
			"properties": {
				"data": true,
				"children": {
					"type": "array",
					"items": {"$dynamicRef": "#node"}
				}
			}
		}`),
		"strict-tree": []byte(`{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"$id": "https://example.com/strict-tree",
			"$dynamicAnchor": "node",
			"$ref": "tree",
			"unevaluatedProperties": false
		}`),
	})

	tree, err := catalog.GetSchema("https://example.com/tree")
	require.NoError(t, err)
	strictTree, err := catalog.GetSchema("https://example.com/strict-tree")
	require.NoError(t, err)

	instance, err := ParseJSON([]byte(`{"children": [{"daat": 1}]}`))
	require.NoError(t, err)

	assert.True(t, tree.Evaluate(instance).IsValid(), "plain tree ignores unknown members")
	assert.False(t, strictTree.Evaluate(instance).IsValid(), "strict tree rejects the misspelled member")

	good, err := ParseJSON([]byte(`{"children": [{"data": 1}]}`))
	require.NoError(t, err)
	assert.True(t, strictTree.Evaluate(good).IsValid())
}

// Without a matching $dynamicAnchor on the resolution target, $dynamicRef
// degrades to a plain $ref.
func TestDynamicRefStaticFallback(t *testing.T) {
	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/fallback",
		"$defs": {"target": {"$anchor": "plain", "type": "integer"}},
		"$dynamicRef": "#plain"
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(5).IsValid())
	assert.False(t, schema.Validate("five").IsValid())
}

// The 2019-09 analogue: $recursiveRef rebinds to the outermost scope only
// when both resources carry $recursiveAnchor: true.
func TestRecursiveRef(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", MapSource{
		"base-tree": []byte(`{
			"$schema": "https://json-schema.org/draft/2019-09/schema",
			"$id": "https://example.com/base-tree",
			"$recursiveAnchor": true,
			"type": "object",
			"properties": {
				"data": true,
				"children": {
					"type": "array",
					"items": {"$recursiveRef": "#"}
				}
			}
		}`),
		"strict-base": []byte(`{
			"$schema": "https://json-schema.org/draft/2019-09/schema",
			"$id": "https://example.com/strict-base",
			"$recursiveAnchor": true,
			"$ref": "base-tree",
			"unevaluatedProperties": false
		}`),
	})

	strict, err := catalog.GetSchema("https://example.com/strict-base")
	require.NoError(t, err)

	bad, err := ParseJSON([]byte(`{"children": [{"daat": 1}]}`))
	require.NoError(t, err)
	assert.False(t, strict.Evaluate(bad).IsValid())

	good, err := ParseJSON([]byte(`{"children": [{"data": 1}]}`))
	require.NoError(t, err)
	assert.True(t, strict.Evaluate(good).IsValid())
}

func TestDynamicScopeStack(t *testing.T) {
	scope := NewDynamicScope()
	assert.Equal(t, 0, scope.Size())

	catalog := NewCatalog()
	schema, err := catalog.Compile([]byte(`{"$id": "https://example.com/frame"}`))
	require.NoError(t, err)

	scope.Push(schema)
	assert.Equal(t, 1, scope.Size())
	assert.Nil(t, scope.LookupDynamicAnchor("nope"))
	assert.Nil(t, scope.LookupRecursiveAnchor())
	scope.Pop()
	assert.Equal(t, 0, scope.Size())
}
