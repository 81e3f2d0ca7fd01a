package jschema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaCachesByCanonicalURI(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", MapSource{
		"person": []byte(`{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"$id": "https://example.com/person",
			"type": "object",
			"properties": {"name": {"type": "string"}}
		}`),
	})

	schema, err := catalog.GetSchema("https://example.com/person")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/person", schema.URI())

	again, err := catalog.GetSchema(schema.URI())
	require.NoError(t, err)
	assert.Same(t, schema, again, "every compiled schema is reachable by its canonical uri")

	sub, err := catalog.GetSchema("https://example.com/person#/properties/name")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/person#/properties/name", sub.URI())
	assert.Same(t, schema, sub.Parent())
}

func TestGetSchemaAnchorFragment(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", MapSource{
		"doc": []byte(`{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"$id": "https://example.com/doc",
			"$defs": {"item": {"$anchor": "item", "type": "integer"}}
		}`),
	})

	byAnchor, err := catalog.GetSchema("https://example.com/doc#item")
	require.NoError(t, err)
	byPointer, err := catalog.GetSchema("https://example.com/doc#/$defs/item")
	require.NoError(t, err)
	assert.Same(t, byPointer, byAnchor)
}

func TestSourcePrefixSelection(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", MapSource{
		"schemas/a": []byte(`{"$id": "https://example.com/schemas/a", "type": "string"}`),
	})
	// longer base wins for the nested path
	catalog.AddURISource("https://example.com/schemas/", MapSource{
		"b": []byte(`{"$id": "https://example.com/schemas/b", "type": "integer"}`),
	})

	_, err := catalog.GetSchema("https://example.com/schemas/b")
	require.NoError(t, err)

	// equal bases: the later registration wins
	catalog.AddURISource("https://example.com/schemas/", MapSource{
		"c": []byte(`{"$id": "https://example.com/schemas/c", "type": "boolean"}`),
	})
	_, err = catalog.GetSchema("https://example.com/schemas/c")
	require.NoError(t, err)

	_, err = catalog.GetSchema("https://elsewhere.org/nope")
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greeting.json"), []byte(`{
		"$id": "https://example.com/greeting",
		"type": "string"
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "color.yaml"), []byte("$id: https://example.com/color\ntype: string\nenum:\n  - red\n  - green\n"), 0o644))

	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", DirSource{Dir: dir, Suffix: ".json"})

	schema, err := catalog.GetSchema("https://example.com/greeting")
	require.NoError(t, err)
	assert.True(t, schema.Validate("hello").IsValid())

	yamlCatalog := NewCatalog()
	yamlCatalog.AddURISource("https://example.com/", DirSource{Dir: dir, Suffix: ".yaml"})
	color, err := yamlCatalog.GetSchema("https://example.com/color")
	require.NoError(t, err)
	assert.True(t, color.Validate("red").IsValid())
	assert.False(t, color.Validate("mauve").IsValid())

	_, err = catalog.GetSchema("https://example.com/absent")
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestDuplicateSchemaDetection(t *testing.T) {
	catalog := NewCatalog()

	_, err := catalog.Compile([]byte(`{"$id": "https://example.com/dup", "type": "string"}`))
	require.NoError(t, err)

	// identical content is a cache hit
	first, err := catalog.GetSchema("https://example.com/dup")
	require.NoError(t, err)
	second, err := catalog.Compile([]byte(`{"$id": "https://example.com/dup", "type": "string"}`))
	require.NoError(t, err)
	assert.Same(t, first, second)

	// differing content under the same uri is a catalog error
	_, err = catalog.Compile([]byte(`{"$id": "https://example.com/dup", "type": "integer"}`))
	assert.ErrorIs(t, err, ErrDuplicateSchema)
}

func TestNamedCachesAreIsolated(t *testing.T) {
	catalog := NewCatalog()

	a, err := catalog.Compile([]byte(`{"$id": "https://example.com/shared", "type": "string"}`), WithCacheID("a"))
	require.NoError(t, err)
	b, err := catalog.Compile([]byte(`{"$id": "https://example.com/shared", "type": "integer"}`), WithCacheID("b"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.True(t, a.Validate("x").IsValid())
	assert.True(t, b.Validate(7).IsValid())
}

func TestResolveReferencesFixpoint(t *testing.T) {
	catalog := NewCatalog()

	// mutually recursive bundles, compiled with deferred resolution
	bundle1 := []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/bundle1",
		"type": "object",
		"properties": {"other": {"$ref": "https://example.com/bundle2"}}
	}`)
	bundle2 := []byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/bundle2",
		"type": "object",
		"properties": {"other": {"$ref": "https://example.com/bundle1"}}
	}`)

	s1, err := catalog.Compile(bundle1, WithDeferredResolution())
	require.NoError(t, err)
	assert.False(t, s1.ReferencesResolved())

	s2, err := catalog.Compile(bundle2, WithDeferredResolution())
	require.NoError(t, err)

	require.NoError(t, catalog.ResolveReferences(DefaultCacheID))
	assert.True(t, s1.ReferencesResolved())
	assert.True(t, s2.ReferencesResolved())

	assert.True(t, s1.Validate(map[string]any{"other": map[string]any{}}).IsValid())
	assert.False(t, s1.Validate(map[string]any{"other": 3}).IsValid())
}

func TestResolveReferencesPullsFromSources(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", MapSource{
		"leaf": []byte(`{"$id": "https://example.com/leaf", "type": "integer"}`),
	})

	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/root",
		"$ref": "leaf"
	}`))
	require.NoError(t, err)
	assert.True(t, schema.ReferencesResolved())
	assert.True(t, schema.Validate(4).IsValid())
	assert.False(t, schema.Validate("four").IsValid())
}

func TestUnresolvedReferenceError(t *testing.T) {
	catalog := NewCatalog()
	_, err := catalog.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/dangling",
		"$ref": "https://example.com/never-registered"
	}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestCreateMetaschema(t *testing.T) {
	catalog := NewCatalog()

	m, err := catalog.CreateMetaschema(Draft202012MetaschemaURI, Vocab202012Core)
	require.NoError(t, err)
	require.NotNil(t, m.Schema)

	again, err := catalog.CreateMetaschema(Draft202012MetaschemaURI, Vocab202012Core)
	require.NoError(t, err)
	assert.Same(t, m, again, "metaschema cache is shared")

	raw, err := ParseJSON([]byte(`{"type": "string", "minLength": 1}`))
	require.NoError(t, err)
	assert.True(t, m.ValidateSchema(raw).IsValid())

	bad, err := ParseJSON([]byte(`{"type": 12}`))
	require.NoError(t, err)
	assert.False(t, m.ValidateSchema(bad).IsValid())
}

func TestCreateMetaschemaUnknownVocabulary(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddURISource("https://example.com/", MapSource{
		"meta-required": []byte(`{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"$id": "https://example.com/meta-required",
			"$vocabulary": {
				"https://json-schema.org/draft/2020-12/vocab/core": true,
				"https://example.com/vocab/never-heard-of-it": true
			}
		}`),
		"meta-optional": []byte(`{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"$id": "https://example.com/meta-optional",
			"$vocabulary": {
				"https://json-schema.org/draft/2020-12/vocab/core": true,
				"https://json-schema.org/draft/2020-12/vocab/validation": true,
				"https://example.com/vocab/never-heard-of-it": false
			}
		}`),
	})

	_, err := catalog.CreateMetaschema("https://example.com/meta-required", Vocab202012Core)
	assert.ErrorIs(t, err, ErrUnknownVocabulary)

	m, err := catalog.CreateMetaschema("https://example.com/meta-optional", Vocab202012Core)
	require.NoError(t, err)
	require.Len(t, m.Vocabularies, 2)

	schema, err := catalog.Compile([]byte(`{
		"$schema": "https://example.com/meta-optional",
		"$id": "https://example.com/strings-only",
		"type": "string"
	}`))
	require.NoError(t, err)
	assert.True(t, schema.Validate("ok").IsValid())
	assert.False(t, schema.Validate(1).IsValid())
}
