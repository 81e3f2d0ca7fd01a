package jschema

import (
	"fmt"
)

// metaschemaCacheID is the dedicated, shared cache the compiled metaschema
// documents live in. References never cross from ordinary caches into it by
// accident because lookups name their cache explicitly.
const metaschemaCacheID = "__metaschema__"

// Metaschema is a schema that validates other schemas and declares, through
// its vocabularies, which keyword bindings are active for schemas compiled
// against it.
type Metaschema struct {
	URI          string
	Schema       *Schema
	Vocabularies []*Vocabulary
}

// Binding resolves a keyword name through the active vocabularies, in
// declaration order (core first).
func (m *Metaschema) Binding(name string) (*KeywordBinding, bool) {
	for _, vocabulary := range m.Vocabularies {
		if binding, ok := vocabulary.Binding(name); ok {
			return binding, true
		}
	}
	return nil, false
}

// ValidateSchema evaluates a raw schema document against the compiled
// metaschema.
func (m *Metaschema) ValidateSchema(raw *Node) *Result {
	return m.Schema.Evaluate(raw)
}

// CreateMetaschema loads the raw metaschema document for uri, determines its
// vocabulary set, compiles it into the shared metaschema cache and registers
// the result. coreVocabURI and vocabURIs act as the default set when the
// document carries no "$vocabulary"; a required vocabulary the catalog does
// not know is an error, an unknown optional one is ignored.
func (c *Catalog) CreateMetaschema(uri string, coreVocabURI string, vocabURIs ...string) (*Metaschema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createMetaschemaLocked(uri, coreVocabURI, vocabURIs...)
}

func (c *Catalog) createMetaschemaLocked(uri string, coreVocabURI string, vocabURIs ...string) (*Metaschema, error) {
	if m, ok := c.metaschemas[uri]; ok {
		return m, nil
	}

	raw, err := c.loadRaw(uri)
	if err != nil {
		return nil, err
	}
	node, err := ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: metaschema %q: %w", ErrSource, uri, err)
	}

	declared, err := declaredVocabularies(node, coreVocabURI, vocabURIs)
	if err != nil {
		return nil, fmt.Errorf("metaschema %q: %w", uri, err)
	}

	m := &Metaschema{URI: uri}
	for _, entry := range declared {
		vocabulary, known := c.vocabularies[entry.uri]
		if !known {
			if entry.required {
				return nil, fmt.Errorf("%w: %q required by metaschema %q", ErrUnknownVocabulary, entry.uri, uri)
			}
			continue
		}
		m.Vocabularies = append(m.Vocabularies, vocabulary)
	}

	// Register before compiling: the standard metaschemas name themselves in
	// "$schema".
	c.metaschemas[uri] = m

	schema, err := c.compileLocked(node, uri, uri, metaschemaCacheID, true)
	if err != nil {
		delete(c.metaschemas, uri)
		return nil, err
	}
	m.Schema = schema
	return m, nil
}

type vocabularyDecl struct {
	uri      string
	required bool
}

// declaredVocabularies reads "$vocabulary", falling back to the caller's
// default set. The core vocabulary is always sorted first.
func declaredVocabularies(node *Node, coreVocabURI string, vocabURIs []string) ([]vocabularyDecl, error) {
	var declared []vocabularyDecl
	if vocabNode, ok := node.Member("$vocabulary"); ok {
		if vocabNode.Kind() != KindObject {
			return nil, fmt.Errorf("%w: $vocabulary must be an object", ErrSchema)
		}
		for _, key := range vocabNode.Keys() {
			flag, _ := vocabNode.Member(key)
			if flag.Kind() != KindBoolean {
				return nil, fmt.Errorf("%w: $vocabulary values must be booleans", ErrSchema)
			}
			declared = append(declared, vocabularyDecl{uri: key, required: flag.Bool()})
		}
	} else {
		declared = append(declared, vocabularyDecl{uri: coreVocabURI, required: true})
		for _, vocabURI := range vocabURIs {
			declared = append(declared, vocabularyDecl{uri: vocabURI, required: true})
		}
	}

	// core first
	for i, entry := range declared {
		if entry.uri == coreVocabURI && i != 0 {
			declared[0], declared[i] = declared[i], declared[0]
			break
		}
	}
	return declared, nil
}
