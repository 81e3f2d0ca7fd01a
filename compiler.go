package jschema

import (
	"fmt"
	"strings"
)

// compileContext threads the catalog and cache through one compilation.
type compileContext struct {
	catalog *Catalog
	cacheID string
}

// compileLocked compiles a raw document into the named cache. baseURI is the
// retrieval URI ("" for anonymous documents); metaschemaURI applies when the
// document has no "$schema" of its own.
func (c *Catalog) compileLocked(node *Node, baseURI, metaschemaURI, cacheID string, resolveRefs bool) (*Schema, error) {
	// compiling the same document for the same identity is a cache hit
	if id := schemaIdentity(node, baseURI); id != "" {
		if existing, ok := c.lookupSchemaLocked(cacheID, id); ok && existing.raw.Equal(node) {
			return existing, nil
		}
	}

	cc := &compileContext{catalog: c, cacheID: cacheID}
	schema, err := cc.compileNode(node, nil, nil, baseURI, metaschemaURI)
	if err != nil {
		return nil, err
	}
	if resolveRefs {
		if err := c.resolveReferencesLocked(cacheID); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// schemaIdentity predicts the canonical URI a root document will get, for the
// compile-twice fast path. Anonymous documents get fresh URNs and never hit.
func schemaIdentity(node *Node, baseURI string) string {
	if node.Kind() == KindObject {
		if idNode, ok := node.Member("$id"); ok && idNode.Kind() == KindString {
			id, _ := resolveURI(baseURI, idNode.Text())
			base, _ := splitFragment(id)
			if isAbsoluteURI(base) {
				return base
			}
		}
	}
	if isAbsoluteURI(baseURI) {
		return baseURI
	}
	return ""
}

// compileNode recursively builds the schema tree. tokens is the JSON Pointer
// path from the parent schema to this value; identifier resolution, anchor
// collection and keyword construction follow the drafts' core rules.
func (cc *compileContext) compileNode(raw *Node, parent *Schema, tokens []string, baseURI, metaschemaURI string) (*Schema, error) {
	schema := &Schema{
		catalog: cc.catalog,
		cacheID: cc.cacheID,
		parent:  parent,
		raw:     raw,
	}

	switch raw.Kind() {
	case KindBoolean:
		value := raw.Bool()
		schema.boolean = &value
		schema.metaschemaURI = metaschemaURI
		if err := cc.wireIdentity(schema, parent, tokens, baseURI, ""); err != nil {
			return nil, err
		}
		return schema, nil
	case KindObject:
		// handled below
	default:
		return nil, fmt.Errorf("%w: schema must be an object or a boolean, got %s", ErrSchema, raw.Kind())
	}

	// $schema wins over the inherited / constructor-provided metaschema
	if declared, ok := raw.Member("$schema"); ok {
		if declared.Kind() != KindString {
			return nil, fmt.Errorf("%w: $schema must be a string", ErrSchema)
		}
		metaschemaURI = declared.Text()
	}
	if metaschemaURI == "" {
		return nil, ErrNoMetaschema
	}
	metaschema, ok := cc.catalog.metaschemas[metaschemaURI]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMetaschemaNotFound, metaschemaURI)
	}
	schema.metaschemaURI = metaschemaURI
	schema.metaschema = metaschema

	var id string
	if idNode, ok := raw.Member("$id"); ok {
		if idNode.Kind() != KindString {
			return nil, fmt.Errorf("%w: $id must be a string", ErrSchema)
		}
		id = idNode.Text()
	}
	if err := cc.wireIdentity(schema, parent, tokens, baseURI, id); err != nil {
		return nil, err
	}

	if err := cc.collectAnchors(schema, raw); err != nil {
		return nil, err
	}

	keywords, err := cc.compileKeywords(schema, raw, metaschema)
	if err != nil {
		return nil, err
	}
	ordered, err := orderKeywords(keywords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.absLocation(), err)
	}
	schema.keywords = ordered
	schema.keywordMap = make(map[string]Keyword, len(ordered))
	for _, kw := range ordered {
		schema.keywordMap[kw.Binding().Key] = kw
	}
	return schema, nil
}

// wireIdentity resolves $id, assigns the canonical URI and base URI, makes
// the schema a resource root when needed, and indexes it under every
// enclosing resource root.
func (cc *compileContext) wireIdentity(schema *Schema, parent *Schema, tokens []string, baseURI, id string) error {
	schema.tokens = tokens

	var lateAnchor string
	if id != "" {
		stripped, fragment := splitFragment(id)
		switch {
		case fragment == "":
			id = stripped
		case schema.metaschemaURI == Draft201909MetaschemaURI && !strings.HasPrefix(fragment, "/"):
			// 2019-09 tolerated plain-name fragments in $ids; the fragment
			// registers as an anchor, any non-fragment part as the resource URI
			id = stripped
			lateAnchor = fragment
		default:
			return fmt.Errorf("%w: %q", ErrIllegalID, id)
		}
	}

	parentBase := baseURI
	if parent != nil {
		parentBase = parent.baseURI
	}

	switch {
	case id != "":
		canonical, err := resolveURI(parentBase, id)
		if err != nil {
			return err
		}
		if !isAbsoluteURI(canonical) {
			return fmt.Errorf("%w: $id %q does not resolve to an absolute uri", ErrSchema, id)
		}
		if err := schema.becomeResourceRoot(canonical); err != nil {
			return err
		}
	case parent == nil:
		// root schema without $id: retrieval URI, else a generated URN
		uri := parentBase
		if !isAbsoluteURI(uri) {
			uri = newUUIDURN()
		}
		if err := schema.becomeResourceRoot(uri); err != nil {
			return err
		}
	default:
		schema.baseURI = parent.baseURI
		schema.resourceRoot = parent.resourceRoot
		schema.relPointer = parent.relPointer.Append(tokens...)
	}

	// index the subschema under every enclosing resource root so pointer
	// fragments resolve across nested $id boundaries
	rel := Pointer(append([]string{}, tokens...))
	for ancestor := parent; ancestor != nil; ancestor = ancestor.parent {
		if ancestor.isResourceRoot() {
			ancestor.subschemas[rel.String()] = schema
		}
		rel = Pointer(ancestor.tokens).Concat(rel)
	}

	if lateAnchor != "" {
		schema.resourceRoot.anchors[lateAnchor] = &anchorEntry{schema: schema}
	}
	return nil
}

// becomeResourceRoot initializes the resource-level tables and registers the
// schema in its cache under the canonical URI.
func (s *Schema) becomeResourceRoot(canonical string) error {
	s.uri = canonical
	s.baseURI = canonical
	s.resourceRoot = s
	s.relPointer = Pointer{}
	s.anchors = make(map[string]*anchorEntry)
	s.subschemas = map[string]*Schema{"": s}
	return s.catalog.registerSchemaLocked(s.cacheID, canonical, s)
}

// collectAnchors registers $anchor and $dynamicAnchor in the owning
// resource's anchor table and records $recursiveAnchor as a flag on the
// resource root.
func (cc *compileContext) collectAnchors(schema *Schema, raw *Node) error {
	root := schema.resourceRoot
	if anchorNode, ok := raw.Member("$anchor"); ok {
		if anchorNode.Kind() != KindString {
			return fmt.Errorf("%w: $anchor must be a string", ErrSchema)
		}
		root.anchors[anchorNode.Text()] = &anchorEntry{schema: schema}
	}
	if anchorNode, ok := raw.Member("$dynamicAnchor"); ok {
		if anchorNode.Kind() != KindString {
			return fmt.Errorf("%w: $dynamicAnchor must be a string", ErrSchema)
		}
		root.anchors[anchorNode.Text()] = &anchorEntry{schema: schema, dynamic: true}
	}
	if anchorNode, ok := raw.Member("$recursiveAnchor"); ok {
		if anchorNode.Kind() != KindBoolean {
			return fmt.Errorf("%w: $recursiveAnchor must be a boolean", ErrSchema)
		}
		// only effective on resource roots; tolerated elsewhere
		if anchorNode.Bool() && schema == root {
			root.recursiveAnchor = true
		}
	}
	return nil
}

// compileKeywords constructs a keyword instance for every member the active
// vocabularies bind, and an annotation-only keyword for the rest.
func (cc *compileContext) compileKeywords(schema *Schema, raw *Node, metaschema *Metaschema) ([]Keyword, error) {
	keywords := make([]Keyword, 0, raw.Len())
	for _, name := range raw.Keys() {
		value, _ := raw.Member(name)
		binding, bound := metaschema.Binding(name)
		if !bound {
			binding = unknownKeywordBinding(name)
		}
		kw, err := binding.Compile(cc, schema, value)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", schema.absLocation(), name, err)
		}
		keywords = append(keywords, kw)
	}
	return keywords, nil
}

func unknownKeywordBinding(name string) *KeywordBinding {
	binding := &KeywordBinding{Key: name}
	binding.Compile = compileAnnotation(binding)
	return binding
}

// orderKeywords topologically sorts keywords by their dependency
// declarations, keeping document order among independent keywords. A cycle is
// a schema error.
func orderKeywords(keywords []Keyword) ([]Keyword, error) {
	index := make(map[string]int, len(keywords))
	for i, kw := range keywords {
		index[kw.Binding().Key] = i
	}

	indegree := make([]int, len(keywords))
	dependents := make([][]int, len(keywords))
	for i, kw := range keywords {
		for _, dep := range kw.Binding().DependsOn {
			j, present := index[dep]
			if !present {
				continue
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	ordered := make([]Keyword, 0, len(keywords))
	done := make([]bool, len(keywords))
	for len(ordered) < len(keywords) {
		next := -1
		for i := range keywords {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, ErrKeywordDependencyCycle
		}
		done[next] = true
		ordered = append(ordered, keywords[next])
		for _, dependent := range dependents[next] {
			indegree[dependent]--
		}
	}
	return ordered, nil
}

// compileSubschema compiles a keyword's subschema value, placed at the given
// pointer tokens below the owning schema.
func (cc *compileContext) compileSubschema(value *Node, parent *Schema, tokens ...string) (*Schema, error) {
	if value.Kind() != KindObject && value.Kind() != KindBoolean {
		return nil, fmt.Errorf("%w: subschema at /%s must be an object or a boolean", ErrSchema, strings.Join(tokens, "/"))
	}
	return cc.compileNode(value, parent, tokens, "", parent.metaschemaURI)
}
