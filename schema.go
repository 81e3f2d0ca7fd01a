package jschema

// anchorEntry is one "$anchor" / "$dynamicAnchor" registration in a resource's
// anchor table.
type anchorEntry struct {
	schema  *Schema
	dynamic bool
}

// Schema is a compiled JSON Schema: a boolean, or an ordered set of keyword
// instances with identifier and reference wiring. Schemas are created by the
// compiler, cached in a catalog, and live for the catalog's lifetime.
type Schema struct {
	catalog       *Catalog
	cacheID       string
	uri           string
	baseURI       string
	metaschemaURI string
	metaschema    *Metaschema

	parent       *Schema
	resourceRoot *Schema
	relPointer   Pointer
	tokens       []string

	boolean *bool
	raw     *Node

	keywords   []Keyword
	keywordMap map[string]Keyword

	// resource-root state
	anchors            map[string]*anchorEntry
	subschemas         map[string]*Schema
	recursiveAnchor    bool
	referencesResolved bool
}

// URI returns the schema's canonical identifier. Resource roots carry a
// fragment-free URI ($id, the absolute retrieval URI, or a generated
// urn:uuid); subschemas carry their
// resource's URI plus a JSON Pointer fragment.
func (s *Schema) URI() string {
	if s.isResourceRoot() {
		return s.uri
	}
	return s.absLocation()
}

// BaseURI returns the effective base for resolving relative references
// declared inside this schema.
func (s *Schema) BaseURI() string { return s.baseURI }

// MetaschemaURI returns the URI of the metaschema this schema was compiled
// against.
func (s *Schema) MetaschemaURI() string { return s.metaschemaURI }

// Parent returns the enclosing schema, or nil for a document root.
func (s *Schema) Parent() *Schema { return s.parent }

// Catalog returns the catalog this schema is registered in.
func (s *Schema) Catalog() *Catalog { return s.catalog }

// IsBoolean reports whether this is a boolean schema.
func (s *Schema) IsBoolean() bool { return s.boolean != nil }

// Keyword returns the compiled keyword instance with the given name.
func (s *Schema) Keyword(name string) (Keyword, bool) {
	kw, ok := s.keywordMap[name]
	return kw, ok
}

// ReferencesResolved reports whether every $ref-family keyword inside this
// schema's resource has been bound.
func (s *Schema) ReferencesResolved() bool {
	if s.resourceRoot != nil {
		return s.resourceRoot.referencesResolved
	}
	return s.referencesResolved
}

func (s *Schema) isResourceRoot() bool { return s.resourceRoot == s }

// absLocation builds the absolute keyword location: the nearest identified
// ancestor's URI plus the relative JSON Pointer fragment, with optional extra
// tokens appended.
func (s *Schema) absLocation(tokens ...string) string {
	root := s.resourceRoot
	if root == nil {
		root = s
	}
	return root.uri + "#" + s.relPointer.Append(tokens...).Fragment()
}

// Evaluate checks the instance node against the schema and returns the root
// of the result tree. The result borrows the schema and the instance; both
// must outlive it.
func (s *Schema) Evaluate(instance *Node) *Result {
	scope := NewDynamicScope()
	return s.evaluateAt(instance, scope, Pointer{})
}

// Validate is the convenience entry point accepting raw JSON bytes, plain Go
// values, or an already-parsed Node.
func (s *Schema) Validate(instance any) *Result {
	var node *Node
	var err error
	switch v := instance.(type) {
	case *Node:
		node = v
	case []byte:
		node, err = ParseJSON(v)
	default:
		node, err = NewNode(v)
	}
	if err != nil {
		r := newResult(s, "", Pointer{}, Pointer{}, s.absLocation())
		r.AddError(NewEvaluationError("", "invalid_instance", "Instance cannot be parsed: {error}", map[string]any{
			"error": err.Error(),
		}))
		return r
	}
	return s.Evaluate(node)
}

// evaluateAt performs one schema visit. Keywords run in their compiled
// dependency order; there is no short-circuiting on failure because sibling
// annotations feed unevaluatedProperties/-Items.
func (s *Schema) evaluateAt(instance *Node, scope *DynamicScope, keywordLocation Pointer) *Result {
	scope.Push(s)
	defer scope.Pop()

	result := newResult(s, "", instance.Path(), keywordLocation, s.absLocation())

	if s.boolean != nil {
		if !*s.boolean {
			result.AddError(NewEvaluationError("", "false_schema", "Value is disallowed by a false schema"))
		}
		return result
	}

	ctx := &evalContext{scope: scope, schemaResult: result}
	for _, kw := range s.keywords {
		binding := kw.Binding()
		if binding.Static {
			continue
		}
		if binding.InstanceKinds != nil && !kindIn(instance.Kind(), binding.InstanceKinds) {
			continue
		}
		kr := newResult(s, binding.Key, instance.Path(), keywordLocation.Append(binding.Key), s.absLocation(binding.Key))
		kw.Evaluate(ctx, instance, kr)
		result.AddDetail(kr)
	}
	return result
}
