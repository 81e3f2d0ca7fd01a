package jschema

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// DefaultCacheID names the cache used when callers do not pick one.
const DefaultCacheID = "default"

// Catalog caches compiled schemas in named caches, maps URIs to sources,
// holds the metaschema cache and the format-validator registry. Mutation
// (source registration, compilation) is serialized behind one lock;
// evaluation reads compiled state and takes the read lock only to consult
// the format registry.
type Catalog struct {
	mu sync.RWMutex

	caches       map[string]map[string]*Schema
	metaschemas  map[string]*Metaschema
	vocabularies map[string]*Vocabulary
	sources      []registeredSource
	pending      map[string][]*refKeyword

	formats        map[string]FormatValidator
	enabledFormats map[string]struct{}

	assertContent bool
	decoders      map[string]func(string) ([]byte, error)
	mediaTypes    map[string]func([]byte) error

	defaultMetaschemaURI string
}

type registeredSource struct {
	base   string
	source Source
}

// FormatValidator checks one instance value; it returns nil on success and a
// descriptive error on failure. The error is converted into a keyword-level
// assertion error, never surfaced as a Go error from evaluation.
type FormatValidator func(value any) error

// CatalogOption configures NewCatalog.
type CatalogOption func(*Catalog)

// WithDefaultMetaschema sets the metaschema used when a schema document has
// no "$schema" and the caller passes none.
func WithDefaultMetaschema(uri string) CatalogOption {
	return func(c *Catalog) { c.defaultMetaschemaURI = uri }
}

// WithContentAssertion turns the content keywords (contentEncoding,
// contentMediaType) from annotations into assertions.
func WithContentAssertion() CatalogOption {
	return func(c *Catalog) { c.assertContent = true }
}

// NewCatalog creates a catalog with the 2019-09 and 2020-12 vocabularies and
// metaschemas registered from the embedded documents.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		caches:               make(map[string]map[string]*Schema),
		metaschemas:          make(map[string]*Metaschema),
		vocabularies:         builtinVocabularies(),
		pending:              make(map[string][]*refKeyword),
		formats:              make(map[string]FormatValidator),
		enabledFormats:       make(map[string]struct{}),
		decoders:             make(map[string]func(string) ([]byte, error)),
		mediaTypes:           make(map[string]func([]byte) error),
		defaultMetaschemaURI: Draft202012MetaschemaURI,
	}
	c.initDefaults()
	for _, opt := range opts {
		opt(c)
	}
	if err := c.createStandardMetaschemas(); err != nil {
		// the embedded metaschema documents ship with the package; failing to
		// compile them is a build defect, not a runtime condition
		panic(err)
	}
	return c
}

func (c *Catalog) initDefaults() {
	c.sources = append(c.sources,
		registeredSource{base: "https://json-schema.org/draft/2020-12/", source: fsSource{fsys: metaschemaFS, prefix: "metaschemas/2020-12"}},
		registeredSource{base: "https://json-schema.org/draft/2019-09/", source: fsSource{fsys: metaschemaFS, prefix: "metaschemas/2019-09"}},
	)

	for name, check := range Formats {
		check := check
		name := name
		c.formats[name] = func(value any) error {
			if !check(value) {
				return fmt.Errorf("value does not conform to format %q", name)
			}
			return nil
		}
	}

	c.decoders["base64"] = func(s string) ([]byte, error) {
		return base64.StdEncoding.DecodeString(s)
	}
	c.mediaTypes["application/json"] = func(data []byte) error {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%w: %w", ErrJSONUnmarshal, err)
		}
		return nil
	}
	c.mediaTypes["application/yaml"] = func(data []byte) error {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%w: %w", ErrYAMLUnmarshal, err)
		}
		return nil
	}
}

func (c *Catalog) createStandardMetaschemas() error {
	if _, err := c.createMetaschemaLocked(Draft201909MetaschemaURI, Vocab201909Core,
		Vocab201909Applicator, Vocab201909Validation, Vocab201909MetaData, Vocab201909Format, Vocab201909Content); err != nil {
		return err
	}
	_, err := c.createMetaschemaLocked(Draft202012MetaschemaURI, Vocab202012Core,
		Vocab202012Applicator, Vocab202012Unevaluated, Vocab202012Validation,
		Vocab202012MetaData, Vocab202012FormatAnnotation, Vocab202012Content)
	return err
}

// RegisterVocabulary makes a custom vocabulary available to metaschemas
// created afterwards.
func (c *Catalog) RegisterVocabulary(v *Vocabulary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vocabularies[v.URI] = v
}

// AddURISource registers a source under a base URI. At lookup time the
// longest matching base wins; among equal bases the later registration wins.
func (c *Catalog) AddURISource(baseURI string, source Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, registeredSource{base: baseURI, source: source})
}

// RegisterFormatValidator installs or replaces the validator for a format
// name. Registration alone does not make the format assert; see
// EnableFormats.
func (c *Catalog) RegisterFormatValidator(name string, validator FormatValidator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formats[name] = validator
}

// EnableFormats switches the named formats from annotation to assertion.
// Enabling a format with no registered validator is an error.
func (c *Catalog) EnableFormats(names ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		if _, ok := c.formats[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, name)
		}
		c.enabledFormats[name] = struct{}{}
	}
	return nil
}

func (c *Catalog) formatAsserted(name string) (FormatValidator, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, enabled := c.enabledFormats[name]; !enabled {
		return nil, false
	}
	validator, ok := c.formats[name]
	return validator, ok
}

// SchemaOption configures Compile and GetSchema.
type SchemaOption func(*schemaOptions)

type schemaOptions struct {
	cacheID       string
	metaschemaURI string
	baseURI       string
	resolveRefs   bool
}

func newSchemaOptions(opts []SchemaOption) schemaOptions {
	options := schemaOptions{cacheID: DefaultCacheID, resolveRefs: true}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithCacheID selects the named cache instead of "default".
func WithCacheID(id string) SchemaOption {
	return func(o *schemaOptions) { o.cacheID = id }
}

// WithMetaschemaURI sets the metaschema for documents that carry no
// "$schema". An inner "$schema" always wins.
func WithMetaschemaURI(uri string) SchemaOption {
	return func(o *schemaOptions) { o.metaschemaURI = uri }
}

// WithBaseURI sets the retrieval URI the document is considered loaded from.
func WithBaseURI(uri string) SchemaOption {
	return func(o *schemaOptions) { o.baseURI = uri }
}

// WithDeferredResolution leaves $ref targets unbound until the caller runs
// ResolveReferences, which mutually recursive schema bundles need.
func WithDeferredResolution() SchemaOption {
	return func(o *schemaOptions) { o.resolveRefs = false }
}

// Compile parses and compiles one raw schema document.
func (c *Catalog) Compile(data []byte, opts ...SchemaOption) (*Schema, error) {
	node, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return c.CompileNode(node, opts...)
}

// CompileNode compiles an already-parsed schema document.
func (c *Catalog) CompileNode(node *Node, opts ...SchemaOption) (*Schema, error) {
	options := newSchemaOptions(opts)
	metaschemaURI := options.metaschemaURI
	if metaschemaURI == "" {
		metaschemaURI = c.defaultMetaschemaURI
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compileLocked(node, options.baseURI, metaschemaURI, options.cacheID, options.resolveRefs)
}

// GetSchema returns the compiled schema for a URI, loading and compiling it
// from the registered sources on a cache miss. A fragment selects a
// subschema, by JSON Pointer or by plain-name anchor.
func (c *Catalog) GetSchema(uri string, opts ...SchemaOption) (*Schema, error) {
	options := newSchemaOptions(opts)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getSchemaLocked(uri, options.cacheID, options.metaschemaURI, options.resolveRefs)
}

func (c *Catalog) getSchemaLocked(uri, cacheID, metaschemaURI string, resolveRefs bool) (*Schema, error) {
	base, fragment := splitFragment(uri)

	resource, ok := c.caches[cacheID][base]
	if !ok {
		var err error
		resource, err = c.loadSchemaLocked(base, cacheID, metaschemaURI)
		if err != nil {
			return nil, err
		}
		if resolveRefs {
			if err := c.resolveReferencesLocked(cacheID); err != nil {
				return nil, err
			}
		}
	}

	if fragment == "" {
		return resource, nil
	}
	return resolveFragmentIn(resource, fragment)
}

// loadSchemaLocked pulls raw JSON for a fragment-free URI out of the sources
// and compiles it.
func (c *Catalog) loadSchemaLocked(uri, cacheID, metaschemaURI string) (*Schema, error) {
	raw, err := c.loadRaw(uri)
	if err != nil {
		return nil, err
	}

	// an inner $schema always beats the caller's metaschema
	if declared := probeField(raw, "$schema"); declared != "" {
		metaschemaURI = declared
	} else if metaschemaURI == "" {
		metaschemaURI = c.defaultMetaschemaURI
	}

	node, err := ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSource, uri, err)
	}

	schema, err := c.compileLocked(node, uri, metaschemaURI, cacheID, false)
	if err != nil {
		return nil, err
	}

	// keep the schema reachable under the retrieval URI even when its $id
	// names something else
	if schema.uri != uri {
		if err := c.registerSchemaLocked(cacheID, uri, schema); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// loadRaw locates the best source for the URI (longest base prefix, later
// registration breaking ties) and loads the raw document.
func (c *Catalog) loadRaw(uri string) ([]byte, error) {
	bestLen := -1
	var best Source
	var bestBase string
	for _, entry := range c.sources {
		if strings.HasPrefix(uri, entry.base) && len(entry.base) >= bestLen {
			bestLen = len(entry.base)
			best = entry.source
			bestBase = entry.base
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no source registered for %q", ErrSourceNotFound, uri)
	}
	return best.Load(strings.TrimPrefix(uri, bestBase))
}

func (c *Catalog) registerSchemaLocked(cacheID, uri string, schema *Schema) error {
	cache, ok := c.caches[cacheID]
	if !ok {
		cache = make(map[string]*Schema)
		c.caches[cacheID] = cache
	}
	if existing, ok := cache[uri]; ok && existing != schema {
		if !existing.raw.Equal(schema.raw) {
			return fmt.Errorf("%w: %q", ErrDuplicateSchema, uri)
		}
	}
	cache[uri] = schema
	return nil
}

// lookupSchemaLocked finds a cached resource by canonical or alias URI.
func (c *Catalog) lookupSchemaLocked(cacheID, uri string) (*Schema, bool) {
	schema, ok := c.caches[cacheID][uri]
	return schema, ok
}

// ResolveReferences binds every deferred reference in the named cache,
// loading newly referenced schemas as needed, until a fixpoint. If any
// reference stays unbound the call fails with ErrUnresolvedReference.
func (c *Catalog) ResolveReferences(cacheID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveReferencesLocked(cacheID)
}

func (c *Catalog) resolveReferencesLocked(cacheID string) error {
	for {
		pending := c.pending[cacheID]
		if len(pending) == 0 {
			break
		}
		c.pending[cacheID] = nil

		progress := false
		var unresolved []*refKeyword
		var lastErr error
		for _, ref := range pending {
			target, err := c.resolveTargetLocked(ref.target, cacheID)
			if err != nil {
				unresolved = append(unresolved, ref)
				lastErr = err
				continue
			}
			ref.resolved = target
			progress = true
		}

		c.pending[cacheID] = append(c.pending[cacheID], unresolved...)
		if !progress && len(unresolved) > 0 {
			return fmt.Errorf("%w: %q: %w", ErrUnresolvedReference, unresolved[0].target, lastErr)
		}
	}

	for _, schema := range c.caches[cacheID] {
		if schema.isResourceRoot() {
			schema.referencesResolved = true
		}
	}
	return nil
}

// resolveTargetLocked turns an absolute reference URI into a schema, loading
// its resource if the cache does not hold it yet.
func (c *Catalog) resolveTargetLocked(target, cacheID string) (*Schema, error) {
	base, fragment := splitFragment(target)
	resource, ok := c.lookupSchemaLocked(cacheID, base)
	if !ok {
		var err error
		resource, err = c.loadSchemaLocked(base, cacheID, "")
		if err != nil {
			return nil, err
		}
	}
	if fragment == "" {
		return resource, nil
	}
	return resolveFragmentIn(resource, fragment)
}

// resolveFragmentIn applies a URI fragment to a resource: JSON Pointer
// fragments descend the compiled subschema index, plain names go through the
// anchor table.
func resolveFragmentIn(resource *Schema, fragment string) (*Schema, error) {
	root := resource.resourceRoot
	if strings.HasPrefix(fragment, "/") || fragment == "" {
		ptr, err := ParsePointerFragment(fragment)
		if err != nil {
			return nil, err
		}
		sub, ok := root.subschemas[ptr.String()]
		if !ok {
			return nil, fmt.Errorf("%w: no subschema at %q in %q", ErrUnresolvedReference, fragment, root.uri)
		}
		return sub, nil
	}
	if entry, ok := root.anchors[fragment]; ok {
		return entry.schema, nil
	}
	return nil, fmt.Errorf("%w: no anchor %q in %q", ErrUnresolvedReference, fragment, root.uri)
}

func (c *Catalog) deferReference(cacheID string, ref *refKeyword) {
	c.pending[cacheID] = append(c.pending[cacheID], ref)
}
