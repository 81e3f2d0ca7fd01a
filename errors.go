package jschema

import "errors"

// === URI and Pointer Errors ===
var (
	// ErrURI is returned when a URI cannot be parsed.
	ErrURI = errors.New("malformed uri")

	// ErrPointer is returned when a JSON Pointer string is malformed.
	ErrPointer = errors.New("malformed json pointer")

	// ErrRelativePointer is returned when a Relative JSON Pointer string is malformed.
	ErrRelativePointer = errors.New("malformed relative json pointer")

	// ErrPointerEvaluation is returned when a pointer does not resolve within a document.
	ErrPointerEvaluation = errors.New("json pointer evaluation failed")

	// ErrRelativePointerEvaluation is returned when a relative pointer walks past the document root.
	ErrRelativePointerEvaluation = errors.New("relative json pointer evaluation failed")
)

// === Source Layer Errors ===
var (
	// ErrSourceNotFound is returned when no registered source can supply the requested URI.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSource is returned when a source fails to load or returns non-JSON content.
	ErrSource = errors.New("source failed")

	// ErrInvalidStatusCode is returned when a remote source answers with a status other than 200 or 404.
	ErrInvalidStatusCode = errors.New("invalid http status code")

	// ErrJSONUnmarshal is returned when there is an error unmarshalling JSON.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrYAMLUnmarshal is returned when there is an error unmarshalling YAML.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// === Schema Compilation Errors ===
var (
	// ErrSchema is returned when a schema document is structurally invalid.
	ErrSchema = errors.New("invalid schema")

	// ErrNoMetaschema is returned when neither the schema nor the caller supplies a metaschema URI.
	ErrNoMetaschema = errors.New("metaschema uri is not set")

	// ErrMetaschemaNotFound is returned when the declared metaschema is not registered in the catalog.
	ErrMetaschemaNotFound = errors.New("metaschema not found")

	// ErrUnknownVocabulary is returned when a metaschema requires a vocabulary the catalog does not know.
	ErrUnknownVocabulary = errors.New("unknown required vocabulary")

	// ErrKeywordDependencyCycle is returned when keyword dependency declarations form a cycle.
	ErrKeywordDependencyCycle = errors.New("keyword dependency cycle")

	// ErrIllegalID is returned when a subschema declares an "$id" with a non-empty fragment.
	ErrIllegalID = errors.New("illegal $id fragment")

	// ErrUnresolvedReference is returned when a reference target cannot be bound after fixpoint.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// === Catalog Errors ===
var (
	// ErrCatalog is returned on catalog configuration misuse.
	ErrCatalog = errors.New("catalog misuse")

	// ErrDuplicateSchema is returned when the same URI is registered twice with differing content.
	ErrDuplicateSchema = errors.New("duplicate schema uri")

	// ErrCacheNotFound is returned when an operation names a cache that does not exist.
	ErrCacheNotFound = errors.New("cache not found")

	// ErrUnknownFormat is returned when enabling a format that has no registered validator.
	ErrUnknownFormat = errors.New("unknown format")
)

// === Numeric Conversion Errors ===
var (
	// ErrRatConversion is returned when rat conversion fails.
	ErrRatConversion = errors.New("rat conversion failed")

	// ErrUnsupportedRatType is returned when the type is unsupported for conversion to *big.Rat.
	ErrUnsupportedRatType = errors.New("unsupported rat type")
)

// === Patch Errors ===
var (
	// ErrPatch is returned when a JSON Patch document cannot be decoded or applied.
	ErrPatch = errors.New("json patch failed")
)
