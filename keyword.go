package jschema

import "fmt"

// errSchemaKind reports a keyword value of the wrong JSON type.
func errSchemaKind(key, want string) error {
	return fmt.Errorf("%w: %q must be %s", ErrSchema, key, want)
}

// KeywordBinding declares how a keyword name behaves within a vocabulary:
// which keywords must run before it, which instance types it applies to,
// whether it is consumed at compile time, and which sibling annotations it
// reads. Compile constructs the keyword instance for one schema.
type KeywordBinding struct {
	Key                 string
	DependsOn           []string
	InstanceKinds       []Kind
	Static              bool
	ConsumesAnnotations []string
	Compile             func(cc *compileContext, schema *Schema, value *Node) (Keyword, error)
}

// Keyword is one compiled keyword instance attached to a schema.
type Keyword interface {
	// Binding returns the declarative metadata this keyword was built from.
	Binding() *KeywordBinding

	// Value returns the raw JSON value of the keyword.
	Value() *Node

	// Evaluate applies the keyword to the instance, recording annotations,
	// errors and subschema visits on result.
	Evaluate(ctx *evalContext, instance *Node, result *Result)
}

// baseKeyword carries the fields every keyword shares. Keyword types embed it
// and add their compiled state.
type baseKeyword struct {
	binding *KeywordBinding
	schema  *Schema
	value   *Node
}

func (k *baseKeyword) Binding() *KeywordBinding { return k.binding }
func (k *baseKeyword) Value() *Node             { return k.value }

func newBase(binding *KeywordBinding, schema *Schema, value *Node) baseKeyword {
	return baseKeyword{binding: binding, schema: schema, value: value}
}

// staticKeyword is the no-op evaluation behavior of keywords fully consumed
// at compile time ($id, $schema, $vocabulary, $anchor, $dynamicAnchor,
// $recursiveAnchor, $comment).
type staticKeyword struct {
	baseKeyword
}

func (k *staticKeyword) Evaluate(_ *evalContext, _ *Node, _ *Result) {}

func compileStatic(binding *KeywordBinding) func(*compileContext, *Schema, *Node) (Keyword, error) {
	return func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		return &staticKeyword{newBase(binding, schema, value)}, nil
	}
}

// annotationKeyword attaches its raw value as an annotation and asserts
// nothing. Metadata keywords and unknown keywords behave this way.
type annotationKeyword struct {
	baseKeyword
}

func (k *annotationKeyword) Evaluate(_ *evalContext, _ *Node, result *Result) {
	result.SetAnnotation(k.value.Interface())
}

func compileAnnotation(binding *KeywordBinding) func(*compileContext, *Schema, *Node) (Keyword, error) {
	return func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		return &annotationKeyword{newBase(binding, schema, value)}, nil
	}
}

// evalContext is the per-schema-visit state shared between the keywords of
// one schema node: the dynamic scope, the schema's result node, and the
// sibling signals that keyword pairs communicate through (if → then/else,
// contains → minContains/maxContains).
type evalContext struct {
	scope        *DynamicScope
	schemaResult *Result

	ifValid         *bool
	containsIndices []int
	containsSeen    bool
}

func kindIn(kind Kind, kinds []Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
