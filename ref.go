package jschema

import (
	"fmt"
	"strings"
)

type refMode int

const (
	staticRef refMode = iota
	dynamicRef
	recursiveRef
)

// refKeyword implements $ref, $dynamicRef and $recursiveRef. The target URI
// is computed at compile time and always queued on the catalog's
// deferred-resolution queue; it is bound when the catalog resolves that
// queue, even when the target is already cached at compile time. The dynamic
// variants re-target at evaluation time through the dynamic scope.
type refKeyword struct {
	baseKeyword
	mode       refMode
	target     string
	anchorName string
	resolved   *Schema
}

func (k *refKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	target := k.resolved
	if target == nil {
		result.AddError(NewEvaluationError(k.binding.Key, "unresolved_reference", "Reference {reference} is not resolved", map[string]any{
			"reference": k.target,
		}))
		return
	}

	switch k.mode {
	case dynamicRef:
		// dynamic behavior only when the statically bound target is itself a
		// matching $dynamicAnchor; then the outermost declaring scope wins
		if k.anchorName != "" {
			if entry, ok := target.resourceRoot.anchors[k.anchorName]; ok && entry.dynamic {
				if outer := ctx.scope.LookupDynamicAnchor(k.anchorName); outer != nil {
					target = outer
				}
			}
		}
	case recursiveRef:
		if target.resourceRoot.recursiveAnchor {
			if outer := ctx.scope.LookupRecursiveAnchor(); outer != nil {
				target = outer
			}
		}
	}

	sub := target.evaluateAt(instance, ctx.scope, result.KeywordLocation)
	result.AddDetail(sub)
	if !sub.IsValid() {
		result.fail()
	}
}

var refBinding = newRefBinding("$ref", staticRef)
var dynamicRefBinding = newRefBinding("$dynamicRef", dynamicRef)
var recursiveRefBinding = newRefBinding("$recursiveRef", recursiveRef)

func newRefBinding(key string, mode refMode) *KeywordBinding {
	binding := &KeywordBinding{Key: key}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindString {
			return nil, errSchemaKind(key, "a string")
		}
		reference := value.Text()
		if mode == recursiveRef && reference != "#" {
			return nil, fmt.Errorf("%w: %q must be \"#\"", ErrSchema, key)
		}

		target, err := resolveURI(schema.baseURI, reference)
		if err != nil {
			return nil, err
		}

		kw := &refKeyword{
			baseKeyword: newBase(binding, schema, value),
			mode:        mode,
			target:      target,
		}
		if _, fragment := splitFragment(target); fragment != "" && !strings.HasPrefix(fragment, "/") {
			kw.anchorName = fragment
		}
		cc.catalog.deferReference(cc.cacheID, kw)
		return kw, nil
	}
	return binding
}
