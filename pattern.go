package jschema

import (
	"fmt"
	"regexp"
)

// patternKeyword asserts that a string matches the regular expression
// anywhere (not anchored).
type patternKeyword struct {
	baseKeyword
	regexp *regexp.Regexp
}

func (k *patternKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if !k.regexp.MatchString(instance.Text()) {
		result.AddError(NewEvaluationError("pattern", "pattern_mismatch", "Value does not match the pattern {pattern}", map[string]any{
			"pattern": k.regexp.String(),
		}))
	}
}

var patternBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "pattern", InstanceKinds: []Kind{KindString}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindString {
			return nil, errSchemaKind("pattern", "a string")
		}
		re, err := regexp.Compile(value.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pattern %q: %w", ErrSchema, value.Text(), err)
		}
		return &patternKeyword{baseKeyword: newBase(binding, schema, value), regexp: re}, nil
	}
	return binding
}()
