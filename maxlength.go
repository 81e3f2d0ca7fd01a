package jschema

import "unicode/utf8"

// maxLengthKeyword asserts an upper bound on string length, counted in
// Unicode code points.
type maxLengthKeyword struct {
	baseKeyword
	maximum int
}

func (k *maxLengthKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if utf8.RuneCountInString(instance.Text()) > k.maximum {
		result.AddError(NewEvaluationError("maxLength", "max_length_mismatch", "Value should be at most {maximum} characters", map[string]any{
			"maximum": k.maximum,
		}))
	}
}

var maxLengthBinding = newCountBinding("maxLength", []Kind{KindString}, func(binding *KeywordBinding, schema *Schema, value *Node, n int) Keyword {
	return &maxLengthKeyword{baseKeyword: newBase(binding, schema, value), maximum: n}
})
