package jschema

import "unicode/utf8"

// minLengthKeyword asserts a lower bound on string length, counted in
// Unicode code points.
type minLengthKeyword struct {
	baseKeyword
	minimum int
}

func (k *minLengthKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if utf8.RuneCountInString(instance.Text()) < k.minimum {
		result.AddError(NewEvaluationError("minLength", "min_length_mismatch", "Value should be at least {minimum} characters", map[string]any{
			"minimum": k.minimum,
		}))
	}
}

var minLengthBinding = newCountBinding("minLength", []Kind{KindString}, func(binding *KeywordBinding, schema *Schema, value *Node, n int) Keyword {
	return &minLengthKeyword{baseKeyword: newBase(binding, schema, value), minimum: n}
})

// newCountBinding covers the shared compile shape of the counting keywords:
// a non-negative integer.
func newCountBinding(key string, kinds []Kind, build func(*KeywordBinding, *Schema, *Node, int) Keyword) *KeywordBinding {
	binding := &KeywordBinding{Key: key, InstanceKinds: kinds}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		n, ok := keywordInt(value)
		if !ok || n < 0 {
			return nil, errSchemaKind(key, "a non-negative integer")
		}
		return build(binding, schema, value, n), nil
	}
	return binding
}
