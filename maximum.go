package jschema

// maximumKeyword asserts an inclusive upper bound on numbers.
type maximumKeyword struct {
	baseKeyword
	bound *Rat
}

func (k *maximumKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Number().Cmp(k.bound.Rat) > 0 {
		result.AddError(NewEvaluationError("maximum", "maximum_mismatch", "{value} should be at most {maximum}", map[string]any{
			"value":   FormatRat(instance.Number()),
			"maximum": FormatRat(k.bound),
		}))
	}
}

var maximumBinding = newNumericBoundBinding("maximum", func(binding *KeywordBinding, schema *Schema, value *Node) Keyword {
	return &maximumKeyword{baseKeyword: newBase(binding, schema, value), bound: value.Number()}
})

// newNumericBoundBinding covers the shared compile shape of the four numeric
// bound keywords: a single number.
func newNumericBoundBinding(key string, build func(*KeywordBinding, *Schema, *Node) Keyword) *KeywordBinding {
	binding := &KeywordBinding{Key: key, InstanceKinds: []Kind{KindNumber}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindNumber {
			return nil, errSchemaKind(key, "a number")
		}
		return build(binding, schema, value), nil
	}
	return binding
}
