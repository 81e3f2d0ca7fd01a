package jschema

// minimumKeyword asserts an inclusive lower bound on numbers.
type minimumKeyword struct {
	baseKeyword
	bound *Rat
}

func (k *minimumKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Number().Cmp(k.bound.Rat) < 0 {
		result.AddError(NewEvaluationError("minimum", "minimum_mismatch", "{value} should be at least {minimum}", map[string]any{
			"value":   FormatRat(instance.Number()),
			"minimum": FormatRat(k.bound),
		}))
	}
}

var minimumBinding = newNumericBoundBinding("minimum", func(binding *KeywordBinding, schema *Schema, value *Node) Keyword {
	return &minimumKeyword{baseKeyword: newBase(binding, schema, value), bound: value.Number()}
})
