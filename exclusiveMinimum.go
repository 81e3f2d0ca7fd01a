package jschema

// exclusiveMinimumKeyword asserts a strict lower bound on numbers.
type exclusiveMinimumKeyword struct {
	baseKeyword
	bound *Rat
}

func (k *exclusiveMinimumKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Number().Cmp(k.bound.Rat) <= 0 {
		result.AddError(NewEvaluationError("exclusiveMinimum", "exclusive_minimum_mismatch", "{value} should be greater than {exclusive_minimum}", map[string]any{
			"value":             FormatRat(instance.Number()),
			"exclusive_minimum": FormatRat(k.bound),
		}))
	}
}

var exclusiveMinimumBinding = newNumericBoundBinding("exclusiveMinimum", func(binding *KeywordBinding, schema *Schema, value *Node) Keyword {
	return &exclusiveMinimumKeyword{baseKeyword: newBase(binding, schema, value), bound: value.Number()}
})
