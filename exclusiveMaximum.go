package jschema

// exclusiveMaximumKeyword asserts a strict upper bound on numbers.
type exclusiveMaximumKeyword struct {
	baseKeyword
	bound *Rat
}

func (k *exclusiveMaximumKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Number().Cmp(k.bound.Rat) >= 0 {
		result.AddError(NewEvaluationError("exclusiveMaximum", "exclusive_maximum_mismatch", "{value} should be less than {exclusive_maximum}", map[string]any{
			"value":             FormatRat(instance.Number()),
			"exclusive_maximum": FormatRat(k.bound),
		}))
	}
}

var exclusiveMaximumBinding = newNumericBoundBinding("exclusiveMaximum", func(binding *KeywordBinding, schema *Schema, value *Node) Keyword {
	return &exclusiveMaximumKeyword{baseKeyword: newBase(binding, schema, value), bound: value.Number()}
})
