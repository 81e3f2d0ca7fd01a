package jschema

// minItemsKeyword asserts a lower bound on array length.
type minItemsKeyword struct {
	baseKeyword
	minimum int
}

func (k *minItemsKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Len() < k.minimum {
		result.AddError(NewEvaluationError("minItems", "min_items_mismatch", "Array should have at least {minimum} items", map[string]any{
			"minimum": k.minimum,
		}))
	}
}

var minItemsBinding = newCountBinding("minItems", []Kind{KindArray}, func(binding *KeywordBinding, schema *Schema, value *Node, n int) Keyword {
	return &minItemsKeyword{baseKeyword: newBase(binding, schema, value), minimum: n}
})
