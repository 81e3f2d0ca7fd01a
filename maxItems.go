package jschema

// maxItemsKeyword asserts an upper bound on array length.
type maxItemsKeyword struct {
	baseKeyword
	maximum int
}

func (k *maxItemsKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Len() > k.maximum {
		result.AddError(NewEvaluationError("maxItems", "max_items_mismatch", "Array should have at most {maximum} items", map[string]any{
			"maximum": k.maximum,
		}))
	}
}

var maxItemsBinding = newCountBinding("maxItems", []Kind{KindArray}, func(binding *KeywordBinding, schema *Schema, value *Node, n int) Keyword {
	return &maxItemsKeyword{baseKeyword: newBase(binding, schema, value), maximum: n}
})
