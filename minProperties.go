package jschema

// minPropertiesKeyword asserts a lower bound on object member count.
type minPropertiesKeyword struct {
	baseKeyword
	minimum int
}

func (k *minPropertiesKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Len() < k.minimum {
		result.AddError(NewEvaluationError("minProperties", "min_properties_mismatch", "Object should have at least {minimum} properties", map[string]any{
			"minimum": k.minimum,
		}))
	}
}

var minPropertiesBinding = newCountBinding("minProperties", []Kind{KindObject}, func(binding *KeywordBinding, schema *Schema, value *Node, n int) Keyword {
	return &minPropertiesKeyword{baseKeyword: newBase(binding, schema, value), minimum: n}
})
