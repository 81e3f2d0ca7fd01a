package jschema

// maxPropertiesKeyword asserts an upper bound on object member count.
type maxPropertiesKeyword struct {
	baseKeyword
	maximum int
}

func (k *maxPropertiesKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if instance.Len() > k.maximum {
		result.AddError(NewEvaluationError("maxProperties", "max_properties_mismatch", "Object should have at most {maximum} properties", map[string]any{
			"maximum": k.maximum,
		}))
	}
}

var maxPropertiesBinding = newCountBinding("maxProperties", []Kind{KindObject}, func(binding *KeywordBinding, schema *Schema, value *Node, n int) Keyword {
	return &maxPropertiesKeyword{baseKeyword: newBase(binding, schema, value), maximum: n}
})
