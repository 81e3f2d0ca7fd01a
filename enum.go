package jschema

// enumKeyword asserts that the instance is JSON-equal to one of the listed
// values.
type enumKeyword struct {
	baseKeyword
	values []*Node
}

func (k *enumKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	for _, value := range k.values {
		if instance.Equal(value) {
			return
		}
	}
	result.AddError(NewEvaluationError("enum", "enum_mismatch", "Value is not one of the allowed values"))
}

var enumBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "enum"}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindArray || value.Len() == 0 {
			return nil, errSchemaKind("enum", "a non-empty array")
		}
		return &enumKeyword{baseKeyword: newBase(binding, schema, value), values: value.Items()}, nil
	}
	return binding
}()
