package jschema

// constKeyword asserts that the instance is JSON-equal to the given value.
type constKeyword struct {
	baseKeyword
}

func (k *constKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	if !instance.Equal(k.value) {
		result.AddError(NewEvaluationError("const", "const_mismatch", "Value does not equal the required constant"))
	}
}

var constBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "const"}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		return &constKeyword{baseKeyword: newBase(binding, schema, value)}, nil
	}
	return binding
}()
