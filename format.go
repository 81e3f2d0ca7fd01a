package jschema

// formatKeyword always annotates with the format name. It asserts only when
// the catalog has the format enabled; the registered validator's error text
// is carried into the assertion error.
type formatKeyword struct {
	baseKeyword
	name string
}

func (k *formatKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	result.SetAnnotation(k.name)

	validator, asserted := k.schema.catalog.formatAsserted(k.name)
	if !asserted {
		return
	}
	if err := validator(instance.Interface()); err != nil {
		result.AddError(NewEvaluationError("format", "format_mismatch", "Value does not match format {format}: {error}", map[string]any{
			"format": k.name,
			"error":  err.Error(),
		}))
	}
}

var formatBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "format"}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindString {
			return nil, errSchemaKind("format", "a string")
		}
		return &formatKeyword{baseKeyword: newBase(binding, schema, value), name: value.Text()}, nil
	}
	return binding
}()
