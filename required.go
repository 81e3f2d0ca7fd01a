package jschema

// requiredKeyword asserts the presence of the listed members.
type requiredKeyword struct {
	baseKeyword
	names []string
}

func (k *requiredKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	missing := []string{}
	for _, name := range k.names {
		if _, present := instance.Member(name); !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		result.AddError(NewEvaluationError("required", "required_mismatch", "Required properties {properties} are missing", map[string]any{
			"properties": quoteList(missing),
		}))
	}
}

var requiredBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "required", InstanceKinds: []Kind{KindObject}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		names, err := stringList("required", value)
		if err != nil {
			return nil, err
		}
		return &requiredKeyword{baseKeyword: newBase(binding, schema, value), names: names}, nil
	}
	return binding
}()

// stringList reads a keyword value that must be an array of strings.
func stringList(key string, value *Node) ([]string, error) {
	if value.Kind() != KindArray {
		return nil, errSchemaKind(key, "an array of strings")
	}
	names := make([]string, 0, value.Len())
	for _, item := range value.Items() {
		if item.Kind() != KindString {
			return nil, errSchemaKind(key, "an array of strings")
		}
		names = append(names, item.Text())
	}
	return names, nil
}
