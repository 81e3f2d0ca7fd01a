package jschema

// uniqueItemsKeyword asserts pairwise inequality of array elements under JSON
// equality, so [1, 1.0] is a duplicate while [1, true] is not.
type uniqueItemsKeyword struct {
	baseKeyword
}

func (k *uniqueItemsKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	items := instance.Items()
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[i].Equal(items[j]) {
				result.AddError(NewEvaluationError("uniqueItems", "unique_items_mismatch", "Items at indexes {first} and {second} are equal", map[string]any{
					"first":  i,
					"second": j,
				}))
				return
			}
		}
	}
}

var uniqueItemsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "uniqueItems", InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindBoolean {
			return nil, errSchemaKind("uniqueItems", "a boolean")
		}
		if !value.Bool() {
			return &staticKeyword{newBase(binding, schema, value)}, nil
		}
		return &uniqueItemsKeyword{newBase(binding, schema, value)}, nil
	}
	return binding
}()
