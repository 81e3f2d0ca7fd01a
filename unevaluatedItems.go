package jschema

// unevaluatedItemsKeyword applies its subschema to every array element no
// other keyword successfully evaluated, reading sibling annotations from the
// result tree the same way unevaluatedProperties does. Index coverage comes
// from prefixItems/items/additionalItems (largest index or true) and from
// the contains match list.
type unevaluatedItemsKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *unevaluatedItemsKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	location := instance.Path()
	covered := 0
	all := false
	matched := map[int]bool{}
	for _, source := range k.binding.ConsumesAnnotations {
		for _, annotation := range ctx.schemaResult.collectAnnotations(source, location, nil) {
			switch value := annotation.(type) {
			case bool:
				if value {
					all = true
				}
			case int:
				if value+1 > covered {
					covered = value + 1
				}
			case []any:
				// contains reports the matched indices
				for _, index := range value {
					if i, ok := index.(int); ok {
						matched[i] = true
					}
				}
			}
		}
	}
	if all {
		return
	}

	failed := []int{}
	applied := false
	for i := covered; i < instance.Len(); i++ {
		if matched[i] {
			continue
		}
		detail := k.subject.evaluateAt(instance.Item(i), ctx.scope, result.KeywordLocation)
		result.AddDetail(detail)
		applied = true
		if !detail.IsValid() {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	if applied {
		result.SetAnnotation(true)
	}
}

var unevaluatedItemsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{
		Key: "unevaluatedItems",
		DependsOn: []string{
			"prefixItems", "items", "additionalItems", "contains",
			"$ref", "$dynamicRef", "$recursiveRef",
			"allOf", "anyOf", "oneOf", "not", "if", "then", "else", "dependentSchemas",
		},
		InstanceKinds:       []Kind{KindArray},
		ConsumesAnnotations: []string{"prefixItems", "items", "additionalItems", "unevaluatedItems", "contains"},
	}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "unevaluatedItems")
		if err != nil {
			return nil, err
		}
		return &unevaluatedItemsKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
