package jschema

// prefixItemsKeyword (2020-12) applies the n-th subschema to the n-th array
// element. The annotation is the largest index evaluated, or true when the
// whole array is covered.
type prefixItemsKeyword struct {
	baseKeyword
	subjects []*Schema
}

func (k *prefixItemsKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	count := len(k.subjects)
	if instance.Len() < count {
		count = instance.Len()
	}
	failed := []int{}
	for i := 0; i < count; i++ {
		detail := k.subjects[i].evaluateAt(instance.Item(i), ctx.scope, result.KeywordLocation.AppendIndex(i))
		result.AddDetail(detail)
		if !detail.IsValid() {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	if count > 0 {
		if count == instance.Len() {
			result.SetAnnotation(true)
		} else {
			result.SetAnnotation(count - 1)
		}
	}
}

var prefixItemsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "prefixItems", InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindArray || value.Len() == 0 {
			return nil, errSchemaKind("prefixItems", "a non-empty array")
		}
		kw := &prefixItemsKeyword{baseKeyword: newBase(binding, schema, value)}
		for i, item := range value.Items() {
			sub, err := cc.compileSubschema(item, schema, "prefixItems", itoa(i))
			if err != nil {
				return nil, err
			}
			kw.subjects = append(kw.subjects, sub)
		}
		return kw, nil
	}
	return binding
}()
