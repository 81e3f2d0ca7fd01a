package jschema

// allOfKeyword applies every subschema in place; all must pass.
type allOfKeyword struct {
	baseKeyword
	subjects []*Schema
}

func (k *allOfKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	failed := []int{}
	for i, subject := range k.subjects {
		detail := subject.evaluateAt(instance, ctx.scope, result.KeywordLocation.AppendIndex(i))
		result.AddDetail(detail)
		if !detail.IsValid() {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		result.fail()
	}
}

var allOfBinding = newSchemaListBinding("allOf", func(binding *KeywordBinding, schema *Schema, value *Node, subjects []*Schema) Keyword {
	return &allOfKeyword{baseKeyword: newBase(binding, schema, value), subjects: subjects}
})

// newSchemaListBinding covers the shared compile shape of allOf, anyOf and
// oneOf: a non-empty array of subschemas.
func newSchemaListBinding(key string, build func(*KeywordBinding, *Schema, *Node, []*Schema) Keyword) *KeywordBinding {
	binding := &KeywordBinding{Key: key}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindArray || value.Len() == 0 {
			return nil, errSchemaKind(key, "a non-empty array of schemas")
		}
		subjects := make([]*Schema, 0, value.Len())
		for i, item := range value.Items() {
			sub, err := cc.compileSubschema(item, schema, key, itoa(i))
			if err != nil {
				return nil, err
			}
			subjects = append(subjects, sub)
		}
		return build(binding, schema, value, subjects), nil
	}
	return binding
}
