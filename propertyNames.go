package jschema

// propertyNamesKeyword applies its subschema to every member name of the
// object, treated as a string instance.
type propertyNamesKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *propertyNamesKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	failed := []string{}
	for _, name := range instance.Keys() {
		nameNode := &Node{kind: KindString, text: name, parent: instance, key: name}
		detail := k.subject.evaluateAt(nameNode, ctx.scope, result.KeywordLocation)
		result.AddDetail(detail)
		if !detail.IsValid() {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		result.fail()
	}
}

var propertyNamesBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "propertyNames", InstanceKinds: []Kind{KindObject}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "propertyNames")
		if err != nil {
			return nil, err
		}
		return &propertyNamesKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
