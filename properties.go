package jschema

// propertiesKeyword evaluates named members against their subschemas. Its
// annotation is the set of member names it evaluated on this instance.
type propertiesKeyword struct {
	baseKeyword
	properties map[string]*Schema
}

func (k *propertiesKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	evaluated := []any{}
	failed := []string{}
	for _, name := range instance.Keys() {
		sub, ok := k.properties[name]
		if !ok {
			continue
		}
		member, _ := instance.Member(name)
		detail := sub.evaluateAt(member, ctx.scope, result.KeywordLocation.Append(name))
		result.AddDetail(detail)
		evaluated = append(evaluated, name)
		if !detail.IsValid() {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	result.SetAnnotation(evaluated)
}

var propertiesBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "properties", InstanceKinds: []Kind{KindObject}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindObject {
			return nil, errSchemaKind("properties", "an object")
		}
		kw := &propertiesKeyword{
			baseKeyword: newBase(binding, schema, value),
			properties:  make(map[string]*Schema, value.Len()),
		}
		for _, name := range value.Keys() {
			member, _ := value.Member(name)
			sub, err := cc.compileSubschema(member, schema, "properties", name)
			if err != nil {
				return nil, err
			}
			kw.properties[name] = sub
		}
		return kw, nil
	}
	return binding
}()
