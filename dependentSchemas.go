package jschema

// dependentSchemasKeyword applies each named subschema in place when the
// instance object has the corresponding member.
type dependentSchemasKeyword struct {
	baseKeyword
	dependents map[string]*Schema
	order      []string
}

func (k *dependentSchemasKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	failed := []string{}
	for _, name := range k.order {
		if _, present := instance.Member(name); !present {
			continue
		}
		detail := k.dependents[name].evaluateAt(instance, ctx.scope, result.KeywordLocation.Append(name))
		result.AddDetail(detail)
		if !detail.IsValid() {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		result.fail()
	}
}

var dependentSchemasBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "dependentSchemas", InstanceKinds: []Kind{KindObject}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindObject {
			return nil, errSchemaKind("dependentSchemas", "an object")
		}
		kw := &dependentSchemasKeyword{
			baseKeyword: newBase(binding, schema, value),
			dependents:  make(map[string]*Schema, value.Len()),
			order:       value.Keys(),
		}
		for _, name := range value.Keys() {
			member, _ := value.Member(name)
			sub, err := cc.compileSubschema(member, schema, "dependentSchemas", name)
			if err != nil {
				return nil, err
			}
			kw.dependents[name] = sub
		}
		return kw, nil
	}
	return binding
}()
