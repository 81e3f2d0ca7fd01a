package jschema

// unevaluatedPropertiesKeyword applies its subschema to every member that no
// other keyword successfully evaluated, at this schema node or through any
// in-place applicator beneath it ($ref, allOf, anyOf, oneOf, if/then/else,
// dependentSchemas). It reads sibling annotations from the result tree by
// keyword name, never by schema traversal.
type unevaluatedPropertiesKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *unevaluatedPropertiesKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	evaluated := map[string]bool{}
	location := instance.Path()
	for _, source := range k.binding.ConsumesAnnotations {
		for _, annotation := range ctx.schemaResult.collectAnnotations(source, location, nil) {
			names, ok := annotation.([]any)
			if !ok {
				continue
			}
			for _, name := range names {
				if s, ok := name.(string); ok {
					evaluated[s] = true
				}
			}
		}
	}

	claimed := []any{}
	failed := []string{}
	for _, name := range instance.Keys() {
		if evaluated[name] {
			continue
		}
		member, _ := instance.Member(name)
		detail := k.subject.evaluateAt(member, ctx.scope, result.KeywordLocation)
		result.AddDetail(detail)
		claimed = append(claimed, name)
		if !detail.IsValid() {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	result.SetAnnotation(claimed)
}

var unevaluatedPropertiesBinding = func() *KeywordBinding {
	binding := &KeywordBinding{
		Key: "unevaluatedProperties",
		DependsOn: []string{
			"properties", "patternProperties", "additionalProperties",
			"$ref", "$dynamicRef", "$recursiveRef",
			"allOf", "anyOf", "oneOf", "not", "if", "then", "else", "dependentSchemas",
		},
		InstanceKinds:       []Kind{KindObject},
		ConsumesAnnotations: []string{"properties", "patternProperties", "additionalProperties", "unevaluatedProperties"},
	}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "unevaluatedProperties")
		if err != nil {
			return nil, err
		}
		return &unevaluatedPropertiesKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
