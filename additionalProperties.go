package jschema

// additionalPropertiesKeyword applies its subschema to every member not
// claimed by the sibling properties or patternProperties keywords at the same
// schema node. The annotation is the set of member names it evaluated.
type additionalPropertiesKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *additionalPropertiesKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	var named map[string]*Schema
	if sibling, ok := k.schema.Keyword("properties"); ok {
		named = sibling.(*propertiesKeyword).properties
	}
	var patterns *patternPropertiesKeyword
	if sibling, ok := k.schema.Keyword("patternProperties"); ok {
		patterns = sibling.(*patternPropertiesKeyword)
	}

	evaluated := []any{}
	failed := []string{}
	for _, name := range instance.Keys() {
		if _, claimed := named[name]; claimed {
			continue
		}
		if patterns != nil && patterns.matches(name) {
			continue
		}
		member, _ := instance.Member(name)
		detail := k.subject.evaluateAt(member, ctx.scope, result.KeywordLocation)
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

var additionalPropertiesBinding = func() *KeywordBinding {
	binding := &KeywordBinding{
		Key:           "additionalProperties",
		DependsOn:     []string{"properties", "patternProperties"},
		InstanceKinds: []Kind{KindObject},
	}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "additionalProperties")
		if err != nil {
			return nil, err
		}
		return &additionalPropertiesKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
