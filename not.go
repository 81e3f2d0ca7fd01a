package jschema

// notKeyword inverts its subschema: the instance is valid when the subschema
// fails. Annotations from the inner evaluation never escape, because the
// inner result is either failing (dropped) or makes this keyword fail.
type notKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *notKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	detail := k.subject.evaluateAt(instance, ctx.scope, result.KeywordLocation)
	result.AddDetail(detail)
	if detail.IsValid() {
		result.AddError(NewEvaluationError("not", "not_mismatch", "Value matches the schema it must not match"))
	}
}

var notBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "not"}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "not")
		if err != nil {
			return nil, err
		}
		return &notKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
