package jschema

// anyOfKeyword applies every subschema in place; at least one must pass.
// Every subschema is evaluated even after a match, because annotations from
// all passing branches feed the unevaluated keywords.
type anyOfKeyword struct {
	baseKeyword
	subjects []*Schema
}

func (k *anyOfKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	matched := false
	for i, subject := range k.subjects {
		detail := subject.evaluateAt(instance, ctx.scope, result.KeywordLocation.AppendIndex(i))
		result.AddDetail(detail)
		if detail.IsValid() {
			matched = true
		}
	}
	if !matched {
		result.AddError(NewEvaluationError("anyOf", "any_of_mismatch", "Value does not match any of the subschemas"))
	}
}

var anyOfBinding = newSchemaListBinding("anyOf", func(binding *KeywordBinding, schema *Schema, value *Node, subjects []*Schema) Keyword {
	return &anyOfKeyword{baseKeyword: newBase(binding, schema, value), subjects: subjects}
})
