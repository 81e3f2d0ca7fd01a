package jschema

// oneOfKeyword applies every subschema in place; exactly one must pass. The
// error for multiple matches names the passing indexes.
type oneOfKeyword struct {
	baseKeyword
	subjects []*Schema
}

func (k *oneOfKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	passed := []int{}
	for i, subject := range k.subjects {
		detail := subject.evaluateAt(instance, ctx.scope, result.KeywordLocation.AppendIndex(i))
		result.AddDetail(detail)
		if detail.IsValid() {
			passed = append(passed, i)
		}
	}
	switch len(passed) {
	case 1:
		// exactly one match
	case 0:
		result.AddError(NewEvaluationError("oneOf", "one_of_mismatch", "Value does not match any of the subschemas"))
	default:
		result.AddError(NewEvaluationError("oneOf", "one_of_multiple_matches", "Value matches the subschemas at indexes {indexes}, expected exactly one", map[string]any{
			"indexes": joinInts(passed),
		}))
	}
}

var oneOfBinding = newSchemaListBinding("oneOf", func(binding *KeywordBinding, schema *Schema, value *Node, subjects []*Schema) Keyword {
	return &oneOfKeyword{baseKeyword: newBase(binding, schema, value), subjects: subjects}
})
