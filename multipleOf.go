package jschema

import "math/big"

// multipleOfKeyword asserts exact divisibility. The arithmetic runs on Rats,
// so a 0.1 read from text divides 5.1 without floating-point residue.
type multipleOfKeyword struct {
	baseKeyword
	divisor *Rat
}

func (k *multipleOfKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	quotient := new(big.Rat).Quo(instance.Number().Rat, k.divisor.Rat)
	if !quotient.IsInt() {
		result.AddError(NewEvaluationError("multipleOf", "not_multiple_of", "{value} should be a multiple of {multiple_of}", map[string]any{
			"value":       FormatRat(instance.Number()),
			"multiple_of": FormatRat(k.divisor),
		}))
	}
}

var multipleOfBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "multipleOf", InstanceKinds: []Kind{KindNumber}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindNumber || value.Number().Sign() <= 0 {
			return nil, errSchemaKind("multipleOf", "a number strictly greater than 0")
		}
		return &multipleOfKeyword{baseKeyword: newBase(binding, schema, value), divisor: value.Number()}, nil
	}
	return binding
}()
