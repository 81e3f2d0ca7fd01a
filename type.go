package jschema

import "strings"

// typeKeyword asserts the instance's JSON type against a type name or a list
// of type names. "integer" matches any number with a zero fractional part,
// so 1.0 is an integer while true never is.
type typeKeyword struct {
	baseKeyword
	types []string
}

func (k *typeKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	actual := instanceTypeName(instance)
	for _, want := range k.types {
		if want == actual || (want == "number" && actual == "integer") {
			return
		}
	}
	result.AddError(NewEvaluationError("type", "type_mismatch", "Value is {actual} but should be {expected}", map[string]any{
		"actual":   actual,
		"expected": strings.Join(k.types, " or "),
	}))
}

var validTypeNames = map[string]bool{
	"null": true, "boolean": true, "number": true, "integer": true,
	"string": true, "array": true, "object": true,
}

var typeBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "type"}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		kw := &typeKeyword{baseKeyword: newBase(binding, schema, value)}
		switch value.Kind() {
		case KindString:
			kw.types = []string{value.Text()}
		case KindArray:
			for _, item := range value.Items() {
				if item.Kind() != KindString {
					return nil, errSchemaKind("type", "a string or an array of strings")
				}
				kw.types = append(kw.types, item.Text())
			}
		default:
			return nil, errSchemaKind("type", "a string or an array of strings")
		}
		for _, name := range kw.types {
			if !validTypeNames[name] {
				return nil, errSchemaKind("type", "one of null, boolean, number, integer, string, array, object")
			}
		}
		return kw, nil
	}
	return binding
}()
