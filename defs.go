package jschema

// defsKeyword compiles every member of "$defs" (or the legacy "definitions")
// so that references can target them; it asserts nothing itself.
type defsKeyword struct {
	baseKeyword
	definitions map[string]*Schema
}

func (k *defsKeyword) Evaluate(_ *evalContext, _ *Node, _ *Result) {}

var defsBinding = newDefsBinding("$defs")
var definitionsBinding = newDefsBinding("definitions")

func newDefsBinding(key string) *KeywordBinding {
	binding := &KeywordBinding{Key: key, Static: true}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindObject {
			return nil, errSchemaKind(key, "an object")
		}
		kw := &defsKeyword{
			baseKeyword: newBase(binding, schema, value),
			definitions: make(map[string]*Schema, value.Len()),
		}
		for _, name := range value.Keys() {
			member, _ := value.Member(name)
			sub, err := cc.compileSubschema(member, schema, key, name)
			if err != nil {
				return nil, err
			}
			kw.definitions[name] = sub
		}
		return kw, nil
	}
	return binding
}
