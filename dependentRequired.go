package jschema

// dependentRequiredKeyword asserts that when a trigger member is present, its
// listed dependencies are present too.
type dependentRequiredKeyword struct {
	baseKeyword
	dependencies map[string][]string
	order        []string
}

func (k *dependentRequiredKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	missing := []string{}
	for _, trigger := range k.order {
		if _, present := instance.Member(trigger); !present {
			continue
		}
		for _, dependency := range k.dependencies[trigger] {
			if _, present := instance.Member(dependency); !present {
				missing = append(missing, dependency)
			}
		}
	}
	if len(missing) > 0 {
		result.AddError(NewEvaluationError("dependentRequired", "dependent_required_mismatch", "Properties {properties} are required by present properties", map[string]any{
			"properties": quoteList(missing),
		}))
	}
}

var dependentRequiredBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "dependentRequired", InstanceKinds: []Kind{KindObject}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindObject {
			return nil, errSchemaKind("dependentRequired", "an object of string arrays")
		}
		kw := &dependentRequiredKeyword{
			baseKeyword:  newBase(binding, schema, value),
			dependencies: make(map[string][]string, value.Len()),
			order:        value.Keys(),
		}
		for _, trigger := range value.Keys() {
			member, _ := value.Member(trigger)
			names, err := stringList("dependentRequired", member)
			if err != nil {
				return nil, err
			}
			kw.dependencies[trigger] = names
		}
		return kw, nil
	}
	return binding
}()
