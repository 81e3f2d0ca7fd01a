package jschema

// itemsKeyword (2020-12) applies one subschema to every array element after
// the sibling prefixItems. The annotation is true when it applied to any
// element, meaning every remaining element was evaluated.
type itemsKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *itemsKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	start := 0
	if sibling, ok := k.schema.Keyword("prefixItems"); ok {
		start = len(sibling.(*prefixItemsKeyword).subjects)
	}
	if start >= instance.Len() {
		return
	}
	failed := []int{}
	for i := start; i < instance.Len(); i++ {
		detail := k.subject.evaluateAt(instance.Item(i), ctx.scope, result.KeywordLocation)
		result.AddDetail(detail)
		if !detail.IsValid() {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	result.SetAnnotation(true)
}

var itemsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "items", DependsOn: []string{"prefixItems"}, InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "items")
		if err != nil {
			return nil, err
		}
		return &itemsKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()

// legacyItemsKeyword (2019-09) covers both forms of "items": a single schema
// applied to every element, or an array of schemas applied positionally with
// "additionalItems" taking over beyond the array.
type legacyItemsKeyword struct {
	baseKeyword
	single     *Schema
	positional []*Schema
}

func (k *legacyItemsKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	failed := []int{}
	if k.single != nil {
		for i := 0; i < instance.Len(); i++ {
			detail := k.single.evaluateAt(instance.Item(i), ctx.scope, result.KeywordLocation)
			result.AddDetail(detail)
			if !detail.IsValid() {
				failed = append(failed, i)
			}
		}
		if len(failed) > 0 {
			result.fail()
			return
		}
		if instance.Len() > 0 {
			result.SetAnnotation(true)
		}
		return
	}

	count := len(k.positional)
	if instance.Len() < count {
		count = instance.Len()
	}
	for i := 0; i < count; i++ {
		detail := k.positional[i].evaluateAt(instance.Item(i), ctx.scope, result.KeywordLocation.AppendIndex(i))
		result.AddDetail(detail)
		if !detail.IsValid() {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	if count > 0 {
		if count == instance.Len() {
			result.SetAnnotation(true)
		} else {
			result.SetAnnotation(count - 1)
		}
	}
}

// positionalCount reports how many leading elements the array form claims;
// additionalItems starts there.
func (k *legacyItemsKeyword) positionalCount() (int, bool) {
	if k.single != nil {
		return 0, false
	}
	return len(k.positional), true
}

var legacyItemsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "items", InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		kw := &legacyItemsKeyword{baseKeyword: newBase(binding, schema, value)}
		if value.Kind() == KindArray {
			if value.Len() == 0 {
				return nil, errSchemaKind("items", "a schema or a non-empty array of schemas")
			}
			for i, item := range value.Items() {
				sub, err := cc.compileSubschema(item, schema, "items", itoa(i))
				if err != nil {
					return nil, err
				}
				kw.positional = append(kw.positional, sub)
			}
			return kw, nil
		}
		single, err := cc.compileSubschema(value, schema, "items")
		if err != nil {
			return nil, err
		}
		kw.single = single
		return kw, nil
	}
	return binding
}()

// additionalItemsKeyword (2019-09) applies beyond the positional "items"
// schemas; it is inert when "items" is absent or in its single-schema form.
type additionalItemsKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *additionalItemsKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	sibling, ok := k.schema.Keyword("items")
	if !ok {
		return
	}
	start, positional := sibling.(*legacyItemsKeyword).positionalCount()
	if !positional || start >= instance.Len() {
		return
	}
	failed := []int{}
	for i := start; i < instance.Len(); i++ {
		detail := k.subject.evaluateAt(instance.Item(i), ctx.scope, result.KeywordLocation)
		result.AddDetail(detail)
		if !detail.IsValid() {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	result.SetAnnotation(true)
}

var additionalItemsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "additionalItems", DependsOn: []string{"items"}, InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "additionalItems")
		if err != nil {
			return nil, err
		}
		return &additionalItemsKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
