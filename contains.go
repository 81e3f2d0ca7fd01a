package jschema

// containsKeyword applies its subschema to every array element and requires
// at least one match (unless a sibling minContains relaxes that to zero). The
// annotation is the list of matching indices; minContains and maxContains
// read the match count through the shared evaluation context.
type containsKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *containsKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	matched := []int{}
	for i := 0; i < instance.Len(); i++ {
		detail := k.subject.evaluateAt(instance.Item(i), ctx.scope, result.KeywordLocation)
		result.AddDetail(detail)
		if detail.IsValid() {
			matched = append(matched, i)
		}
	}
	ctx.containsSeen = true
	ctx.containsIndices = matched

	// with a sibling minContains the count assertion is entirely its call
	if _, delegated := k.schema.Keyword("minContains"); !delegated && len(matched) == 0 {
		result.AddError(NewEvaluationError("contains", "contains_mismatch", "No items match the contains schema"))
		return
	}

	annotation := make([]any, len(matched))
	for i, index := range matched {
		annotation[i] = index
	}
	result.SetAnnotation(annotation)
}

var containsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "contains", InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "contains")
		if err != nil {
			return nil, err
		}
		return &containsKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()

// minContainsKeyword asserts the lower bound on contains matches. The count
// check itself happens here; containsKeyword only suppresses its own default
// minimum of one.
type minContainsKeyword struct {
	baseKeyword
	minimum int
}

func (k *minContainsKeyword) Evaluate(ctx *evalContext, _ *Node, result *Result) {
	if !ctx.containsSeen {
		return
	}
	if len(ctx.containsIndices) < k.minimum {
		result.AddError(NewEvaluationError("minContains", "min_contains_mismatch", "Found {found} items matching contains, expected at least {minimum}", map[string]any{
			"found":   len(ctx.containsIndices),
			"minimum": k.minimum,
		}))
	}
}

var minContainsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "minContains", DependsOn: []string{"contains"}, InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		n, ok := keywordInt(value)
		if !ok || n < 0 {
			return nil, errSchemaKind("minContains", "a non-negative integer")
		}
		return &minContainsKeyword{baseKeyword: newBase(binding, schema, value), minimum: n}, nil
	}
	return binding
}()

// maxContainsKeyword asserts the upper bound on contains matches.
type maxContainsKeyword struct {
	baseKeyword
	maximum int
}

func (k *maxContainsKeyword) Evaluate(ctx *evalContext, _ *Node, result *Result) {
	if !ctx.containsSeen {
		return
	}
	if len(ctx.containsIndices) > k.maximum {
		result.AddError(NewEvaluationError("maxContains", "max_contains_mismatch", "Found {found} items matching contains, expected at most {maximum}", map[string]any{
			"found":   len(ctx.containsIndices),
			"maximum": k.maximum,
		}))
	}
}

var maxContainsBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "maxContains", DependsOn: []string{"contains"}, InstanceKinds: []Kind{KindArray}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		n, ok := keywordInt(value)
		if !ok || n < 0 {
			return nil, errSchemaKind("maxContains", "a non-negative integer")
		}
		return &maxContainsKeyword{baseKeyword: newBase(binding, schema, value), maximum: n}, nil
	}
	return binding
}()
