package jschema

// ifKeyword evaluates its subschema as a non-asserting scope: the outcome
// selects whether the sibling then or else asserts, but a failing "if" never
// fails the parent. The inner result stays in the tree for verbose output;
// its error state is confined to the subschema visit.
type ifKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *ifKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	detail := k.subject.evaluateAt(instance, ctx.scope, result.KeywordLocation)
	result.AddDetail(detail)
	outcome := detail.IsValid()
	ctx.ifValid = &outcome
}

var ifBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "if"}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "if")
		if err != nil {
			return nil, err
		}
		return &ifKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()

// thenKeyword asserts its subschema when the sibling "if" matched. Without a
// sibling "if" it is inert.
type thenKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *thenKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	if ctx.ifValid == nil || !*ctx.ifValid {
		return
	}
	detail := k.subject.evaluateAt(instance, ctx.scope, result.KeywordLocation)
	result.AddDetail(detail)
	if !detail.IsValid() {
		result.fail()
	}
}

var thenBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "then", DependsOn: []string{"if"}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "then")
		if err != nil {
			return nil, err
		}
		return &thenKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()

// elseKeyword asserts its subschema when the sibling "if" did not match.
type elseKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *elseKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	if ctx.ifValid == nil || *ctx.ifValid {
		return
	}
	detail := k.subject.evaluateAt(instance, ctx.scope, result.KeywordLocation)
	result.AddDetail(detail)
	if !detail.IsValid() {
		result.fail()
	}
}

var elseBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "else", DependsOn: []string{"if"}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "else")
		if err != nil {
			return nil, err
		}
		return &elseKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
