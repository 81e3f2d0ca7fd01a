package jschema

import (
	"fmt"
	"regexp"
)

// patternPropertiesKeyword evaluates members whose names match the compiled
// patterns. A member name can match several patterns; it is evaluated against
// each. The annotation is the set of member names matched.
type patternPropertiesKeyword struct {
	baseKeyword
	patterns []compiledPattern
}

type compiledPattern struct {
	source  string
	regexp  *regexp.Regexp
	subject *Schema
}

func (k *patternPropertiesKeyword) Evaluate(ctx *evalContext, instance *Node, result *Result) {
	evaluated := []any{}
	seen := map[string]bool{}
	failed := []string{}
	for _, name := range instance.Keys() {
		member, _ := instance.Member(name)
		for _, pattern := range k.patterns {
			if !pattern.regexp.MatchString(name) {
				continue
			}
			detail := pattern.subject.evaluateAt(member, ctx.scope, result.KeywordLocation.Append(pattern.source))
			result.AddDetail(detail)
			if !seen[name] {
				seen[name] = true
				evaluated = append(evaluated, name)
			}
			if !detail.IsValid() {
				failed = append(failed, name)
			}
		}
	}
	if len(failed) > 0 {
		result.fail()
		return
	}
	result.SetAnnotation(evaluated)
}

// matches reports whether any pattern matches the member name; the
// additionalProperties sibling uses it to find the leftover names.
func (k *patternPropertiesKeyword) matches(name string) bool {
	for _, pattern := range k.patterns {
		if pattern.regexp.MatchString(name) {
			return true
		}
	}
	return false
}

var patternPropertiesBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "patternProperties", InstanceKinds: []Kind{KindObject}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindObject {
			return nil, errSchemaKind("patternProperties", "an object")
		}
		kw := &patternPropertiesKeyword{baseKeyword: newBase(binding, schema, value)}
		for _, source := range value.Keys() {
			member, _ := value.Member(source)
			re, err := regexp.Compile(source)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid pattern %q: %w", ErrSchema, source, err)
			}
			sub, err := cc.compileSubschema(member, schema, "patternProperties", source)
			if err != nil {
				return nil, err
			}
			kw.patterns = append(kw.patterns, compiledPattern{source: source, regexp: re, subject: sub})
		}
		return kw, nil
	}
	return binding
}()
