package jschema

// Static core keywords. Their values are consumed during compilation
// (identifier wiring, anchor collection, vocabulary selection); at evaluation
// time they contribute nothing.

var idBinding = staticBinding("$id")
var schemaBinding = staticBinding("$schema")
var vocabularyBinding = staticBinding("$vocabulary")
var commentBinding = staticBinding("$comment")
var anchorBinding = staticBinding("$anchor")
var dynamicAnchorBinding = staticBinding("$dynamicAnchor")
var recursiveAnchorBinding = staticBinding("$recursiveAnchor")

func staticBinding(key string) *KeywordBinding {
	binding := &KeywordBinding{Key: key, Static: true}
	binding.Compile = compileStatic(binding)
	return binding
}
