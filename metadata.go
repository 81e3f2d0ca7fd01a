package jschema

// Metadata keywords annotate and never assert.

var titleBinding = annotationBinding("title")
var descriptionBinding = annotationBinding("description")
var defaultBinding = annotationBinding("default")
var deprecatedBinding = annotationBinding("deprecated")
var readOnlyBinding = annotationBinding("readOnly")
var writeOnlyBinding = annotationBinding("writeOnly")
var examplesBinding = annotationBinding("examples")

func annotationBinding(key string) *KeywordBinding {
	binding := &KeywordBinding{Key: key}
	binding.Compile = compileAnnotation(binding)
	return binding
}
