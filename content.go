package jschema

// Content keywords are annotations by default. When the catalog is built
// WithContentAssertion, contentEncoding runs the registered decoder and
// contentMediaType checks the (decoded) text against the registered
// media-type handler. contentSchema always stays an annotation, but its
// subschema is compiled so references can target it.

type contentEncodingKeyword struct {
	baseKeyword
	encoding string
}

func (k *contentEncodingKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	result.SetAnnotation(k.encoding)
	catalog := k.schema.catalog
	if !catalog.assertContent {
		return
	}
	decoder, ok := catalog.decoders[k.encoding]
	if !ok {
		return
	}
	if _, err := decoder(instance.Text()); err != nil {
		result.AddError(NewEvaluationError("contentEncoding", "content_encoding_mismatch", "Value is not valid {encoding} content: {error}", map[string]any{
			"encoding": k.encoding,
			"error":    err.Error(),
		}))
	}
}

var contentEncodingBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "contentEncoding", InstanceKinds: []Kind{KindString}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindString {
			return nil, errSchemaKind("contentEncoding", "a string")
		}
		return &contentEncodingKeyword{baseKeyword: newBase(binding, schema, value), encoding: value.Text()}, nil
	}
	return binding
}()

type contentMediaTypeKeyword struct {
	baseKeyword
	mediaType string
}

func (k *contentMediaTypeKeyword) Evaluate(_ *evalContext, instance *Node, result *Result) {
	result.SetAnnotation(k.mediaType)
	catalog := k.schema.catalog
	if !catalog.assertContent {
		return
	}
	handler, ok := catalog.mediaTypes[k.mediaType]
	if !ok {
		return
	}

	content := []byte(instance.Text())
	if sibling, ok := k.schema.Keyword("contentEncoding"); ok {
		if decoder, ok := catalog.decoders[sibling.(*contentEncodingKeyword).encoding]; ok {
			decoded, err := decoder(instance.Text())
			if err != nil {
				// contentEncoding already reports the failure
				return
			}
			content = decoded
		}
	}
	if err := handler(content); err != nil {
		result.AddError(NewEvaluationError("contentMediaType", "content_media_type_mismatch", "Value is not valid {media_type} content: {error}", map[string]any{
			"media_type": k.mediaType,
			"error":      err.Error(),
		}))
	}
}

var contentMediaTypeBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "contentMediaType", DependsOn: []string{"contentEncoding"}, InstanceKinds: []Kind{KindString}}
	binding.Compile = func(_ *compileContext, schema *Schema, value *Node) (Keyword, error) {
		if value.Kind() != KindString {
			return nil, errSchemaKind("contentMediaType", "a string")
		}
		return &contentMediaTypeKeyword{baseKeyword: newBase(binding, schema, value), mediaType: value.Text()}, nil
	}
	return binding
}()

type contentSchemaKeyword struct {
	baseKeyword
	subject *Schema
}

func (k *contentSchemaKeyword) Evaluate(_ *evalContext, _ *Node, result *Result) {
	result.SetAnnotation(k.value.Interface())
}

var contentSchemaBinding = func() *KeywordBinding {
	binding := &KeywordBinding{Key: "contentSchema", DependsOn: []string{"contentMediaType"}, InstanceKinds: []Kind{KindString}}
	binding.Compile = func(cc *compileContext, schema *Schema, value *Node) (Keyword, error) {
		subject, err := cc.compileSubschema(value, schema, "contentSchema")
		if err != nil {
			return nil, err
		}
		return &contentSchemaKeyword{baseKeyword: newBase(binding, schema, value), subject: subject}, nil
	}
	return binding
}()
