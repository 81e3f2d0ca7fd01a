package jschema

// Vocabulary is an identified set of keyword bindings. A metaschema declares
// through "$vocabulary" which vocabularies are active for schemas compiled
// against it.
type Vocabulary struct {
	URI      string
	Bindings []*KeywordBinding

	index map[string]*KeywordBinding
}

// NewVocabulary builds a vocabulary from its keyword bindings.
func NewVocabulary(uri string, bindings ...*KeywordBinding) *Vocabulary {
	v := &Vocabulary{URI: uri, Bindings: bindings, index: make(map[string]*KeywordBinding, len(bindings))}
	for _, binding := range bindings {
		v.index[binding.Key] = binding
	}
	return v
}

// Binding returns the binding for a keyword name, if this vocabulary has one.
func (v *Vocabulary) Binding(name string) (*KeywordBinding, bool) {
	binding, ok := v.index[name]
	return binding, ok
}

// Vocabulary and metaschema URIs for the supported drafts.
const (
	Draft202012MetaschemaURI = "https://json-schema.org/draft/2020-12/schema"
	Draft201909MetaschemaURI = "https://json-schema.org/draft/2019-09/schema"

	Vocab202012Core             = "https://json-schema.org/draft/2020-12/vocab/core"
	Vocab202012Applicator       = "https://json-schema.org/draft/2020-12/vocab/applicator"
	Vocab202012Unevaluated      = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
	Vocab202012Validation       = "https://json-schema.org/draft/2020-12/vocab/validation"
	Vocab202012MetaData         = "https://json-schema.org/draft/2020-12/vocab/meta-data"
	Vocab202012FormatAnnotation = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	Vocab202012Content          = "https://json-schema.org/draft/2020-12/vocab/content"

	Vocab201909Core       = "https://json-schema.org/draft/2019-09/vocab/core"
	Vocab201909Applicator = "https://json-schema.org/draft/2019-09/vocab/applicator"
	Vocab201909Validation = "https://json-schema.org/draft/2019-09/vocab/validation"
	Vocab201909MetaData   = "https://json-schema.org/draft/2019-09/vocab/meta-data"
	Vocab201909Format     = "https://json-schema.org/draft/2019-09/vocab/format"
	Vocab201909Content    = "https://json-schema.org/draft/2019-09/vocab/content"
)

func builtinVocabularies() map[string]*Vocabulary {
	validationBindings := []*KeywordBinding{
		typeBinding, enumBinding, constBinding,
		multipleOfBinding, maximumBinding, exclusiveMaximumBinding, minimumBinding, exclusiveMinimumBinding,
		maxLengthBinding, minLengthBinding, patternBinding,
		maxItemsBinding, minItemsBinding, uniqueItemsBinding, maxContainsBinding, minContainsBinding,
		maxPropertiesBinding, minPropertiesBinding, requiredBinding, dependentRequiredBinding,
	}
	metaDataBindings := []*KeywordBinding{
		titleBinding, descriptionBinding, defaultBinding, deprecatedBinding,
		readOnlyBinding, writeOnlyBinding, examplesBinding,
	}
	contentBindings := []*KeywordBinding{
		contentEncodingBinding, contentMediaTypeBinding, contentSchemaBinding,
	}

	vocabularies := []*Vocabulary{
		NewVocabulary(Vocab202012Core,
			idBinding, schemaBinding, vocabularyBinding, commentBinding,
			anchorBinding, dynamicAnchorBinding, defsBinding, definitionsBinding,
			refBinding, dynamicRefBinding,
		),
		NewVocabulary(Vocab202012Applicator,
			allOfBinding, anyOfBinding, oneOfBinding, notBinding,
			ifBinding, thenBinding, elseBinding, dependentSchemasBinding,
			prefixItemsBinding, itemsBinding, containsBinding,
			propertiesBinding, patternPropertiesBinding, additionalPropertiesBinding, propertyNamesBinding,
		),
		NewVocabulary(Vocab202012Unevaluated,
			unevaluatedItemsBinding, unevaluatedPropertiesBinding,
		),
		NewVocabulary(Vocab202012Validation, validationBindings...),
		NewVocabulary(Vocab202012MetaData, metaDataBindings...),
		NewVocabulary(Vocab202012FormatAnnotation, formatBinding),
		NewVocabulary(Vocab202012Content, contentBindings...),

		NewVocabulary(Vocab201909Core,
			idBinding, schemaBinding, vocabularyBinding, commentBinding,
			anchorBinding, recursiveAnchorBinding, defsBinding, definitionsBinding,
			refBinding, recursiveRefBinding,
		),
		NewVocabulary(Vocab201909Applicator,
			allOfBinding, anyOfBinding, oneOfBinding, notBinding,
			ifBinding, thenBinding, elseBinding, dependentSchemasBinding,
			legacyItemsBinding, additionalItemsBinding, containsBinding,
			propertiesBinding, patternPropertiesBinding, additionalPropertiesBinding, propertyNamesBinding,
			unevaluatedItemsBinding, unevaluatedPropertiesBinding,
		),
		NewVocabulary(Vocab201909Validation, validationBindings...),
		NewVocabulary(Vocab201909MetaData, metaDataBindings...),
		NewVocabulary(Vocab201909Format, formatBinding),
		NewVocabulary(Vocab201909Content, contentBindings...),
	}

	index := make(map[string]*Vocabulary, len(vocabularies))
	for _, vocabulary := range vocabularies {
		index[vocabulary.URI] = vocabulary
	}
	return index
}
