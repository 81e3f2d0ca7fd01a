// Package jschema is a JSON Schema evaluation engine for drafts 2019-09 and
// 2020-12.
//
// A Catalog compiles raw schema documents into Schema trees, resolves
// $ref/$dynamicRef/$recursiveRef (including deferred resolution for mutually
// recursive bundles), and caches everything by URI. Evaluating a Schema
// against an instance Node produces a Result tree that tracks annotations,
// errors and the dynamic evaluation path, which the unevaluatedProperties and
// unevaluatedItems keywords consume and the flag/basic/detailed/verbose
// output formats reduce.
//
//	catalog := jschema.NewCatalog()
//	schema, err := catalog.Compile([]byte(`{"type": "string", "minLength": 3}`))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := schema.Validate("hi")
//	out, _ := result.Output(jschema.OutputBasic)
//
// Instance numbers are held as exact rationals, so multipleOf and JSON
// equality behave mathematically rather than by IEEE-754 approximation.
package jschema
