package jschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnevaluatedProperties(t *testing.T) {
	tests := []struct {
		name        string
		schema      string
		instance    string
		expectValid bool
	}{
		{
			name:        "plain leftover rejected",
			schema:      `{"properties": {"a": {}}, "unevaluatedProperties": false}`,
			instance:    `{"a": 1, "b": 2}`,
			expectValid: false,
		},
		{
			name:        "sees through allOf",
			schema:      `{"allOf": [{"properties": {"a": {}}}], "unevaluatedProperties": false}`,
			instance:    `{"a": 1}`,
			expectValid: true,
		},
		{
			name:        "sees through $ref",
			schema:      `{"$defs": {"base": {"properties": {"a": {}}}}, "$ref": "#/$defs/base", "unevaluatedProperties": false}`,
			instance:    `{"a": 1}`,
			expectValid: true,
		},
		{
			name:        "ref without the member",
			schema:      `{"$defs": {"base": {"properties": {"a": {}}}}, "$ref": "#/$defs/base", "unevaluatedProperties": false}`,
			instance:    `{"a": 1, "b": 2}`,
			expectValid: false,
		},
		{
			name:        "failed branch annotations dropped",
			schema:      `{"anyOf": [{"properties": {"b": {}}, "required": ["missing"]}, {"properties": {"a": {}}}], "unevaluatedProperties": false}`,
			instance:    `{"a": 1, "b": 2}`,
			expectValid: false,
		},
		{
			name:        "passing branch annotations kept",
			schema:      `{"anyOf": [{"properties": {"b": {}}}, {"properties": {"a": {}}}], "unevaluatedProperties": false}`,
			instance:    `{"a": 1, "b": 2}`,
			expectValid: true,
		},
		{
			name:        "if branch counts when taken",
			schema:      `{"if": {"properties": {"a": {"type": "integer"}}, "required": ["a"]}, "unevaluatedProperties": false}`,
			instance:    `{"a": 1}`,
			expectValid: true,
		},
		{
			name:        "failed if branch does not count",
			schema:      `{"if": {"properties": {"a": {"type": "integer"}}, "required": ["a", "zz"]}, "unevaluatedProperties": false}`,
			instance:    `{"a": 1}`,
			expectValid: false,
		},
		{
			name:        "schema applies instead of rejecting",
			schema:      `{"properties": {"a": {}}, "unevaluatedProperties": {"type": "integer"}}`,
			instance:    `{"a": "anything", "extra": 3}`,
			expectValid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := mustCompile(t, tt.schema)
			instance, err := ParseJSON([]byte(tt.instance))
			require.NoError(t, err)
			assert.Equal(t, tt.expectValid, schema.Evaluate(instance).IsValid())
		})
	}
}

func TestUnevaluatedItems(t *testing.T) {
	tests := []struct {
		name        string
		schema      string
		instance    string
		expectValid bool
	}{
		{
			name:        "beyond prefixItems rejected",
			schema:      `{"prefixItems": [{"type": "string"}], "unevaluatedItems": false}`,
			instance:    `["a", "b"]`,
			expectValid: false,
		},
		{
			name:        "items covers the rest",
			schema:      `{"prefixItems": [{"type": "string"}], "items": {}, "unevaluatedItems": false}`,
			instance:    `["a", "b"]`,
			expectValid: true,
		},
		{
			name:        "sees through $ref",
			schema:      `{"$defs": {"base": {"prefixItems": [{}, {}]}}, "$ref": "#/$defs/base", "unevaluatedItems": false}`,
			instance:    `[1, 2]`,
			expectValid: true,
		},
		{
			name:        "leftover after ref prefix",
			schema:      `{"$defs": {"base": {"prefixItems": [{}]}}, "$ref": "#/$defs/base", "unevaluatedItems": false}`,
			instance:    `[1, 2]`,
			expectValid: false,
		},
		{
			name:        "contains matches are evaluated",
			schema:      `{"contains": {"type": "integer"}, "unevaluatedItems": false}`,
			instance:    `[1, 2]`,
			expectValid: true,
		},
		{
			name:        "contains leaves the rest unevaluated",
			schema:      `{"contains": {"type": "integer"}, "unevaluatedItems": false}`,
			instance:    `[1, "x"]`,
			expectValid: false,
		},
		{
			name:        "schema applies to leftovers",
			schema:      `{"prefixItems": [{"type": "string"}], "unevaluatedItems": {"type": "integer"}}`,
			instance:    `["a", 2, 3]`,
			expectValid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := mustCompile(t, tt.schema)
			instance, err := ParseJSON([]byte(tt.instance))
			require.NoError(t, err)
			assert.Equal(t, tt.expectValid, schema.Evaluate(instance).IsValid())
		})
	}
}
