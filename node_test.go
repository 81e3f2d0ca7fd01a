package jschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONKinds(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"n": null, "b": true, "i": 3, "f": 0.1, "s": "x", "a": [1, 2], "o": {"k": "v"}}`))
	require.NoError(t, err)
	require.Equal(t, KindObject, doc.Kind())

	kinds := map[string]Kind{
		"n": KindNull, "b": KindBoolean, "i": KindNumber,
		"f": KindNumber, "s": KindString, "a": KindArray, "o": KindObject,
	}
	for key, want := range kinds {
		member, ok := doc.Member(key)
		require.True(t, ok, key)
		assert.Equal(t, want, member.Kind(), key)
	}

	assert.Equal(t, []string{"n", "b", "i", "f", "s", "a", "o"}, doc.Keys(), "document order preserved")
}

func TestParseJSONDecimalFidelity(t *testing.T) {
	doc, err := ParseJSON([]byte(`[0.1, 5.1, 1.0, 1e2]`))
	require.NoError(t, err)

	assert.Equal(t, "0.1", FormatRat(doc.Item(0).Number()))
	assert.Equal(t, "5.1", FormatRat(doc.Item(1).Number()))
	assert.True(t, doc.Item(2).IsInteger(), "1.0 is mathematically an integer")
	assert.Equal(t, "100", FormatRat(doc.Item(3).Number()))

	// 5.1 / 0.1 is exactly 51; IEEE-754 doubles would disagree
	quotient := NewRat("5.1")
	quotient.Quo(quotient.Rat, NewRat("0.1").Rat)
	assert.True(t, quotient.IsInt())
}

func TestNodeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "numbers by value", a: `1`, b: `1.0`, want: true},
		{name: "number not boolean", a: `1`, b: `true`, want: false},
		{name: "strings", a: `"a"`, b: `"a"`, want: true},
		{name: "number not string", a: `10`, b: `"10"`, want: false},
		{name: "arrays element-wise", a: `[1, 2.0]`, b: `[1.0, 2]`, want: true},
		{name: "array order matters", a: `[1, 2]`, b: `[2, 1]`, want: false},
		{name: "objects member-wise", a: `{"a": 1, "b": 2}`, b: `{"b": 2.0, "a": 1}`, want: true},
		{name: "missing member", a: `{"a": 1}`, b: `{"a": 1, "b": 2}`, want: false},
		{name: "null", a: `null`, b: `null`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseJSON([]byte(tt.a))
			require.NoError(t, err)
			b, err := ParseJSON([]byte(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Equal(b))
		})
	}
}

func TestNodePathRoundTrip(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"a": {"b": [true, {"c": [null]}]}, "x~y": {"z/w": 1}}`))
	require.NoError(t, err)

	var walk func(n *Node)
	walk = func(n *Node) {
		got, err := n.Path().Evaluate(doc)
		require.NoError(t, err)
		assert.Same(t, n, got, "path %q", n.Path().String())
		for _, item := range n.Items() {
			walk(item)
		}
		for _, key := range n.Keys() {
			member, _ := n.Member(key)
			walk(member)
		}
	}
	walk(doc)

	assert.Same(t, doc, mustMember(t, mustMember(t, doc, "a"), "b").Root())
}

func mustMember(t *testing.T, n *Node, key string) *Node {
	t.Helper()
	member, ok := n.Member(key)
	require.True(t, ok)
	return member
}

func TestNewNode(t *testing.T) {
	node, err := NewNode(map[string]any{
		"b": true,
		"a": []any{1, "two", 0.1},
		"n": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "n"}, node.Keys(), "map members sorted")
	arr := mustMember(t, node, "a")
	assert.Equal(t, "0.1", FormatRat(arr.Item(2).Number()))

	parsed, err := ParseJSON([]byte(`{"a": [1, "two", 0.1], "b": true, "n": null}`))
	require.NoError(t, err)
	assert.True(t, node.Equal(parsed))

	_, err = NewNode(struct{}{})
	assert.Error(t, err)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{invalid`))
	assert.ErrorIs(t, err, ErrJSONUnmarshal)
}
