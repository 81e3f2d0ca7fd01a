package jschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Pointer
		wantErr bool
	}{
		{name: "root", input: "", want: Pointer{}},
		{name: "single token", input: "/foo", want: Pointer{"foo"}},
		{name: "nested", input: "/foo/0/bar", want: Pointer{"foo", "0", "bar"}},
		{name: "escaped tilde", input: "/~0", want: Pointer{"~"}},
		{name: "escaped slash", input: "/~1", want: Pointer{"/"}},
		{name: "mixed escapes", input: "/a~1b/m~0n", want: Pointer{"a/b", "m~n"}},
		{name: "empty token", input: "//", want: Pointer{"", ""}},
		{name: "missing leading slash", input: "foo", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePointer(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrPointer)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v", got)
		})
	}
}

func TestPointerRoundTrip(t *testing.T) {
	inputs := []string{"", "/foo", "/foo/0/bar", "/~0~1", "/a b", "/"}
	for _, input := range inputs {
		p, err := ParsePointer(input)
		require.NoError(t, err)

		q, err := ParsePointer(p.String())
		require.NoError(t, err)
		assert.True(t, p.Equal(q), "string round trip of %q", input)

		f, err := ParsePointerFragment("#" + p.Fragment())
		require.NoError(t, err)
		assert.True(t, p.Equal(f), "fragment round trip of %q", input)
	}
}

func TestPointerOperations(t *testing.T) {
	p := Pointer{"a", "b"}

	assert.Equal(t, "/a/b/c", p.Append("c").String())
	assert.Equal(t, "/a/b/3", p.AppendIndex(3).String())
	assert.Equal(t, "/a/b/x/y", p.Concat(Pointer{"x", "y"}).String())
	assert.Equal(t, "/a", p.Parent().String())
	assert.Equal(t, "", Pointer{}.Parent().String())

	assert.True(t, p.HasPrefix(Pointer{}))
	assert.True(t, p.HasPrefix(Pointer{"a"}))
	assert.True(t, p.HasPrefix(p))
	assert.False(t, p.HasPrefix(Pointer{"b"}))
	assert.False(t, Pointer{"a"}.HasPrefix(p))
}

func TestPointerEvaluate(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"a": {"b": [10, {"c": true}]}, "/": 1, "~": 2}`))
	require.NoError(t, err)

	tests := []struct {
		pointer string
		check   func(t *testing.T, node *Node)
		wantErr bool
	}{
		{pointer: "", check: func(t *testing.T, node *Node) { assert.Equal(t, KindObject, node.Kind()) }},
		{pointer: "/a/b/0", check: func(t *testing.T, node *Node) { assert.Equal(t, "10", FormatRat(node.Number())) }},
		{pointer: "/a/b/1/c", check: func(t *testing.T, node *Node) { assert.True(t, node.Bool()) }},
		{pointer: "/~1", check: func(t *testing.T, node *Node) { assert.Equal(t, "1", FormatRat(node.Number())) }},
		{pointer: "/~0", check: func(t *testing.T, node *Node) { assert.Equal(t, "2", FormatRat(node.Number())) }},
		{pointer: "/missing", wantErr: true},
		{pointer: "/a/b/2", wantErr: true},
		{pointer: "/a/b/01", wantErr: true},
		{pointer: "/a/b/0/c", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			p, err := ParsePointer(tt.pointer)
			require.NoError(t, err)
			node, err := p.Evaluate(doc)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrPointerEvaluation)
				return
			}
			require.NoError(t, err)
			tt.check(t, node)
		})
	}
}

func TestRelativePointer(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"foo": ["bar", "baz"], "highly": {"nested": {"objects": true}}}`))
	require.NoError(t, err)

	baz, err := Pointer{"foo", "1"}.Evaluate(doc)
	require.NoError(t, err)

	tests := []struct {
		input string
		want  any
	}{
		{input: "0", want: "baz"},
		{input: "1/0", want: "bar"},
		{input: "2/highly/nested/objects", want: true},
		{input: "0#", want: 1},
		{input: "1#", want: "foo"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rp, err := ParseRelativePointer(tt.input)
			require.NoError(t, err)
			got, err := rp.Evaluate(baz)
			require.NoError(t, err)
			switch want := tt.want.(type) {
			case string:
				if node, ok := got.(*Node); ok {
					assert.Equal(t, want, node.Text())
				} else {
					assert.Equal(t, want, got)
				}
			case bool:
				assert.Equal(t, want, got.(*Node).Bool())
			case int:
				assert.Equal(t, want, got)
			}
		})
	}

	_, err = ParseRelativePointer("01")
	assert.ErrorIs(t, err, ErrRelativePointer)
	_, err = ParseRelativePointer("#")
	assert.ErrorIs(t, err, ErrRelativePointer)

	rp, err := ParseRelativePointer("9/foo")
	require.NoError(t, err)
	_, err = rp.Evaluate(baz)
	assert.ErrorIs(t, err, ErrRelativePointerEvaluation)
}
