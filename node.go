package jschema

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-json-experiment/json/jsontext"
)

// Kind is the JSON type of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON Schema type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Node is a parsed JSON value with parent and key tracking. Numbers are held
// as Rats so fractional values loaded from text keep their decimal identity.
// Object member order is the document order.
type Node struct {
	kind    Kind
	boolean bool
	number  *Rat
	text    string
	items   []*Node
	keys    []string
	members map[string]*Node
	parent  *Node
	key     string
}

// ParseJSON parses a JSON document into a Node tree. Numeric literals are
// converted from their raw decimal text, not through IEEE-754.
func ParseJSON(data []byte) (*Node, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	node, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSONUnmarshal, err)
	}
	return node, nil
}

func parseValue(dec *jsontext.Decoder) (*Node, error) {
	switch dec.PeekKind() {
	case '0':
		raw, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		rat := NewRat(string(raw))
		if rat == nil {
			return nil, fmt.Errorf("%w: %q", ErrRatConversion, string(raw))
		}
		return &Node{kind: KindNumber, number: rat}, nil
	case '{':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		node := &Node{kind: KindObject, members: make(map[string]*Node)}
		for dec.PeekKind() != '}' {
			nameToken, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			name := nameToken.String()
			child, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			child.parent = node
			child.key = name
			if _, dup := node.members[name]; !dup {
				node.keys = append(node.keys, name)
			}
			node.members[name] = child
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return node, nil
	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		node := &Node{kind: KindArray}
		for dec.PeekKind() != ']' {
			child, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			child.parent = node
			child.key = fmt.Sprintf("%d", len(node.items))
			node.items = append(node.items, child)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return node, nil
	default:
		token, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		switch token.Kind() {
		case 'n':
			return &Node{kind: KindNull}, nil
		case 't':
			return &Node{kind: KindBoolean, boolean: true}, nil
		case 'f':
			return &Node{kind: KindBoolean, boolean: false}, nil
		case '"':
			return &Node{kind: KindString, text: token.String()}, nil
		}
		return nil, fmt.Errorf("unexpected token kind %q", token.Kind())
	}
}

// NewNode builds a Node tree from plain Go values (the shapes produced by
// generic JSON or YAML unmarshalling). Map member order is not observable in
// Go, so members are sorted by key for determinism. Floats go through their
// decimal formatting, keeping 0.1 exactly 1/10.
func NewNode(value any) (*Node, error) {
	switch v := value.(type) {
	case nil:
		return &Node{kind: KindNull}, nil
	case *Node:
		return v, nil
	case bool:
		return &Node{kind: KindBoolean, boolean: v}, nil
	case string:
		return &Node{kind: KindString, text: v}, nil
	case *Rat:
		return &Node{kind: KindNumber, number: v}, nil
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		rat := NewRat(v)
		if rat == nil {
			return nil, fmt.Errorf("%w: %v", ErrRatConversion, v)
		}
		return &Node{kind: KindNumber, number: rat}, nil
	case []any:
		node := &Node{kind: KindArray}
		for i, item := range v {
			child, err := NewNode(item)
			if err != nil {
				return nil, err
			}
			child.parent = node
			child.key = fmt.Sprintf("%d", i)
			node.items = append(node.items, child)
		}
		return node, nil
	case map[string]any:
		node := &Node{kind: KindObject, members: make(map[string]*Node, len(v))}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child, err := NewNode(v[key])
			if err != nil {
				return nil, err
			}
			child.parent = node
			child.key = key
			node.keys = append(node.keys, key)
			node.members[key] = child
		}
		return node, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRatType, value)
	}
}

// Kind returns the JSON type of the node.
func (n *Node) Kind() Kind { return n.kind }

// Bool returns the boolean value; valid only for KindBoolean.
func (n *Node) Bool() bool { return n.boolean }

// Number returns the numeric value; valid only for KindNumber.
func (n *Node) Number() *Rat { return n.number }

// Text returns the string value; valid only for KindString.
func (n *Node) Text() string { return n.text }

// Len returns the element or member count for arrays and objects.
func (n *Node) Len() int {
	if n.kind == KindObject {
		return len(n.keys)
	}
	return len(n.items)
}

// Item returns the i-th array element.
func (n *Node) Item(i int) *Node { return n.items[i] }

// Items returns the array elements in document order.
func (n *Node) Items() []*Node { return n.items }

// Keys returns the object member names in document order.
func (n *Node) Keys() []string { return n.keys }

// Member returns the named object member.
func (n *Node) Member(key string) (*Node, bool) {
	if n.members == nil {
		return nil, false
	}
	member, ok := n.members[key]
	return member, ok
}

// Parent returns the enclosing node, or nil at the document root.
func (n *Node) Parent() *Node { return n.parent }

// Key returns this node's key within its parent (array indices as strings).
func (n *Node) Key() string { return n.key }

// Root walks up to the document root.
func (n *Node) Root() *Node {
	current := n
	for current.parent != nil {
		current = current.parent
	}
	return current
}

// Path returns the JSON Pointer from the document root to this node.
func (n *Node) Path() Pointer {
	if n.parent == nil {
		return Pointer{}
	}
	return n.parent.Path().Append(n.key)
}

// IsInteger reports whether the node is a number with no fractional part.
func (n *Node) IsInteger() bool {
	return n.kind == KindNumber && n.number.IsInt()
}

// Equal compares two nodes by JSON equality: numbers by mathematical value,
// booleans never equal to numbers, arrays element-wise, objects member-wise.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindNull:
		return true
	case KindBoolean:
		return n.boolean == other.boolean
	case KindNumber:
		return n.number.Cmp(other.number.Rat) == 0
	case KindString:
		return n.text == other.text
	case KindArray:
		if len(n.items) != len(other.items) {
			return false
		}
		for i, item := range n.items {
			if !item.Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(n.keys) != len(other.keys) {
			return false
		}
		for key, member := range n.members {
			otherMember, ok := other.members[key]
			if !ok || !member.Equal(otherMember) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts the node back into plain Go values. Numbers come back
// as *Rat, which marshals as a JSON number.
func (n *Node) Interface() any {
	switch n.kind {
	case KindNull:
		return nil
	case KindBoolean:
		return n.boolean
	case KindNumber:
		return n.number
	case KindString:
		return n.text
	case KindArray:
		values := make([]any, len(n.items))
		for i, item := range n.items {
			values[i] = item.Interface()
		}
		return values
	case KindObject:
		values := make(map[string]any, len(n.keys))
		for _, key := range n.keys {
			values[key] = n.members[key].Interface()
		}
		return values
	}
	return nil
}
