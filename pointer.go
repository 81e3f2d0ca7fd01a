package jschema

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Pointer is an RFC 6901 JSON Pointer held as its unescaped reference tokens.
// Array indices are kept as strings; the zero value addresses the document
// root.
type Pointer []string

// ParsePointer parses the string form of a JSON Pointer ("" or "/a/b~1c").
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("%w: %q must begin with '/'", ErrPointer, s)
	}
	tokens := jsonpointer.Parse(s)
	return Pointer(tokens), nil
}

// ParsePointerFragment parses the URI fragment form of a JSON Pointer,
// undoing percent-encoding on each token ("#/a%20b" and "/a b" are the same
// pointer). The leading "#" is optional.
func ParsePointerFragment(s string) (Pointer, error) {
	s = strings.TrimPrefix(s, "#")
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPointer, s, err)
	}
	return ParsePointer(decoded)
}

// String returns the RFC 6901 string form with "~" and "/" escaped.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, token := range p {
		sb.WriteByte('/')
		sb.WriteString(escapePointerToken(token))
	}
	return sb.String()
}

// Fragment returns the URI fragment form, percent-encoded in addition to the
// RFC 6901 escaping, without the leading "#".
func (p Pointer) Fragment() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, token := range p {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(escapePointerToken(token)))
	}
	return sb.String()
}

// Append returns a new pointer with the given tokens appended.
func (p Pointer) Append(tokens ...string) Pointer {
	q := make(Pointer, 0, len(p)+len(tokens))
	q = append(q, p...)
	q = append(q, tokens...)
	return q
}

// AppendIndex returns a new pointer with an array index token appended.
func (p Pointer) AppendIndex(i int) Pointer {
	return p.Append(strconv.Itoa(i))
}

// Concat returns the concatenation p + q.
func (p Pointer) Concat(q Pointer) Pointer {
	return p.Append(q...)
}

// Parent returns the pointer with its last token removed. The parent of the
// root pointer is the root pointer.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// HasPrefix reports whether q is a prefix of p.
func (p Pointer) HasPrefix(q Pointer) bool {
	if len(q) > len(p) {
		return false
	}
	for i, token := range q {
		if p[i] != token {
			return false
		}
	}
	return true
}

// Equal reports whether two pointers consist of the same tokens.
func (p Pointer) Equal(q Pointer) bool {
	if len(p) != len(q) {
		return false
	}
	for i, token := range p {
		if q[i] != token {
			return false
		}
	}
	return true
}

// Evaluate descends through the document node token by token. Object members
// are matched by key; array elements by decimal index.
func (p Pointer) Evaluate(doc *Node) (*Node, error) {
	current := doc
	for _, token := range p {
		if current == nil {
			return nil, fmt.Errorf("%w: %q", ErrPointerEvaluation, p.String())
		}
		switch current.Kind() {
		case KindObject:
			member, ok := current.Member(token)
			if !ok {
				return nil, fmt.Errorf("%w: no member %q", ErrPointerEvaluation, token)
			}
			current = member
		case KindArray:
			index, err := parseArrayIndex(token)
			if err != nil {
				return nil, err
			}
			if index < 0 || index >= current.Len() {
				return nil, fmt.Errorf("%w: index %d out of range", ErrPointerEvaluation, index)
			}
			current = current.Item(index)
		default:
			return nil, fmt.Errorf("%w: cannot descend into %s", ErrPointerEvaluation, current.Kind())
		}
	}
	return current, nil
}

func parseArrayIndex(token string) (int, error) {
	if token == "-" || (len(token) > 1 && token[0] == '0') {
		return 0, fmt.Errorf("%w: invalid array index %q", ErrPointerEvaluation, token)
	}
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid array index %q", ErrPointerEvaluation, token)
	}
	return index, nil
}

func escapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// RelativePointer is a Relative JSON Pointer: an upward step count, then
// either "#" (address the key or index of the landing node) or a regular
// pointer to descend with.
type RelativePointer struct {
	Up      int
	UseKey  bool
	Pointer Pointer
}

// ParseRelativePointer parses forms like "0", "1/foo/bar" and "2#".
func ParseRelativePointer(s string) (RelativePointer, error) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || (digits > 1 && s[0] == '0') {
		return RelativePointer{}, fmt.Errorf("%w: %q", ErrRelativePointer, s)
	}
	up, err := strconv.Atoi(s[:digits])
	if err != nil {
		return RelativePointer{}, fmt.Errorf("%w: %q", ErrRelativePointer, s)
	}
	rest := s[digits:]
	if rest == "#" {
		return RelativePointer{Up: up, UseKey: true}, nil
	}
	ptr, err := ParsePointer(rest)
	if err != nil {
		return RelativePointer{}, fmt.Errorf("%w: %q", ErrRelativePointer, s)
	}
	return RelativePointer{Up: up, Pointer: ptr}, nil
}

// String returns the string form of the relative pointer.
func (r RelativePointer) String() string {
	s := strconv.Itoa(r.Up)
	if r.UseKey {
		return s + "#"
	}
	return s + r.Pointer.String()
}

// Evaluate applies the relative pointer to a node. It returns the landing
// *Node, or, for the "#" form, the landing node's key (string) or array
// index (int) within its parent.
func (r RelativePointer) Evaluate(node *Node) (any, error) {
	current := node
	for i := 0; i < r.Up; i++ {
		if current.Parent() == nil {
			return nil, fmt.Errorf("%w: walked past document root", ErrRelativePointerEvaluation)
		}
		current = current.Parent()
	}
	if r.UseKey {
		parent := current.Parent()
		if parent == nil {
			return nil, fmt.Errorf("%w: root has no key", ErrRelativePointerEvaluation)
		}
		if parent.Kind() == KindArray {
			index, err := parseArrayIndex(current.Key())
			if err != nil {
				return nil, err
			}
			return index, nil
		}
		return current.Key(), nil
	}
	return r.Pointer.Evaluate(current)
}
