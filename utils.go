package jschema

import (
	"fmt"
	"strconv"
	"strings"
)

func itoa(i int) string { return strconv.Itoa(i) }

// quoteList renders property names for error messages: 'a', 'b', 'c'.
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}
	return strings.Join(quoted, ", ")
}

// joinInts renders index lists for error messages: 0, 2, 5.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.Itoa(value)
	}
	return strings.Join(parts, ", ")
}

// keywordInt reads a keyword value that must be a JSON integer.
func keywordInt(value *Node) (int, bool) {
	if value.Kind() != KindNumber || !value.Number().IsInt() {
		return 0, false
	}
	num := value.Number().Num()
	if !num.IsInt64() {
		return 0, false
	}
	return int(num.Int64()), true
}

// instanceTypeName reports the JSON Schema type of an instance node,
// distinguishing integer-valued numbers.
func instanceTypeName(instance *Node) string {
	if instance.Kind() == KindNumber && instance.Number().IsInt() {
		return "integer"
	}
	return instance.Kind().String()
}
