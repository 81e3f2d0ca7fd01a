package jschema

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/chanced/uri"
)

// parseURI parses an RFC 3986 URI reference.
func parseURI(s string) (*uri.URI, error) {
	u, err := uri.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrURI, s, err)
	}
	return u, nil
}

// isAbsoluteURI reports whether s parses as a URI with a scheme.
func isAbsoluteURI(s string) bool {
	u, err := uri.Parse(s)
	return err == nil && u.IsAbs()
}

// splitFragment splits a URI reference into its fragment-free part and the
// raw fragment (without "#").
func splitFragment(s string) (base, fragment string) {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// resolveURI resolves ref against base per RFC 3986 and returns the result.
// An absolute ref is returned untouched; an empty base leaves a relative ref
// as-is.
func resolveURI(base, ref string) (string, error) {
	if base == "" || isAbsoluteURI(ref) {
		return ref, nil
	}
	baseURI, err := parseURI(base)
	if err != nil {
		return "", err
	}
	refURI, err := parseURI(ref)
	if err != nil {
		return "", err
	}
	return baseURI.ResolveReference(refURI).String(), nil
}

// newUUIDURN generates a "urn:uuid:…" identifier for schemas that declare no
// "$id" of their own (RFC 4122 version 4).
func newUUIDURN() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("urn:uuid:%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
