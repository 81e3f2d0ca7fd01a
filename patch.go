package jschema

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/goccy/go-json"
)

// ApplyPatch applies an RFC 6902 JSON Patch to a raw JSON document. The
// "test" operation follows JSON equality, so a numeric 10 never matches the
// string "10".
func ApplyPatch(doc, patch []byte) ([]byte, error) {
	decoded, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	patched, err := decoded.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return patched, nil
}

// ApplyPatchNode applies a patch to a parsed node tree and reparses the
// result, preserving decimal number fidelity through the raw JSON round
// trip.
func ApplyPatchNode(doc *Node, patch []byte) (*Node, error) {
	raw, err := json.Marshal(doc.Interface())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	patched, err := ApplyPatch(raw, patch)
	if err != nil {
		return nil, err
	}
	return ParseJSON(patched)
}
