package jschema

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Output formats reducing a result tree, per the 2020-12 output
// specification.
const (
	OutputFlag     = "flag"
	OutputBasic    = "basic"
	OutputDetailed = "detailed"
	OutputVerbose  = "verbose"
)

// Output is one output unit. flag produces only Valid; basic produces a flat
// list of leaf units; detailed collapses passing interior nodes; verbose
// mirrors the full dynamic evaluation tree.
type Output struct {
	Valid                   bool      `json:"valid"`
	InstanceLocation        *string   `json:"instanceLocation,omitempty"`
	KeywordLocation         *string   `json:"keywordLocation,omitempty"`
	AbsoluteKeywordLocation *string   `json:"absoluteKeywordLocation,omitempty"`
	Annotation              any       `json:"annotation,omitempty"`
	Error                   *string   `json:"error,omitempty"`
	Annotations             []*Output `json:"annotations,omitempty"`
	Errors                  []*Output `json:"errors,omitempty"`
}

// Output reduces the result tree into the named format. Re-running it yields
// an equal value; the tree is never mutated.
func (r *Result) Output(format string) (*Output, error) {
	switch format {
	case OutputFlag:
		return &Output{Valid: r.valid}, nil
	case OutputBasic:
		out := &Output{Valid: r.valid}
		if r.valid {
			out.Annotations = collectAnnotationUnits(r, nil)
		} else {
			out.Errors = collectErrorUnits(r, nil)
		}
		return out, nil
	case OutputDetailed:
		return detailedUnit(r), nil
	case OutputVerbose:
		return verboseUnit(r), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// OutputJSON marshals the reduced output.
func (r *Result) OutputJSON(format string) ([]byte, error) {
	out, err := r.Output(format)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func locate(r *Result, out *Output) *Output {
	instance := r.InstanceLocation.String()
	keyword := r.KeywordLocation.String()
	out.InstanceLocation = &instance
	out.KeywordLocation = &keyword
	if r.AbsoluteLocation != "" {
		absolute := r.AbsoluteLocation
		out.AbsoluteKeywordLocation = &absolute
	}
	return out
}

// collectAnnotationUnits flattens every annotation in the valid parts of the
// tree; annotations beneath failed nodes are dropped.
func collectAnnotationUnits(r *Result, units []*Output) []*Output {
	if !r.valid {
		return units
	}
	if r.annotation != nil {
		units = append(units, locate(r, &Output{Valid: true, Annotation: r.annotation}))
	}
	for _, detail := range r.details {
		units = collectAnnotationUnits(detail, units)
	}
	return units
}

// collectErrorUnits flattens every assertion error that contributes to the
// root failure. Passing branches (a matched anyOf alternative, a failed
// non-asserting if) are not descended into.
func collectErrorUnits(r *Result, units []*Output) []*Output {
	if r.err != nil {
		message := r.err.Error()
		units = append(units, locate(r, &Output{Valid: false, Error: &message}))
	}
	for _, detail := range r.details {
		if !detail.valid {
			units = collectErrorUnits(detail, units)
		}
	}
	return units
}

// detailedUnit builds the hierarchical form, collapsing passing interior
// nodes and single-child chains.
func detailedUnit(r *Result) *Output {
	var children []*Output
	for _, detail := range r.details {
		if r.valid {
			if detail.valid && subtreeHasAnnotation(detail) {
				children = append(children, detailedUnit(detail))
			}
		} else if !detail.valid {
			children = append(children, detailedUnit(detail))
		}
	}

	hasOwnPayload := r.err != nil || r.annotation != nil
	if !hasOwnPayload && len(children) == 1 {
		return children[0]
	}

	out := locate(r, &Output{Valid: r.valid, Annotation: r.annotation})
	if r.err != nil {
		message := r.err.Error()
		out.Error = &message
	}
	if r.valid {
		out.Annotations = children
	} else {
		out.Errors = children
	}
	return out
}

func subtreeHasAnnotation(r *Result) bool {
	if !r.valid {
		return false
	}
	if r.annotation != nil {
		return true
	}
	for _, detail := range r.details {
		if subtreeHasAnnotation(detail) {
			return true
		}
	}
	return false
}

// verboseUnit mirrors the whole dynamic evaluation tree.
func verboseUnit(r *Result) *Output {
	out := locate(r, &Output{Valid: r.valid, Annotation: r.annotation})
	if r.err != nil {
		message := r.err.Error()
		out.Error = &message
	}
	for _, detail := range r.details {
		child := verboseUnit(detail)
		if detail.valid {
			out.Annotations = append(out.Annotations, child)
		} else {
			out.Errors = append(out.Errors, child)
		}
	}
	return out
}
