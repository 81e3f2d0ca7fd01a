package jschema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/go-i18n"
)

// EvaluationError represents an assertion failure raised by a keyword during
// schema evaluation. It is captured in the result tree, never returned as a
// Go error.
type EvaluationError struct {
	Keyword string         `json:"keyword"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params"`
}

// NewEvaluationError creates a new evaluation error with the specified details
func NewEvaluationError(keyword string, code string, message string, params ...map[string]any) *EvaluationError {
	if len(params) > 0 {
		return &EvaluationError{
			Keyword: keyword,
			Code:    code,
			Message: message,
			Params:  params[0],
		}
	}
	return &EvaluationError{
		Keyword: keyword,
		Code:    code,
		Message: message,
	}
}

func (e *EvaluationError) Error() string {
	return replace(e.Message, e.Params)
}

// Localize returns a localized error message using the provided localizer
func (e *EvaluationError) Localize(localizer *i18n.Localizer) string {
	if localizer != nil {
		return localizer.Get(e.Code, i18n.Vars(e.Params))
	}
	return e.Error()
}

// replace substitutes placeholders in a template string with actual parameter values.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}

// Result is one node of the evaluation result tree. Schema visits produce a
// node with an empty keyword; each evaluated keyword produces a child node;
// applicator keywords hang subschema visits beneath their own node. The tree
// mirrors the dynamic evaluation path, so the same schema can appear several
// times under different keyword locations.
type Result struct {
	schema           *Schema
	keyword          string
	InstanceLocation Pointer
	KeywordLocation  Pointer
	AbsoluteLocation string
	valid            bool
	annotation       any
	err              *EvaluationError
	details          []*Result
	parent           *Result
}

func newResult(schema *Schema, keyword string, instanceLocation, keywordLocation Pointer, absoluteLocation string) *Result {
	return &Result{
		schema:           schema,
		keyword:          keyword,
		InstanceLocation: instanceLocation,
		KeywordLocation:  keywordLocation,
		AbsoluteLocation: absoluteLocation,
		valid:            true,
	}
}

// IsValid reports whether this node passed: no assertion error of its own and
// no failing keyword child.
func (r *Result) IsValid() bool { return r.valid }

// Keyword returns the keyword this node reports on, or "" for a schema visit.
func (r *Result) Keyword() string { return r.keyword }

// Annotation returns the annotation value attached to this node, if any.
func (r *Result) Annotation() any { return r.annotation }

// Err returns the assertion error attached to this node, if any.
func (r *Result) Err() *EvaluationError { return r.err }

// Details returns the child results in evaluation order.
func (r *Result) Details() []*Result { return r.details }

// Schema returns the schema this node was produced by.
func (r *Result) Schema() *Schema { return r.schema }

// SetAnnotation attaches an annotation value to this node.
func (r *Result) SetAnnotation(value any) *Result {
	r.annotation = value
	return r
}

// AddError attaches an assertion error and marks the node failing.
func (r *Result) AddError(err *EvaluationError) *Result {
	r.err = err
	r.valid = false
	return r
}

// fail marks the node failing without an assertion error of its own.
// Container applicators that fail only because a subschema failed use this;
// such nodes are filtered from basic output while the leaf assertion errors
// beneath them remain.
func (r *Result) fail() *Result {
	r.valid = false
	return r
}

// AddDetail appends a child result. A failing keyword child fails this node;
// subschema visits (keyword == "") never propagate on their own, their
// owning applicator keyword decides.
func (r *Result) AddDetail(detail *Result) *Result {
	detail.parent = r
	r.details = append(r.details, detail)
	if detail.keyword != "" && !detail.valid {
		r.valid = false
	}
	return r
}

// collectAnnotations gathers the annotation values produced by the named
// keyword at the given instance location, anywhere in this subtree that is
// still valid. Annotations below failed nodes are dropped, which is what
// makes unevaluatedProperties/-Items see only successful evaluations.
func (r *Result) collectAnnotations(keyword string, location Pointer, values []any) []any {
	if r.keyword == keyword && r.annotation != nil && r.InstanceLocation.Equal(location) {
		values = append(values, r.annotation)
	}
	// the node itself may be failing because of an unrelated sibling
	// assertion; only failed subtrees drop their annotations
	for _, detail := range r.details {
		if !detail.valid {
			continue
		}
		values = detail.collectAnnotations(keyword, location, values)
	}
	return values
}

// LocalizeErrors rewrites every error message in the subtree through the
// localizer, for callers that want translated basic/detailed output.
func (r *Result) LocalizeErrors(localizer *i18n.Localizer) {
	if r.err != nil {
		r.err.Message = r.err.Localize(localizer)
	}
	for _, detail := range r.details {
		detail.LocalizeErrors(localizer)
	}
}
