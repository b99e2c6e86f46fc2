// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"
)

// AlgorithmDescriptor describes the configurable parameters of one algorithm.
type AlgorithmDescriptor struct {
	Name        string                `json:"name" yaml:"name"`
	PagePath    string                `json:"page_path" yaml:"page_path"`
	Config      []ParameterDescriptor `json:"config" yaml:"config"`
	ConfigNotes []string              `json:"config_notes,omitempty" yaml:"config_notes,omitempty"`
}

// ParameterDescriptor describes a single configuration parameter.
type ParameterDescriptor struct {
	Name        string       `json:"name" yaml:"name"`
	Type        ParamType    `json:"type" yaml:"type"`
	Default     DefaultValue `json:"default" yaml:"default"`
	Optional    bool         `json:"optional" yaml:"optional"`
	Description string       `json:"description" yaml:"description"`
}

// ParamType is either a single type name or a union of type names.
type ParamType struct {
	scalar string
	union  []string
}

// Scalar returns a single-name type.
func Scalar(name string) ParamType {
	return ParamType{scalar: name}
}

// Union returns a union type. The names keep their order.
func Union(names ...string) ParamType {
	return ParamType{union: append([]string(nil), names...)}
}

// IsUnion reports whether t is a union.
func (t ParamType) IsUnion() bool {
	return t.union != nil
}

// Names returns the member names of t; a scalar has exactly one.
func (t ParamType) Names() []string {
	if t.IsUnion() {
		return append([]string(nil), t.union...)
	}
	return []string{t.scalar}
}

// IsZero reports whether t carries no type information.
func (t ParamType) IsZero() bool {
	return t.scalar == "" && len(t.union) == 0
}

// String renders the type for the documentation table. Union members are
// joined with " or ".
func (t ParamType) String() string {
	if t.IsUnion() {
		return strings.Join(t.union, " or ")
	}
	return t.scalar
}

// DefaultValue is a parameter default. The zero value is null.
type DefaultValue struct {
	text    string
	present bool
}

// NullDefault returns the null default.
func NullDefault() DefaultValue {
	return DefaultValue{}
}

// DefaultOf returns a non-null default with the given display text.
func DefaultOf(text string) DefaultValue {
	return DefaultValue{text: text, present: true}
}

// IsNull reports whether the default is null or absent.
func (d DefaultValue) IsNull() bool {
	return !d.present
}

// String renders the default for the documentation table.
func (d DefaultValue) String() string {
	if !d.present {
		return "null"
	}
	return d.text
}

// Entry is one algorithm read from a descriptor source. Exactly one of
// Descriptor and Err is set.
type Entry struct {
	Name       string
	Source     string
	Descriptor *AlgorithmDescriptor
	Err        error
}

// Outcome is the result of processing one entry.
type Outcome int

const (
	// OutcomePending marks an entry the run never reached.
	OutcomePending Outcome = iota
	OutcomeWritten
	// OutcomePrinted marks a fragment rendered to output in a dry run.
	OutcomePrinted
	OutcomeUnchanged
	OutcomeSkipped
	OutcomeStale
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeWritten:
		return "written"
	case OutcomePrinted:
		return "printed"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeStale:
		return "stale"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports what happened to one algorithm during a run.
type Result struct {
	Name    string
	Source  string
	Path    string
	Outcome Outcome
	Err     error
	// Diff holds a unified diff for stale fragments in check mode.
	Diff string
}
