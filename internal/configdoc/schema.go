// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"encoding/json"
)

// SchemaID identifies the descriptor schema.
const SchemaID = "https://grimm.is/schemas/algorithm-descriptors.json"

// Schema is the subset of JSON Schema used to describe descriptor documents.
type Schema struct {
	Schema      string             `json:"$schema,omitempty"`
	ID          string             `json:"$id,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	OneOf       []*Schema          `json:"oneOf,omitempty"`
	MinLength   *int               `json:"minLength,omitempty"`
	MinItems    *int               `json:"minItems,omitempty"`
	Examples    []any              `json:"examples,omitempty"`
	Defs        map[string]*Schema `json:"$defs,omitempty"`

	// order lists Properties keys in declaration order for YAML output.
	order []string
}

func (s *Schema) property(name string, p *Schema, required bool) {
	if s.Properties == nil {
		s.Properties = make(map[string]*Schema)
	}
	s.Properties[name] = p
	s.order = append(s.order, name)
	if required {
		s.Required = append(s.Required, name)
	}
}

func one() *int {
	n := 1
	return &n
}

func nonEmptyString(desc string) *Schema {
	return &Schema{Type: "string", Description: desc, MinLength: one()}
}

// DescriptorSchema returns the JSON Schema of a descriptor document: a list
// of algorithms, an object with an "algorithms" list, or a single algorithm.
func DescriptorSchema() *Schema {
	param := &Schema{
		Title:       "Parameter",
		Description: "One configuration parameter of an algorithm",
		Type:        "object",
	}
	param.property("name", nonEmptyString("Parameter name as used in procedure calls"), true)
	param.property("type", &Schema{
		Description: "Type name, or a list of type names for a union",
		OneOf: []*Schema{
			nonEmptyString(""),
			{Type: "array", Items: nonEmptyString(""), MinItems: one()},
		},
		Examples: []any{"Float", []any{"String", "Map"}},
	}, true)
	param.property("default", &Schema{
		Description: "Default value; null or absent renders as null",
	}, false)
	param.property("optional", &Schema{Type: "boolean", Description: "Whether the parameter may be omitted"}, true)
	param.property("description", &Schema{Type: "string", Description: "Free text shown in the last column"}, true)

	algo := &Schema{
		Title:       "Algorithm",
		Description: "Configuration descriptor of one algorithm",
		Type:        "object",
	}
	algo.property("name", nonEmptyString("Display name, matched against the inclusion set"), true)
	algo.property("page_path", nonEmptyString("Documentation page directory relative to the docs root"), true)
	algo.property("config", &Schema{
		Type:        "array",
		Description: "Parameters in table order",
		Items:       &Schema{Ref: "#/$defs/parameter"},
	}, true)
	algo.property("config_notes", &Schema{
		Type:        "array",
		Description: "Full-width note rows appended after the parameters",
		Items:       &Schema{Type: "string"},
	}, false)

	list := &Schema{Type: "array", Items: &Schema{Ref: "#/$defs/algorithm"}}
	wrapped := &Schema{Type: "object"}
	wrapped.property("algorithms", list, true)

	return &Schema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          SchemaID,
		Title:       "Algorithm configuration descriptors",
		Description: "Input of gen-config-docs",
		OneOf: []*Schema{
			list,
			wrapped,
			{Ref: "#/$defs/algorithm"},
		},
		Defs: map[string]*Schema{
			"algorithm": algo,
			"parameter": param,
		},
	}
}

// SchemaToJSON converts a Schema to pretty-printed JSON.
func SchemaToJSON(s *Schema) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
