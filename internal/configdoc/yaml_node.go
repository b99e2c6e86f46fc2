// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAMLNode converts a Schema to a yaml.Node tree. Definitions become
// anchors and "$ref" pointers to them become aliases, so a definition is
// written once and must precede every use: definitions are emitted before
// the schemas that reference them.
func ToYAMLNode(s *Schema) *yaml.Node {
	anchors := make(map[string]*yaml.Node)

	doc := mapping()
	addScalar(doc, "$schema", s.Schema)
	addScalar(doc, "$id", s.ID)
	addScalar(doc, "title", s.Title)
	addScalar(doc, "description", s.Description)

	if len(s.Defs) > 0 {
		defs := mapping()
		for _, name := range defOrder(s.Defs) {
			n := schemaNode(s.Defs[name], anchors)
			n.Anchor = name
			anchors["#/$defs/"+name] = n
			addNode(defs, name, n)
		}
		addNode(doc, "$defs", defs)
	}

	body := schemaNode(&Schema{
		Type:       s.Type,
		Properties: s.Properties,
		Required:   s.Required,
		Items:      s.Items,
		OneOf:      s.OneOf,
		order:      s.order,
	}, anchors)
	doc.Content = append(doc.Content, body.Content...)

	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}
}

// schemaNode converts one schema. Keys follow JSON Schema reading order.
func schemaNode(s *Schema, anchors map[string]*yaml.Node) *yaml.Node {
	if s.Ref != "" {
		if target, ok := anchors[s.Ref]; ok {
			return &yaml.Node{Kind: yaml.AliasNode, Alias: target, Value: target.Anchor}
		}
		n := mapping()
		addScalar(n, "$ref", s.Ref)
		return n
	}

	n := mapping()
	addScalar(n, "title", s.Title)
	addScalar(n, "description", s.Description)
	addScalar(n, "type", s.Type)
	if s.MinLength != nil {
		addNode(n, "minLength", intNode(*s.MinLength))
	}
	if s.MinItems != nil {
		addNode(n, "minItems", intNode(*s.MinItems))
	}
	if len(s.Required) > 0 {
		addNode(n, "required", stringSeq(s.Required))
	}
	if len(s.Properties) > 0 {
		props := mapping()
		for _, key := range propertyOrder(s) {
			addNode(props, key, schemaNode(s.Properties[key], anchors))
		}
		addNode(n, "properties", props)
	}
	if s.Items != nil {
		addNode(n, "items", schemaNode(s.Items, anchors))
	}
	if len(s.OneOf) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, o := range s.OneOf {
			seq.Content = append(seq.Content, schemaNode(o, anchors))
		}
		addNode(n, "oneOf", seq)
	}
	if len(s.Examples) > 0 {
		ex := &yaml.Node{}
		if err := ex.Encode(s.Examples); err == nil {
			addNode(n, "examples", ex)
		}
	}
	return n
}

// defOrder sorts definitions so that each comes after the definitions it
// references. Ties are broken by name.
func defOrder(defs map[string]*Schema) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		order   []string
		visited = make(map[string]bool)
	)
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, ref := range refs(defs[name]) {
			if dep := strings.TrimPrefix(ref, "#/$defs/"); dep != ref {
				if _, ok := defs[dep]; ok {
					visit(dep)
				}
			}
		}
		order = append(order, name)
	}
	for _, name := range names {
		visit(name)
	}
	return order
}

// refs collects the $ref targets inside s.
func refs(s *Schema) []string {
	if s == nil {
		return nil
	}
	var out []string
	if s.Ref != "" {
		out = append(out, s.Ref)
	}
	for _, key := range propertyOrder(s) {
		out = append(out, refs(s.Properties[key])...)
	}
	out = append(out, refs(s.Items)...)
	for _, o := range s.OneOf {
		out = append(out, refs(o)...)
	}
	return out
}

func propertyOrder(s *Schema) []string {
	if len(s.order) == len(s.Properties) {
		return s.order
	}
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func addNode(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}

func addScalar(m *yaml.Node, key, value string) {
	if value == "" {
		return
	}
	addNode(m, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)}
}

func stringSeq(items []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, it := range items {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: it})
	}
	return seq
}
