// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDescriptorSchema_JSON(t *testing.T) {
	out, err := SchemaToJSON(DescriptorSchema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, SchemaID, doc["$id"])

	defs := doc["$defs"].(map[string]any)
	param := defs["parameter"].(map[string]any)
	assert.ElementsMatch(t, []any{"name", "type", "optional", "description"}, param["required"])

	algo := defs["algorithm"].(map[string]any)
	assert.ElementsMatch(t, []any{"name", "page_path", "config"}, algo["required"])
	config := algo["properties"].(map[string]any)["config"].(map[string]any)
	assert.Equal(t, "#/$defs/parameter", config["items"].(map[string]any)["$ref"])

	assert.Len(t, doc["oneOf"], 3)
}

func TestDescriptorSchema_RequiredMatchesLoader(t *testing.T) {
	// every field the schema marks required must be rejected by the loader when missing
	schema := DescriptorSchema()
	base := map[string]any{"name": "p", "type": "Float", "optional": true, "description": "d"}

	for _, field := range schema.Defs["parameter"].Required {
		t.Run(field, func(t *testing.T) {
			param := make(map[string]any)
			for k, v := range base {
				if k != field {
					param[k] = v
				}
			}
			doc, err := json.Marshal([]any{map[string]any{
				"name": "A", "page_path": "algorithms/a", "config": []any{param},
			}})
			require.NoError(t, err)

			entries, err := NewLoader().Load(strings.NewReader(string(doc)), "test.json", FormatJSON)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Error(t, entries[0].Err)
		})
	}
}

func TestToYAMLNode(t *testing.T) {
	data, err := yaml.Marshal(ToYAMLNode(DescriptorSchema()))
	require.NoError(t, err)
	out := string(data)

	// parameter is defined before algorithm, which aliases it
	paramAt := strings.Index(out, "parameter: &parameter")
	algoAt := strings.Index(out, "algorithm: &algorithm")
	require.GreaterOrEqual(t, paramAt, 0, out)
	require.GreaterOrEqual(t, algoAt, 0, out)
	assert.Less(t, paramAt, algoAt)
	assert.Contains(t, out, "items: *parameter")
	assert.Contains(t, out, "items: *algorithm")
	assert.NotContains(t, out, "$ref")

	// anchors and aliases resolve back to plain data
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, SchemaID, decoded["$id"])
}

func TestDefOrder(t *testing.T) {
	defs := map[string]*Schema{
		"a": {Items: &Schema{Ref: "#/$defs/c"}},
		"b": {},
		"c": {Properties: map[string]*Schema{"x": {Ref: "#/$defs/b"}}},
	}
	assert.Equal(t, []string{"b", "c", "a"}, defOrder(defs))
}
