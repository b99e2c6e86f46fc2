// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columns(t *testing.T, row string) []string {
	t.Helper()
	require.True(t, strings.HasPrefix(row, "| "), "row %q", row)
	parts := strings.Split(strings.TrimPrefix(row, "| "), " | ")
	require.Len(t, parts, 5, "row %q", row)
	return parts
}

func TestRenderRow_Example(t *testing.T) {
	p := ParameterDescriptor{
		Name:        "tolerance",
		Type:        Scalar("float"),
		Default:     DefaultOf("0.0001"),
		Optional:    true,
		Description: "termination threshold",
	}
	links := LinkTable{Base: BaseLink, Anchors: map[string]string{"tolerance": "common-configuration-tolerance"}}

	got := RenderRow(&p, links)
	want := "| xref:common-usage/running-algos.adoc#common-configuration-tolerance[tolerance] | float | 0.0001 | yes | termination threshold"
	assert.Equal(t, want, got)
}

func TestRenderRow_Columns(t *testing.T) {
	links := DefaultLinkTable()

	tests := []struct {
		name  string
		param ParameterDescriptor
		want  []string
	}{
		{
			name: "required scalar",
			param: ParameterDescriptor{
				Name: "dampingFactor", Type: Scalar("Float"), Default: DefaultOf("0.85"),
				Optional: false, Description: "The damping factor.",
			},
			want: []string{"dampingFactor", "Float", "0.85", "no", "The damping factor."},
		},
		{
			name: "null default",
			param: ParameterDescriptor{
				Name: "sourceNodes", Type: Scalar("List"), Default: NullDefault(),
				Optional: true, Description: "Source nodes.",
			},
			want: []string{"sourceNodes", "List", "null", "yes", "Source nodes."},
		},
		{
			name: "union type",
			param: ParameterDescriptor{
				Name: "scaler", Type: Union("String", "Map", "List"), Default: DefaultOf("None"),
				Optional: true, Description: "Scaler.",
			},
			want: []string{"scaler", "String or Map or List", "None", "yes", "Scaler."},
		},
		{
			name: "single-member union",
			param: ParameterDescriptor{
				Name: "weights", Type: Union("List"), Optional: true,
			},
			want: []string{"weights", "List", "null", "yes", ""},
		},
		{
			name: "linked name",
			param: ParameterDescriptor{
				Name: "maxIterations", Type: Scalar("Integer"), Default: DefaultOf("20"),
				Optional: true, Description: "Maximum iterations.",
			},
			want: []string{
				BaseLink + "common-configuration-max-iterations[maxIterations]",
				"Integer", "20", "yes", "Maximum iterations.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderRow(&tt.param, links)
			if tt.param.Description == "" {
				// trailing empty column keeps the separator
				assert.True(t, strings.HasSuffix(got, " | "), "row %q", got)
				got += "x"
				tt.want[4] = "x"
			}
			assert.Equal(t, tt.want, columns(t, got))
		})
	}
}

func TestRender_HeaderRowsAndNotes(t *testing.T) {
	desc := &AlgorithmDescriptor{
		Name:     "PageRank",
		PagePath: "algorithms/page-rank",
		Config: []ParameterDescriptor{
			{Name: "dampingFactor", Type: Scalar("Float"), Default: DefaultOf("0.85"), Optional: true, Description: "Damping."},
			{Name: "tolerance", Type: Scalar("Float"), Default: DefaultOf("0.0000001"), Optional: true, Description: "Tolerance."},
		},
		ConfigNotes: []string{"Scores are not normalized.", "See the common usage page."},
	}

	lines := Render(desc, DefaultLinkTable())
	require.Len(t, lines, 5)
	assert.Equal(t, GeneratedWarning, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "| dampingFactor |"))
	assert.True(t, strings.Contains(lines[2], "[tolerance]"))
	assert.Equal(t, "5+| Scores are not normalized.", lines[3])
	assert.Equal(t, "5+| See the common usage page.", lines[4])
}

func TestRender_EmptyConfig(t *testing.T) {
	desc := &AlgorithmDescriptor{Name: "Empty", PagePath: "algorithms/empty", Config: []ParameterDescriptor{}}

	lines := Render(desc, DefaultLinkTable())
	assert.Equal(t, []string{GeneratedWarning}, lines)
	assert.Equal(t, GeneratedWarning+"\n", Content(lines))
}

func TestRender_Idempotent(t *testing.T) {
	desc := &AlgorithmDescriptor{
		Name:     "Louvain",
		PagePath: "algorithms/louvain",
		Config: []ParameterDescriptor{
			{Name: "seedProperty", Type: Scalar("String"), Optional: true, Description: "Seed."},
			{Name: "includeIntermediateCommunities", Type: Scalar("Boolean"), Default: DefaultOf("false"), Optional: true, Description: "Intermediate."},
		},
	}

	first := Content(Render(desc, DefaultLinkTable()))
	second := Content(Render(desc, DefaultLinkTable()))
	assert.Equal(t, first, second)
}

func TestLinkTable(t *testing.T) {
	links := DefaultLinkTable().With(map[string]string{"dampingFactor": "pagerank-damping"})

	assert.Equal(t, BaseLink+"pagerank-damping[dampingFactor]", links.Link("dampingFactor"))
	assert.Equal(t, "unknownParam", links.Link("unknownParam"))

	// the built-in table is not mutated by With
	_, ok := DefaultLinkTable().Anchors["dampingFactor"]
	assert.False(t, ok)

	noBase := LinkTable{Anchors: map[string]string{"a": "b"}}
	assert.Equal(t, BaseLink+"b[a]", noBase.Link("a"))
}

func TestInclusionSet(t *testing.T) {
	set := NewInclusionSet("PageRank")
	assert.True(t, set.Includes("PageRank"))
	assert.False(t, set.Includes("Louvain"))

	var all InclusionSet
	assert.True(t, all.Includes("Louvain"))

	assert.Equal(t, []string{"A", "B"}, NewInclusionSet("B", "A").Names())
	assert.True(t, DefaultInclusionSet().Includes("PageRank"))
	assert.False(t, DefaultInclusionSet().Includes("Louvain"))
}

func TestParamType(t *testing.T) {
	assert.False(t, Scalar("Integer").IsUnion())
	assert.True(t, Union("a", "b").IsUnion())
	assert.Equal(t, []string{"Integer"}, Scalar("Integer").Names())
	assert.Equal(t, "a or b", Union("a", "b").String())
	assert.True(t, ParamType{}.IsZero())
}
