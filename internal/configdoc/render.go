// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"fmt"
	"strings"
)

// GeneratedWarning is the first line of every fragment.
const GeneratedWarning = "// DO NOT EDIT: File generated automatically by gen-config-docs"

// Render produces the fragment lines for one algorithm: the generated-file
// warning, one row per parameter in descriptor order, then one full-width row
// per config note.
func Render(desc *AlgorithmDescriptor, links LinkTable) []string {
	lines := make([]string, 0, 1+len(desc.Config)+len(desc.ConfigNotes))
	lines = append(lines, GeneratedWarning)

	for i := range desc.Config {
		lines = append(lines, RenderRow(&desc.Config[i], links))
	}
	for _, note := range desc.ConfigNotes {
		lines = append(lines, "5+| "+note)
	}

	return lines
}

// RenderRow formats a single parameter as a five-column table row. Defaults
// are printed as the descriptor spells them: 0.0000001 stays 0.0000001 rather
// than 1e-07, and booleans stay lowercase.
func RenderRow(p *ParameterDescriptor, links LinkTable) string {
	return fmt.Sprintf("| %s | %s | %s | %s | %s",
		links.Link(p.Name), p.Type.String(), p.Default.String(), yesNo(p.Optional), p.Description)
}

// Content joins rendered lines into file content with a trailing newline.
func Content(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
