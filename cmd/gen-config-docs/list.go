// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"grimm.is/algodocs/internal/config"
	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/errors"
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styleIncluded = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // Green
	styleSkipped  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")) // Grey
	styleInvalid  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// listRow is one algorithm in the list output.
type listRow struct {
	name, page, params, status, source string
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [descriptor...]",
		Short: "List the algorithms in the descriptor files and whether they are rendered",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			srcs, err := sources(cfg, args)
			if err != nil {
				return err
			}

			loader := configdoc.NewLoader()
			var rows []listRow
			failed := false
			for i := range srcs {
				src := &srcs[i]
				entries, err := loadSource(loader, src)
				if err != nil {
					failed = true
					a.logger.Error("descriptor file not loaded", append([]any{"error", err}, errors.KeyVals(err)...)...)
					continue
				}
				rows = append(rows, listRows(cfg, src, entries)...)
			}

			fmt.Fprint(a.stdout, formatList(rows))
			if failed {
				return errFailed
			}
			return nil
		},
	}
	a.addIncludeFlags(cmd)
	return cmd
}

func listRows(cfg *config.Config, src *config.Source, entries []configdoc.Entry) []listRow {
	include := cfg.InclusionSet(src)
	rows := make([]listRow, 0, len(entries))
	for _, e := range entries {
		row := listRow{name: e.Name, source: src.Name, page: "-", params: "-"}
		if e.Descriptor != nil {
			row.page = e.Descriptor.PagePath
			row.params = strconv.Itoa(len(e.Descriptor.Config))
		}
		switch {
		case e.Err != nil:
			row.status = "invalid"
		case include.Includes(e.Name):
			row.status = "included"
		default:
			row.status = "skipped"
		}
		if row.name == "" {
			row.name = "?"
		}
		rows = append(rows, row)
	}
	return rows
}

// formatList renders rows as an aligned table.
func formatList(rows []listRow) string {
	header := listRow{name: "ALGORITHM", page: "PAGE", params: "PARAMS", status: "STATUS", source: "SOURCE"}
	widths := [5]int{}
	for _, r := range append([]listRow{header}, rows...) {
		for i, cell := range r.cells() {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(pad(header.cells(), widths)))
	b.WriteString("\n")
	for _, r := range rows {
		line := pad(r.cells(), widths)
		switch r.status {
		case "included":
			line = styleIncluded.Render(line)
		case "invalid":
			line = styleInvalid.Render(line)
		default:
			line = styleSkipped.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (r listRow) cells() []string {
	return []string{r.name, r.page, r.params, r.status, r.source}
}

func pad(cells []string, widths [5]int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = lipgloss.NewStyle().Width(widths[i]).Render(c)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
