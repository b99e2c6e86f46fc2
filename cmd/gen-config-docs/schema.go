// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/errors"
)

func (a *app) schemaCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of descriptor files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := configdoc.DescriptorSchema()

			switch format {
			case "json":
				out, err := configdoc.SchemaToJSON(schema)
				if err != nil {
					return errors.Wrap(err, errors.KindInternal, "encoding schema")
				}
				fmt.Fprint(a.stdout, out)
			case "yaml":
				data, err := yaml.Marshal(configdoc.ToYAMLNode(schema))
				if err != nil {
					return errors.Wrap(err, errors.KindInternal, "encoding schema")
				}
				a.stdout.Write(data)
			default:
				return errors.Errorf(errors.KindConfig, "unknown schema format %q (want json or yaml)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml")
	return cmd
}
