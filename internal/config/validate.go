// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/validation"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("hcl"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, errors.KindInternal, "config validation failed")
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if strings.TrimSpace(c.DocsRoot) == "" {
		problems = append(problems, "docs_root: must not be empty")
	}

	if c.FragmentFile != "" {
		if err := validation.ValidateFileName(c.FragmentFile); err != nil {
			problems = append(problems, "fragment_file: "+err.Error())
		}
	}

	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		if err := validation.ValidateLabel(s.Name); err != nil {
			problems = append(problems, fmt.Sprintf("source %q: %v", s.Name, err))
		}
		if seen[s.Name] {
			problems = append(problems, fmt.Sprintf("source %q: declared more than once", s.Name))
		}
		seen[s.Name] = true
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return errors.Errorf(errors.KindConfig, "invalid config: %s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + ": required"
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s: must be %s %s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
}
