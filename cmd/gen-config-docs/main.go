// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// gen-config-docs generates the AsciiDoc configuration tables of algorithm
// documentation pages from algorithm descriptor files.
//
// Usage:
//
//	go run ./cmd/gen-config-docs render doc/config/algorithms.json
//	go run ./cmd/gen-config-docs check --config gen-config-docs.hcl
//	go run ./cmd/gen-config-docs list --all algorithms.csv
//	go run ./cmd/gen-config-docs init
package main

import (
	"fmt"
	"io"
	"os"

	"grimm.is/algodocs/internal/errors"
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1 // an algorithm failed, a fragment is stale or an I/O error occurred
	exitUsage  = 2 // bad arguments or configuration
)

// errFailed reports a run whose failures were already logged.
var errFailed = errors.New(errors.KindInternal, "one or more algorithms failed")

// errStale reports a check run that found stale fragments.
var errStale = errors.New(errors.KindInternal, "one or more fragments are stale")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	if !errors.Is(err, errFailed) && !errors.Is(err, errStale) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps an error to the process exit status. Errors that carry no
// Kind come from argument parsing.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFailed), errors.Is(err, errStale):
		return exitFailed
	}
	switch errors.GetKind(err) {
	case errors.KindUnknown, errors.KindConfig, errors.KindNotFound:
		return exitUsage
	default:
		return exitFailed
	}
}
