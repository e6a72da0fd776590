// Package main provides tristream, the command-line front end for the
// streaming triangle estimators: dataset preprocessing, exact ground
// truth, oracle building, fully-dynamic stream derivation, and the
// estimation runs themselves.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Exit codes: 0 success, 1 usage error, 2 runtime failure.
const (
	exitOK      = 0
	exitUsage   = 1
	exitRuntime = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches the subcommand. Kept apart from main so tests can drive
// the CLI without spawning a process.
func run(args []string) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(args) == 0 {
		usage()

		return exitUsage
	}

	switch args[0] {
	case "preprocess":
		return cmdPreprocess(args[1:], logger)
	case "exact":
		return cmdExact(args[1:], logger)
	case "build-oracle":
		return cmdBuildOracle(args[1:], logger)
	case "merge-fd":
		return cmdMergeFD(args[1:], logger)
	case "run":
		return cmdRun(args[1:], logger)
	case "help", "-h", "--help":
		usage()

		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "tristream: unknown command %q\n\n", args[0])
		usage()

		return exitUsage
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `tristream - oracle-assisted streaming triangle estimation

Usage:
  tristream preprocess   --input FILE --output FILE [--delimiter D] [--skip N]
  tristream exact        --input FILE --output FILE [--dynamic]
  tristream build-oracle --input FILE --type edges|edges-nowr|nodes --retain F --output FILE [--wr-size N]
  tristream merge-fd     --dir DIR --snapshots N --output FILE [--seed S] [--delimiter D] [--skip N]
  tristream run          --input FILE [--oracle FILE --oracle-type edges|nodes]
                         [--dynamic] [--seed S] [--budget K] [--alpha A] [--beta B]
                         [--output FILE] [--config FILE]
  tristream help
`)
}
