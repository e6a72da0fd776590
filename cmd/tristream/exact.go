// The exact subcommand: run the exact reference counter and append the
// ground truth to a report file.
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/katalvlaran/tristream/exact"
)

func cmdExact(args []string, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("exact", flag.ContinueOnError)
	input := fs.String("input", "", "preprocessed stream to count")
	output := fs.String("output", "", "ground-truth report file")
	dynamic := fs.Bool("dynamic", false, "treat the input as a fully-dynamic stream")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *input == "" || *output == "" {
		logger.Error().Msg("exact: --input and --output are required")

		return exitUsage
	}

	f, err := os.Open(*input)
	if err != nil {
		logger.Error().Err(err).Msg("exact: open input")

		return exitRuntime
	}
	defer f.Close()

	start := time.Now()
	var report bytes.Buffer
	report.WriteString("Ground Truth:\n")

	if *dynamic {
		res, err := exact.CountDynamic(f, exact.WithLogger(logger))
		if err != nil {
			logger.Error().Err(err).Msg("exact dynamic count failed")

			return exitRuntime
		}
		fmt.Fprintf(&report, "Number of Unique Nodes = %d\n", res.UniqueNodes)
		fmt.Fprintf(&report, "Number of Nodes at the end = %d\n", res.NodesEnd)
		fmt.Fprintf(&report, "Number of Edges = %d\n", res.Events)
		fmt.Fprintf(&report, "Maximum Number of Edges = %d at time %d in the stream\n", res.MaxEdges, res.MaxEdgesAt)
		fmt.Fprintf(&report, "Number of Edges at the end = %d\n", res.EdgesEnd)
		fmt.Fprintf(&report, "Number of Unique Edges = %d\n", res.UniqueEdges)
		fmt.Fprintf(&report, "Triangles = %d\n", res.Triangles)
		logger.Info().
			Int64("triangles", res.Triangles).
			Dur("elapsed", time.Since(start)).
			Msg("exact dynamic count complete")
	} else {
		res, err := exact.Count(f, exact.WithLogger(logger))
		if err != nil {
			logger.Error().Err(err).Msg("exact count failed")

			return exitRuntime
		}
		fmt.Fprintf(&report, "Nodes = %d\n", res.Nodes)
		fmt.Fprintf(&report, "Edges = %d\n", res.Edges)
		fmt.Fprintf(&report, "Triangles = %d\n", res.Triangles)
		logger.Info().
			Int64("triangles", res.Triangles).
			Dur("elapsed", time.Since(start)).
			Msg("exact count complete")
	}

	if err = appendReport(*output, report.Bytes()); err != nil {
		logger.Error().Err(err).Msg("exact: write report")

		return exitRuntime
	}

	return exitOK
}

// appendReport appends text to the report at path through an atomic
// rewrite.
func appendReport(path string, text []byte) error {
	var buf bytes.Buffer
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		buf.Write(existing)
	case os.IsNotExist(err):
	default:
		return err
	}
	buf.Write(text)

	return atomic.WriteFile(path, &buf)
}
