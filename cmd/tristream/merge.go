// The merge-fd subcommand: derive a fully-dynamic stream from a directory
// of graph snapshots.
package main

import (
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/katalvlaran/tristream/stream"
)

func cmdMergeFD(args []string, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("merge-fd", flag.ContinueOnError)
	dir := fs.String("dir", "", "directory of snapshot .txt files")
	snapshots := fs.Int("snapshots", 0, "number of snapshots to merge")
	output := fs.String("output", "", "where to write the dynamic stream")
	seed := fs.Int64("seed", 0, "seed for deletion timestamps (0 = fixed default)")
	delimiter := fs.String("delimiter", "", "snapshot field delimiter (default: whitespace)")
	skip := fs.Int64("skip", 0, "header lines to skip per snapshot")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *dir == "" || *output == "" || *snapshots <= 0 {
		logger.Error().Msg("merge-fd: --dir, --snapshots and --output are required")

		return exitUsage
	}

	start := time.Now()
	events, err := stream.MergeSnapshots(*dir, *snapshots,
		stream.WithMergeDelimiter(*delimiter),
		stream.WithMergeSkip(*skip),
		stream.WithMergeSeed(*seed),
		stream.WithMergeLogger(logger),
	)
	if err != nil {
		logger.Error().Err(err).Msg("merge-fd failed")

		return exitRuntime
	}

	if err = stream.WriteDynamic(*output, events); err != nil {
		logger.Error().Err(err).Msg("merge-fd: write output")

		return exitRuntime
	}

	logger.Info().
		Int("events", len(events)).
		Dur("elapsed", time.Since(start)).
		Str("output", *output).
		Msg("fully-dynamic stream written")

	return exitOK
}
