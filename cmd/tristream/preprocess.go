// The preprocess subcommand: normalize a raw edge list into the canonical
// insertion-stream format.
package main

import (
	"os"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/katalvlaran/tristream/stream"
)

func cmdPreprocess(args []string, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("preprocess", flag.ContinueOnError)
	input := fs.String("input", "", "raw edge list to normalize")
	output := fs.String("output", "", "where to write the canonical stream")
	delimiter := fs.String("delimiter", "", "field delimiter (default: whitespace)")
	skip := fs.Int64("skip", 0, "header lines to skip")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *input == "" || *output == "" {
		logger.Error().Msg("preprocess: --input and --output are required")

		return exitUsage
	}

	f, err := os.Open(*input)
	if err != nil {
		logger.Error().Err(err).Msg("preprocess: open input")

		return exitRuntime
	}
	defer f.Close()

	events, stats, err := stream.Preprocess(f,
		stream.WithDelimiter(*delimiter),
		stream.WithSkip(*skip),
		stream.WithLogger(logger),
	)
	if err != nil {
		logger.Error().Err(err).Msg("preprocess failed")

		return exitRuntime
	}

	if err = stream.WritePreprocessed(*output, events); err != nil {
		logger.Error().Err(err).Msg("preprocess: write output")

		return exitRuntime
	}

	logger.Info().
		Int64("nodes", stats.Nodes).
		Int64("edges", stats.Edges).
		Str("output", *output).
		Msg("dataset preprocessed")

	return exitOK
}
