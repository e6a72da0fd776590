// The build-oracle subcommand: derive a heaviness predictor from a
// preprocessed insertion stream.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/katalvlaran/tristream/oracle"
)

func cmdBuildOracle(args []string, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("build-oracle", flag.ContinueOnError)
	input := fs.String("input", "", "preprocessed insertion stream")
	kind := fs.String("type", "edges", "predictor kind: edges, edges-nowr, nodes")
	retain := fs.Float64("retain", 0.1, "fraction of entries to keep, in (0,1]")
	output := fs.String("output", "", "where to write the predictor")
	wrSize := fs.Int64("wr-size", 0, "waiting-room size for edges-nowr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *input == "" || *output == "" {
		logger.Error().Msg("build-oracle: --input and --output are required")

		return exitUsage
	}
	if *kind == "edges-nowr" && *wrSize <= 0 {
		logger.Error().Msg("build-oracle: edges-nowr requires --wr-size > 0")

		return exitUsage
	}

	f, err := os.Open(*input)
	if err != nil {
		logger.Error().Err(err).Msg("build-oracle: open input")

		return exitRuntime
	}
	defer f.Close()

	start := time.Now()
	switch *kind {
	case "edges":
		m, err := oracle.BuildEdgeExact(f, *retain, oracle.WithLogger(logger))
		if err != nil {
			logger.Error().Err(err).Msg("build-oracle failed")

			return exitRuntime
		}
		if err = oracle.WriteEdgeMap(*output, m); err != nil {
			logger.Error().Err(err).Msg("build-oracle: write output")

			return exitRuntime
		}
		logger.Info().Int("entries", len(m)).Dur("elapsed", time.Since(start)).Msg("edge oracle written")
	case "edges-nowr":
		m, err := oracle.BuildEdgeExactNoWR(f, *retain, *wrSize, oracle.WithLogger(logger))
		if err != nil {
			logger.Error().Err(err).Msg("build-oracle failed")

			return exitRuntime
		}
		if err = oracle.WriteEdgeMap(*output, m); err != nil {
			logger.Error().Err(err).Msg("build-oracle: write output")

			return exitRuntime
		}
		logger.Info().Int("entries", len(m)).Dur("elapsed", time.Since(start)).Msg("noWR edge oracle written")
	case "nodes":
		m, err := oracle.BuildNodeDegree(f, *retain, oracle.WithLogger(logger))
		if err != nil {
			logger.Error().Err(err).Msg("build-oracle failed")

			return exitRuntime
		}
		if err = oracle.WriteNodeMap(*output, m); err != nil {
			logger.Error().Err(err).Msg("build-oracle: write output")

			return exitRuntime
		}
		logger.Info().Int("entries", len(m)).Dur("elapsed", time.Since(start)).Msg("node oracle written")
	default:
		logger.Error().Str("type", *kind).Msg("build-oracle: type must be edges, edges-nowr, or nodes")

		return exitUsage
	}

	return exitOK
}
