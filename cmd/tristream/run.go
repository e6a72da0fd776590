// The run subcommand: stream a dataset through the matching estimator and
// report the triangle estimate.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/katalvlaran/tristream/oracle"
	"github.com/katalvlaran/tristream/stream"
	"github.com/katalvlaran/tristream/triangles"
)

// runProgressEvery is the interval, in events, between progress logs.
const runProgressEvery = 5_000_000

func cmdRun(args []string, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "hujson experiment config file")
	input := fs.String("input", "", "preprocessed stream to estimate")
	oraclePath := fs.String("oracle", "", "predictor file (optional)")
	oracleType := fs.String("oracle-type", "edges", "predictor kind: edges or nodes")
	dynamic := fs.Bool("dynamic", false, "treat the input as a fully-dynamic stream")
	seed := fs.Int64("seed", 1, "random seed")
	budget := fs.Int64("budget", 100_000, "memory budget k (retained edges)")
	alpha := fs.Float64("alpha", 0.05, "waiting-room fraction, in (0,1)")
	beta := fs.Float64("beta", 0.2, "heavy-set fraction, in (0,1)")
	output := fs.String("output", "", "results CSV (optional)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg := defaultExperiment()
	if *configPath != "" {
		if err := loadExperiment(*configPath, &cfg); err != nil {
			logger.Error().Err(err).Msg("run: load config")

			return exitUsage
		}
	}
	// Explicitly-set flags win over config file values.
	applyFlag := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	applyFlag("input", func() { cfg.Input = *input })
	applyFlag("oracle", func() { cfg.Oracle = *oraclePath })
	applyFlag("oracle-type", func() { cfg.OracleType = *oracleType })
	applyFlag("dynamic", func() { cfg.Dynamic = *dynamic })
	applyFlag("seed", func() { cfg.Seed = *seed })
	applyFlag("budget", func() { cfg.Budget = *budget })
	applyFlag("alpha", func() { cfg.Alpha = *alpha })
	applyFlag("beta", func() { cfg.Beta = *beta })
	applyFlag("output", func() { cfg.Output = *output })

	if cfg.Input == "" {
		logger.Error().Msg("run: --input (or config input) is required")

		return exitUsage
	}

	// Load the predictor, if any.
	var (
		pred       oracle.Oracle
		oracleKind = "None"
		oracleSize int
		oracleTime float64
	)
	if cfg.Oracle != "" {
		start := time.Now()
		f, err := os.Open(cfg.Oracle)
		if err != nil {
			logger.Error().Err(err).Msg("run: open oracle")

			return exitRuntime
		}
		switch cfg.OracleType {
		case "edges":
			m, err := oracle.LoadEdgeMap(f, 0)
			if err != nil {
				f.Close()
				logger.Error().Err(err).Msg("run: load edge oracle")

				return exitRuntime
			}
			pred, oracleKind, oracleSize = m, "Edges", len(m)
		case "nodes":
			m, err := oracle.LoadNodeMap(f, 0)
			if err != nil {
				f.Close()
				logger.Error().Err(err).Msg("run: load node oracle")

				return exitRuntime
			}
			pred, oracleKind, oracleSize = m, "Nodes", len(m)
		default:
			f.Close()
			logger.Error().Str("oracle-type", cfg.OracleType).Msg("run: oracle-type must be edges or nodes")

			return exitUsage
		}
		f.Close()
		oracleTime = time.Since(start).Seconds()
		logger.Info().
			Str("kind", oracleKind).
			Int("entries", oracleSize).
			Float64("seconds", oracleTime).
			Msg("oracle loaded")
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		logger.Error().Err(err).Msg("run: open input")

		return exitRuntime
	}
	defer in.Close()

	logger.Info().
		Int64("budget", cfg.Budget).
		Float64("alpha", cfg.Alpha).
		Float64("beta", cfg.Beta).
		Int64("seed", cfg.Seed).
		Bool("dynamic", cfg.Dynamic).
		Msg("starting estimation")

	var (
		algo     string
		estimate float64
		elapsed  time.Duration
	)
	if cfg.Dynamic {
		algo = "tristream-fd"
		est, err := triangles.NewDynamic(cfg.Seed, cfg.Budget, cfg.Alpha, cfg.Beta, triangles.WithOracle(pred))
		if err != nil {
			logger.Error().Err(err).Msg("run: construct dynamic estimator")

			return exitUsage
		}

		start := time.Now()
		err = stream.ReadDynamic(in, func(ev stream.Event) error {
			sign := triangles.SignInsert
			if ev.Sign == stream.Delete {
				sign = triangles.SignDelete
			}
			if err := est.ProcessEdge(ev.U, ev.V, ev.T, sign); err != nil {
				return err
			}
			if est.EdgesProcessed()%runProgressEvery == 0 {
				logger.Info().
					Int64("events", est.EdgesProcessed()).
					Float64("estimate", est.GlobalTriangles()).
					Msg("streaming")
			}

			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("run: dynamic estimation failed")

			return exitRuntime
		}
		elapsed = time.Since(start)
		estimate = est.GlobalTriangles()
	} else {
		algo = "tristream-ins"
		est, err := triangles.New(cfg.Seed, cfg.Budget, cfg.Alpha, cfg.Beta, triangles.WithOracle(pred))
		if err != nil {
			logger.Error().Err(err).Msg("run: construct estimator")

			return exitUsage
		}

		start := time.Now()
		err = stream.ReadInsertions(in, func(ev stream.Event) error {
			if err := est.ProcessEdge(ev.U, ev.V); err != nil {
				return err
			}
			if est.EdgesProcessed()%runProgressEvery == 0 {
				logger.Info().
					Int64("events", est.EdgesProcessed()).
					Float64("estimate", est.GlobalTriangles()).
					Msg("streaming")
			}

			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("run: estimation failed")

			return exitRuntime
		}
		elapsed = time.Since(start)
		estimate = est.GlobalTriangles()
	}

	logger.Info().
		Str("algo", algo).
		Float64("estimate", estimate).
		Dur("elapsed", elapsed).
		Msg("estimation complete")

	if cfg.Output != "" {
		row := resultRow{
			Algo:         algo,
			Alpha:        cfg.Alpha,
			Beta:         cfg.Beta,
			OracleKind:   oracleKind,
			OracleSize:   oracleSize,
			OracleTime:   oracleTime,
			MemoryBudget: cfg.Budget,
			Estimate:     estimate,
			RunTime:      elapsed.Seconds(),
		}
		if err := appendResult(cfg.Output, row); err != nil {
			logger.Error().Err(err).Msg("run: write results")

			return exitRuntime
		}
	}

	return exitOK
}
