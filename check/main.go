package main

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/zeebo/bitpacket"
	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"github.com/zeebo/mon/monhandler"
	"github.com/zeebo/pcg"
)

var rng pcg.T

func stats() {
	defer fmt.Fprintln(os.Stderr)

	tw := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	mon.Times(func(name string, state *mon.State) bool {
		sum, avg := state.Average()
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n",
			name, state.Total(), time.Duration(sum), time.Duration(avg))
		return true
	})
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().
		Logger()
}

func main() {
	cfg, err := parseConfig(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	log := newLogger(cfg.Verbose)
	if cfg.Verbose {
		defer stats()
	}

	if cfg.Monitor != "" {
		log.Info().Str("addr", cfg.Monitor).Msg("serving timing stats")
		go func() {
			if err := http.ListenAndServe(cfg.Monitor, monhandler.Handler{}); err != nil {
				log.Error().Err(err).Msg("stats server stopped")
			}
		}()
	}

	if err := run(log, cfg); err != nil {
		log.Fatal().Msgf("%+v", err)
	}
}

func run(log zerolog.Logger, cfg config) error {
	opts := bitpacket.Options{StrictPadding: cfg.Strict}

	if cfg.Audit > 0 {
		log.Info().Int("count", cfg.Audit).Bool("strict", cfg.Strict).Msg("auditing random transmissions")
		counts, err := audit(&rng, cfg.Audit, opts)
		if err != nil {
			return errs.Wrap(err)
		}
		return errs.Wrap(counts.print(os.Stdout))
	}

	line, err := readInput(cfg.Input)
	if err != nil {
		return errs.Wrap(err)
	}
	log.Debug().Str("input", cfg.Input).Int("digits", len(line)).Msg("read transmission")

	root, err := bitpacket.DecodeWith(line, opts)
	if err != nil {
		return errs.Wrap(err)
	}
	log.Debug().
		Int("packets", root.Count()).
		Int("depth", root.Depth()).
		Uint("bits", root.BitLength).
		Msg("decoded")

	if cfg.Dump {
		if err := bitpacket.Dump(os.Stdout, root); err != nil {
			return errs.Wrap(err)
		}
	}

	res, err := bitpacket.Evaluate(root)
	if err != nil {
		return errs.Wrap(err)
	}

	fmt.Printf("version sum: %d\n", res.VersionSum)
	fmt.Printf("value: %v\n", res.Value)
	return nil
}
