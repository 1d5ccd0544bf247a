// Command ecsbench spawns a population of entities, runs a schedule over
// them for a fixed number of ticks, and reports the metrics package's
// Prometheus collectors. It is a consumer of ecsframe, not part of the
// library's public contract.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/murklake/ecsframe/metrics"
	"github.com/murklake/ecsframe/schedule"
	"github.com/murklake/ecsframe/world"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("ecsbench: fatal error")
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		entities   int
		ticks      int
		parallel   bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "ecsbench",
		Short: "Run a small benchmark schedule over ecsframe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cfg.Entities > 0 {
				entities = cfg.Entities
			}
			if cfg.Ticks > 0 {
				ticks = cfg.Ticks
			}
			if cfg.Parallel {
				parallel = true
			}

			return run(entities, ticks, parallel)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML benchmark config")
	cmd.Flags().IntVar(&entities, "entities", 1000, "number of entities to spawn")
	cmd.Flags().IntVar(&ticks, "ticks", 100, "number of schedule passes to run")
	cmd.Flags().BoolVar(&parallel, "parallel-stage", false, "run the movement stage as a Parallel stage instead of Sequential")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(entities, ticks int, parallel bool) error {
	w := world.New()
	rng := rand.New(rand.NewSource(1))
	populate(w, entities, rng)

	reg := prometheus.NewRegistry()
	m := metrics.NewRegistry(reg)

	var stage *schedule.SystemStage
	if parallel {
		stage = schedule.Parallel()
	} else {
		stage = schedule.Sequential()
	}
	stage.AddSystem(schedule.AsDescriptor(m.Timed(movementSystem())))

	s := schedule.Empty()
	s.AddStage(schedule.NewLabel[struct{}]("bench", 0), stage)

	log.Info().Int("entities", entities).Int("ticks", ticks).Bool("parallel", parallel).Msg("ecsbench: starting run")

	for i := 0; i < ticks; i++ {
		s.RunOnce(w)
		m.ObserveScheduleRun()
	}
	m.ObserveWorld(w)

	return printMetrics(reg)
}

func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("ecsbench: gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(os.Stdout, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("ecsbench: encoding metrics: %w", err)
		}
	}
	return nil
}
