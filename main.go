package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"

	"football/experiments"
	"football/game"
	"football/meta"
	"football/searcher"
	"football/strategy"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	p         float64
	q         float64
	policy    string
	dataDir   string
	outDir    string
	print     bool
	graph     bool
	generate  bool
	episodes  int
	seed      uint64
	maxSweeps int
	verbose   bool
}

func main() {
	cfg := parseFlags()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func parseFlags() config {
	var cfg config
	flag.Float64Var(&cfg.p, "p", math.NaN(), "Movement failure parameter p in [0, 0.5]")
	flag.Float64Var(&cfg.q, "q", math.NaN(), "Pass/shoot success parameter q in [0.6, 1]")
	flag.StringVar(&cfg.policy, "policy", "", "Opponent strategy: greedy, park or random")
	flag.StringVar(&cfg.dataDir, "data", meta.DATA_DIR, "Directory holding <policy>_policy.json files")
	flag.StringVar(&cfg.outDir, "out", meta.OUT_DIR, "Directory for experiment records and charts")
	flag.BoolVar(&cfg.print, "print", false, "Pretty print the start state and its chosen action")
	flag.BoolVar(&cfg.graph, "graph", false, "Sweep p and q and chart the goal probability")
	flag.BoolVar(&cfg.generate, "generate", false, "Write the greedy, park and random strategy files into -data")
	flag.IntVar(&cfg.episodes, "episodes", meta.EPISODES, "Sample this many episodes to check the solved value (0 disables)")
	flag.Uint64Var(&cfg.seed, "seed", 1, "Seed for sampled episodes")
	flag.IntVar(&cfg.maxSweeps, "max-sweeps", 0, "Stop value iteration after this many sweeps (0 = until converged)")
	flag.BoolVar(&cfg.verbose, "v", false, "Log every sweep")
	flag.Parse()
	return cfg
}

func run(cfg config) error {
	if cfg.generate {
		return generate(cfg.dataDir)
	}
	if cfg.policy == "" {
		return errors.New("-policy is required")
	}

	table, err := strategy.LoadNamed(cfg.dataDir, cfg.policy)
	if err != nil {
		return fmt.Errorf("failed to load opponent strategy: %w", err)
	}
	log.Info().Msgf("loaded %s strategy with %d states", cfg.policy, len(table))

	var options []searcher.Option
	if cfg.maxSweeps > 0 {
		options = append(options, searcher.WithMaxSweeps(cfg.maxSweeps))
	}

	if cfg.graph {
		dir, err := experiments.RunParamSweep(cfg.outDir, table, meta.START_STATE, meta.SWEEP_P, meta.SWEEP_Q, options...)
		if err != nil {
			return err
		}
		fmt.Printf("Graphs saved to %s\n", dir)
		return nil
	}

	if math.IsNaN(cfg.p) || math.IsNaN(cfg.q) {
		return errors.New("must specify both -p and -q if not using -graph")
	}
	if err := game.ValidateParams(cfg.p, cfg.q); err != nil {
		return err
	}

	start := meta.START_STATE
	model := game.NewModel(cfg.p, cfg.q, table)
	solver := searcher.NewValueIteration(model, options...)
	values, policy := solver.Solve()
	fmt.Printf("Expected goal probability from state %v: %.4f\n", start, values.Get(start))

	if cfg.print {
		fmt.Println("\nInitial State:")
		if err := game.NewRenderer(true).Render(os.Stdout, start); err != nil {
			return err
		}
		if action, ok := policy.Get(start); ok {
			fmt.Printf("\nChosen Action: %v\n", action)
		} else {
			fmt.Println("\nChosen Action: none")
		}
	}

	if cfg.episodes > 0 {
		evaluation := experiments.Evaluate(model, values, policy, start, cfg.episodes, cfg.seed)
		fmt.Printf("Sampled goal rate over %d episodes: %.4f ± %.4f\n", evaluation.Episodes, evaluation.Mean, evaluation.StdErr)
	}
	return nil
}

func generate(dir string) error {
	for _, name := range strategy.Names {
		table, err := strategy.Generate(name)
		if err != nil {
			return err
		}
		path := strategy.Path(dir, name)
		if err := strategy.Save(path, table); err != nil {
			return err
		}
		log.Info().Msgf("wrote %s strategy to %s", name, path)
	}
	return nil
}
