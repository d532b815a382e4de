package main

import (
	"net/http"
	"time"

	"mcsat/engine"
	"mcsat/heuristic"
	"mcsat/meta"
	"mcsat/searcher"
	"mcsat/walk"

	"github.com/spf13/pflag"
)

// settingsFlags exposes every search setting on the command line. A flag
// overrides the settings file only when it was set explicitly.
type settingsFlags struct {
	config           string
	seed             uint64
	branchingLimit   int
	nodeHeuristic    int
	nodeDynamic      bool
	rolloutHeuristic int
	rolloutDynamic   bool
	localSearch      string
	flipsPerVar      int
	walkEps          float64
	explorationC     float64
	advance          string
	steps            int
	nestingLevel     int
	amafCoefficient  float64
	amafBias         float64
}

func addSettingsFlags(fs *pflag.FlagSet) *settingsFlags {
	f := &settingsFlags{}
	fs.StringVar(&f.config, "config", "", "YAML settings file")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed")
	fs.IntVar(&f.branchingLimit, "branching-limit", meta.BRANCHING_LIMIT, "ranked variables a state branches on")
	fs.IntVar(&f.nodeHeuristic, "node-heuristic", meta.NODE_HEURISTIC, "heuristic ranking branching variables (0-3)")
	fs.BoolVar(&f.nodeDynamic, "node-dynamic", false, "rank branching variables dynamically")
	fs.IntVar(&f.rolloutHeuristic, "rollout-heuristic", meta.ROLLOUT_HEURISTIC, "heuristic completing rollouts (0-3)")
	fs.BoolVar(&f.rolloutDynamic, "rollout-dynamic", false, "complete rollouts dynamically")
	fs.StringVar(&f.localSearch, "local-search", meta.LOCAL_SEARCH, "local search (plain, novelty, weighted-plain, weighted-novelty)")
	fs.IntVar(&f.flipsPerVar, "flips-per-var", meta.FLIPS_PER_VAR, "local search flips per variable")
	fs.Float64Var(&f.walkEps, "walk-eps", meta.WALK_EPS, "random walk probability")
	fs.Float64Var(&f.explorationC, "exploration-c", meta.EXPLORATION_C, "UCB exploration constant")
	fs.StringVar(&f.advance, "advance", meta.ADVANCE, "root advancement (once, full, discounted)")
	fs.IntVar(&f.steps, "steps", meta.STEPS, "search steps per root")
	fs.IntVar(&f.nestingLevel, "nesting-level", meta.NESTING_LEVEL, "NMCS nesting level")
	fs.Float64Var(&f.amafCoefficient, "amaf-coefficient", meta.AMAF_COEFFICIENT, "initial AMAF weight")
	fs.Float64Var(&f.amafBias, "amaf-bias", meta.AMAF_BIAS, "AMAF fading bias")
	return f
}

func (f *settingsFlags) options(fs *pflag.FlagSet) ([]searcher.Option, error) {
	var options []searcher.Option
	if f.config != "" {
		loaded, err := searcher.LoadSettings(f.config)
		if err != nil {
			return nil, err
		}
		options = append(options, loaded...)
	}
	set := func(name string, option searcher.Option) {
		if fs.Changed(name) {
			options = append(options, option)
		}
	}

	set("seed", searcher.WithSeed(f.seed))
	set("branching-limit", searcher.WithBranchingLimit(f.branchingLimit))
	if fs.Changed("node-heuristic") {
		kind, err := heuristic.ParseKind(f.nodeHeuristic)
		if err != nil {
			return nil, err
		}
		options = append(options, func(s *searcher.Settings) { s.NodeHeuristic.Kind = kind })
	}
	set("node-dynamic", func(s *searcher.Settings) { s.NodeHeuristic.Dynamic = f.nodeDynamic })
	if fs.Changed("rollout-heuristic") {
		kind, err := heuristic.ParseKind(f.rolloutHeuristic)
		if err != nil {
			return nil, err
		}
		options = append(options, func(s *searcher.Settings) { s.RolloutHeuristic.Kind = kind })
	}
	set("rollout-dynamic", func(s *searcher.Settings) { s.RolloutHeuristic.Dynamic = f.rolloutDynamic })
	if fs.Changed("local-search") {
		variant, err := walk.ParseVariant(f.localSearch)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithLocalSearch(variant))
	}
	set("flips-per-var", searcher.WithFlipsPerVar(f.flipsPerVar))
	set("walk-eps", searcher.WithWalkEps(f.walkEps))
	set("exploration-c", searcher.WithExplorationC(f.explorationC))
	if fs.Changed("advance") {
		advance, err := searcher.ParseAdvance(f.advance)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithAdvance(advance))
	}
	set("steps", searcher.WithSteps(f.steps))
	set("nesting-level", searcher.WithNestingLevel(f.nestingLevel))
	set("amaf-coefficient", func(s *searcher.Settings) { s.AmafCoefficient = f.amafCoefficient })
	set("amaf-bias", func(s *searcher.Settings) { s.AmafBias = f.amafBias })
	return options, nil
}

// engineFlags selects the algorithm and where it runs.
type engineFlags struct {
	algorithm string
	remote    string
	timeout   time.Duration
}

func addEngineFlags(fs *pflag.FlagSet) *engineFlags {
	f := &engineFlags{}
	fs.StringVar(&f.algorithm, "algorithm", engine.MCTS.String(), "search algorithm (rollout, mcts, nmcs, halving)")
	fs.StringVar(&f.remote, "remote", "", "URL of a solve server; empty solves locally")
	fs.DurationVar(&f.timeout, "remote-timeout", 10*time.Minute, "timeout of a remote solve")
	return f
}

func (f *engineFlags) engine() (engine.Engine, engine.Algorithm, error) {
	algorithm, err := engine.ParseAlgorithm(f.algorithm)
	if err != nil {
		return nil, 0, err
	}
	if f.remote == "" {
		return engine.LocalEngine(), algorithm, nil
	}
	return engine.RemoteEngine(f.remote, &http.Client{Timeout: f.timeout}), algorithm, nil
}
