package searcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"mcsat/experiments/metrics"
	"mcsat/heuristic"
	"mcsat/meta"
	"mcsat/walk"

	"gopkg.in/yaml.v3"
)

// Advance decides what happens to the root once its budget is spent.
type Advance int

const (
	// Once searches from the initial root only.
	Once Advance = iota
	// Full commits to the greedy action and searches again from there.
	Full
	// Discounted is Full, minus the visits the new root already holds.
	Discounted
)

var advanceNames = [...]string{Once: "once", Full: "full", Discounted: "discounted"}

func (a Advance) String() string {
	if a < 0 || int(a) >= len(advanceNames) {
		return fmt.Sprintf("Advance(%d)", int(a))
	}
	return advanceNames[a]
}

func ParseAdvance(name string) (Advance, error) {
	for a, n := range advanceNames {
		if n == name {
			return Advance(a), nil
		}
	}
	return 0, fmt.Errorf("unknown root advancement %q", name)
}

type Settings struct {
	Seed             uint64
	BranchingLimit   int // 0 means every unassigned variable
	NodeHeuristic    heuristic.Heuristic
	RolloutHeuristic heuristic.Heuristic
	LocalSearch      walk.Variant
	FlipsPerVar      int
	WalkEps          float64
	ExplorationC     float64
	Advance          Advance
	Steps            int
	NestingLevel     int
	AmafCoefficient  float64
	AmafBias         float64

	collector metrics.Collector
}

type Option func(s *Settings)

func DefaultSettings() Settings {
	variant, err := walk.ParseVariant(meta.LOCAL_SEARCH)
	if err != nil {
		panic(err)
	}
	advance, err := ParseAdvance(meta.ADVANCE)
	if err != nil {
		panic(err)
	}
	return Settings{
		BranchingLimit:   meta.BRANCHING_LIMIT,
		NodeHeuristic:    heuristic.Heuristic{Kind: heuristic.Kind(meta.NODE_HEURISTIC)},
		RolloutHeuristic: heuristic.Heuristic{Kind: heuristic.Kind(meta.ROLLOUT_HEURISTIC)},
		LocalSearch:      variant,
		FlipsPerVar:      meta.FLIPS_PER_VAR,
		WalkEps:          meta.WALK_EPS,
		ExplorationC:     meta.EXPLORATION_C,
		Advance:          advance,
		Steps:            meta.STEPS,
		NestingLevel:     meta.NESTING_LEVEL,
		AmafCoefficient:  meta.AMAF_COEFFICIENT,
		AmafBias:         meta.AMAF_BIAS,
		collector:        metrics.NewDummyCollector(),
	}
}

// NewSettings applies options over the defaults.
func NewSettings(options ...Option) Settings {
	s := DefaultSettings()
	for _, option := range options {
		option(&s)
	}
	return s
}

func (s Settings) Validate() error {
	var errs []error
	if s.BranchingLimit < 0 {
		errs = append(errs, fmt.Errorf("branching limit must not be negative, got %d", s.BranchingLimit))
	}
	if s.FlipsPerVar < 0 {
		errs = append(errs, fmt.Errorf("flips per variable must not be negative, got %d", s.FlipsPerVar))
	}
	if s.WalkEps < 0 || s.WalkEps > 1 {
		errs = append(errs, fmt.Errorf("walk probability must be in [0, 1], got %v", s.WalkEps))
	}
	if s.ExplorationC < 0 {
		errs = append(errs, fmt.Errorf("exploration constant must not be negative, got %v", s.ExplorationC))
	}
	if s.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", s.Steps))
	}
	if s.NestingLevel < 0 {
		errs = append(errs, fmt.Errorf("nesting level must not be negative, got %d", s.NestingLevel))
	}
	if s.AmafCoefficient < 0 || s.AmafCoefficient > 1 {
		errs = append(errs, fmt.Errorf("amaf coefficient must be in [0, 1], got %v", s.AmafCoefficient))
	}
	if s.AmafBias < 0 {
		errs = append(errs, fmt.Errorf("amaf bias must not be negative, got %v", s.AmafBias))
	}
	return errors.Join(errs...)
}

func WithSeed(seed uint64) Option {
	return func(s *Settings) {
		s.Seed = seed
	}
}

func WithBranchingLimit(limit int) Option {
	return func(s *Settings) {
		s.BranchingLimit = limit
	}
}

func WithNodeHeuristic(h heuristic.Heuristic) Option {
	return func(s *Settings) {
		s.NodeHeuristic = h
	}
}

func WithRolloutHeuristic(h heuristic.Heuristic) Option {
	return func(s *Settings) {
		s.RolloutHeuristic = h
	}
}

func WithLocalSearch(variant walk.Variant) Option {
	return func(s *Settings) {
		s.LocalSearch = variant
	}
}

func WithFlipsPerVar(flips int) Option {
	return func(s *Settings) {
		s.FlipsPerVar = flips
	}
}

func WithWalkEps(eps float64) Option {
	return func(s *Settings) {
		s.WalkEps = eps
	}
}

func WithExplorationC(c float64) Option {
	return func(s *Settings) {
		s.ExplorationC = c
	}
}

func WithAdvance(advance Advance) Option {
	return func(s *Settings) {
		s.Advance = advance
	}
}

func WithSteps(steps int) Option {
	return func(s *Settings) {
		s.Steps = steps
	}
}

func WithNestingLevel(level int) Option {
	return func(s *Settings) {
		s.NestingLevel = level
	}
}

func WithAmaf(coefficient, bias float64) Option {
	return func(s *Settings) {
		s.AmafCoefficient = coefficient
		s.AmafBias = bias
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Settings) {
		if collector != nil {
			s.collector = collector
		}
	}
}

// settingsFile mirrors Settings in YAML. Absent keys keep their current value.
type settingsFile struct {
	Seed             *uint64  `yaml:"seed"`
	BranchingLimit   *int     `yaml:"branching_limit"`
	NodeHeuristic    *int     `yaml:"node_heuristic"`
	NodeDynamic      *bool    `yaml:"node_dynamic"`
	RolloutHeuristic *int     `yaml:"rollout_heuristic"`
	RolloutDynamic   *bool    `yaml:"rollout_dynamic"`
	LocalSearch      *string  `yaml:"local_search"`
	FlipsPerVar      *int     `yaml:"flips_per_var"`
	WalkEps          *float64 `yaml:"walk_eps"`
	ExplorationC     *float64 `yaml:"exploration_c"`
	Advance          *string  `yaml:"advance"`
	Steps            *int     `yaml:"steps"`
	NestingLevel     *int     `yaml:"nesting_level"`
	AmafCoefficient  *float64 `yaml:"amaf_coefficient"`
	AmafBias         *float64 `yaml:"amaf_bias"`
}

// LoadSettings reads a YAML settings file into options, so that later options
// such as command line flags can still override it.
func LoadSettings(path string) ([]Option, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return ParseSettings(content)
}

func ParseSettings(content []byte) ([]Option, error) {
	var f settingsFile
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	var options []Option
	set := func(o Option) { options = append(options, o) }

	if f.Seed != nil {
		set(WithSeed(*f.Seed))
	}
	if f.BranchingLimit != nil {
		set(WithBranchingLimit(*f.BranchingLimit))
	}
	if f.NodeHeuristic != nil {
		kind, err := heuristic.ParseKind(*f.NodeHeuristic)
		if err != nil {
			return nil, fmt.Errorf("failed to parse node_heuristic: %w", err)
		}
		set(func(s *Settings) { s.NodeHeuristic.Kind = kind })
	}
	if f.NodeDynamic != nil {
		dynamic := *f.NodeDynamic
		set(func(s *Settings) { s.NodeHeuristic.Dynamic = dynamic })
	}
	if f.RolloutHeuristic != nil {
		kind, err := heuristic.ParseKind(*f.RolloutHeuristic)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rollout_heuristic: %w", err)
		}
		set(func(s *Settings) { s.RolloutHeuristic.Kind = kind })
	}
	if f.RolloutDynamic != nil {
		dynamic := *f.RolloutDynamic
		set(func(s *Settings) { s.RolloutHeuristic.Dynamic = dynamic })
	}
	if f.LocalSearch != nil {
		variant, err := walk.ParseVariant(*f.LocalSearch)
		if err != nil {
			return nil, fmt.Errorf("failed to parse local_search: %w", err)
		}
		set(WithLocalSearch(variant))
	}
	if f.FlipsPerVar != nil {
		set(WithFlipsPerVar(*f.FlipsPerVar))
	}
	if f.WalkEps != nil {
		set(WithWalkEps(*f.WalkEps))
	}
	if f.ExplorationC != nil {
		set(WithExplorationC(*f.ExplorationC))
	}
	if f.Advance != nil {
		advance, err := ParseAdvance(*f.Advance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse advance: %w", err)
		}
		set(WithAdvance(advance))
	}
	if f.Steps != nil {
		set(WithSteps(*f.Steps))
	}
	if f.NestingLevel != nil {
		set(WithNestingLevel(*f.NestingLevel))
	}
	if f.AmafCoefficient != nil {
		coefficient := *f.AmafCoefficient
		set(func(s *Settings) { s.AmafCoefficient = coefficient })
	}
	if f.AmafBias != nil {
		bias := *f.AmafBias
		set(func(s *Settings) { s.AmafBias = bias })
	}
	return options, nil
}

// Marshal renders s as a settings file that ParseSettings reads back.
func (s Settings) Marshal() ([]byte, error) {
	nodeKind, rolloutKind := int(s.NodeHeuristic.Kind), int(s.RolloutHeuristic.Kind)
	localSearch, advance := s.LocalSearch.String(), s.Advance.String()
	f := settingsFile{
		Seed:             &s.Seed,
		BranchingLimit:   &s.BranchingLimit,
		NodeHeuristic:    &nodeKind,
		NodeDynamic:      &s.NodeHeuristic.Dynamic,
		RolloutHeuristic: &rolloutKind,
		RolloutDynamic:   &s.RolloutHeuristic.Dynamic,
		LocalSearch:      &localSearch,
		FlipsPerVar:      &s.FlipsPerVar,
		WalkEps:          &s.WalkEps,
		ExplorationC:     &s.ExplorationC,
		Advance:          &advance,
		Steps:            &s.Steps,
		NestingLevel:     &s.NestingLevel,
		AmafCoefficient:  &s.AmafCoefficient,
		AmafBias:         &s.AmafBias,
	}
	content, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return content, nil
}
