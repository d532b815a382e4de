package walk

import "fmt"

// Variant selects the candidate set and the objective of a walk.
type Variant int

const (
	// WalkSAT repairs one random unsatisfied clause per flip.
	WalkSAT Variant = iota
	// Novelty considers every variable on every flip.
	Novelty
	// MaxWalkSAT is WalkSAT scored with clause weights.
	MaxWalkSAT
	// MaxNovelty is Novelty scored with clause weights.
	MaxNovelty
)

var variantNames = [...]string{
	WalkSAT:    "plain",
	Novelty:    "novelty",
	MaxWalkSAT: "weighted-plain",
	MaxNovelty: "weighted-novelty",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant maps a configuration name to its Variant.
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if n == name {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("unknown local search variant %q", name)
}

// Weighted reports whether clause weights replace unit counts.
func (v Variant) Weighted() bool {
	return v == MaxWalkSAT || v == MaxNovelty
}

// Global reports whether every variable is a flip candidate.
func (v Variant) Global() bool {
	return v == Novelty || v == MaxNovelty
}
