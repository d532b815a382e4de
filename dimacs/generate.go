package dimacs

import (
	"fmt"

	"mcsat/sat"

	"github.com/go-air/gini/gen"
	"golang.org/x/exp/rand"
)

// Generate returns a uniform random 3-CNF. The generator behind it is process
// wide, so concurrent calls do not get reproducible output.
func Generate(nVars, nClauses int, seed int64) *sat.Instance {
	gen.Seed(seed)
	vis := &cnfVisitor{nVars: nVars}
	gen.Rand3Cnf(vis, nVars, nClauses)
	vis.Eof()
	return vis.instance()
}

type Weighting int

const (
	// Uniform draws every weight from [0, 1).
	Uniform Weighting = iota
	// Equal sets every weight to 1.
	Equal
	// Descending sets weights 1, 1-1/m, 1-2/m, ... in clause order.
	Descending
)

var weightingNames = [...]string{Uniform: "rand", Equal: "equal", Descending: "desc"}

func (w Weighting) String() string {
	if w < 0 || int(w) >= len(weightingNames) {
		return fmt.Sprintf("Weighting(%d)", int(w))
	}
	return weightingNames[w]
}

func ParseWeighting(name string) (Weighting, error) {
	for w, n := range weightingNames {
		if n == name {
			return Weighting(w), nil
		}
	}
	return 0, fmt.Errorf("unknown weighting %q", name)
}

// Weighten returns a copy of inst with new clause weights.
func Weighten(inst *sat.Instance, mode Weighting, rng *rand.Rand) *sat.Instance {
	clauses := make([]sat.Clause, inst.NClauses)
	for c, cls := range inst.Clauses {
		var weight float64
		switch mode {
		case Uniform:
			weight = rng.Float64()
		case Equal:
			weight = 1
		case Descending:
			weight = 1 - float64(c)/float64(inst.NClauses)
		default:
			panic("unknown weighting")
		}
		clauses[c] = sat.Clause{Literals: cls.Literals, Weight: weight}
	}
	return sat.NewInstance(clauses, inst.NVars)
}
