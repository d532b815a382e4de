// meta/meta.go
package meta

// BRANCHING_LIMIT defines how many ranked variables a search state branches on.
const BRANCHING_LIMIT = 2

// NODE_HEURISTIC defines the heuristic id ranking branching variables.
const NODE_HEURISTIC = 3

// ROLLOUT_HEURISTIC defines the heuristic id completing rollouts.
const ROLLOUT_HEURISTIC = 3

// LOCAL_SEARCH defines the local search variant polishing rollouts.
const LOCAL_SEARCH = "plain"

// FLIPS_PER_VAR defines the rollout flip budget per variable.
const FLIPS_PER_VAR = 2

// WALK_EPS defines the random walk probability of local search.
const WALK_EPS = 0.1

// EXPLORATION_C defines the UCB exploration constant.
const EXPLORATION_C = 0.2

// ADVANCE defines how the search root moves.
const ADVANCE = "once"

// STEPS defines the search budget per root.
const STEPS = 100

// NESTING_LEVEL defines the NMCS recursion level.
const NESTING_LEVEL = 1

// AMAF_COEFFICIENT defines the initial weight of AMAF statistics.
const AMAF_COEFFICIENT = 0.5

// AMAF_BIAS defines how fast AMAF statistics fade with exploration.
const AMAF_BIAS = 0.1

// GO_ROUTINES defines the number of benchmark runs in flight.
const GO_ROUTINES = 8
