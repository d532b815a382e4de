package communication

const (
	SolvePath  = "/solve"
	HealthPath = "/healthz"
)

// SolveRequest carries an instance as DIMACS text and the search settings as
// a YAML settings file.
type SolveRequest struct {
	Algorithm string `json:"algorithm"`
	Weighted  bool   `json:"weighted"`
	Instance  string `json:"instance"`
	Settings  string `json:"settings,omitempty"`
}

type SolveResponse struct {
	Algorithm string  `json:"algorithm"`
	Seed      uint64  `json:"seed"`
	Score     float64 `json:"score"`
	Value     float64 `json:"value"`
	Solved    bool    `json:"solved"`
	// Assignment lists signed 1-based literals.
	Assignment []int `json:"assignment"`
	States     int   `json:"states"`
	Rollouts   int   `json:"rollouts"`
	Flips      int   `json:"flips"`
	Commits    int   `json:"commits"`
	DurationMs int64 `json:"duration_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
