// Package dimacs reads and writes instances in the DIMACS CNF format and the
// weighted variant where every clause line starts with its weight.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mcsat/sat"

	"github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"
	"github.com/rs/zerolog/log"
)

// cnfVisitor collects the clauses reported by the gini reader and generators.
type cnfVisitor struct {
	nVars   int
	clauses []sat.Clause
	lits    []sat.Literal
}

func (v *cnfVisitor) Init(nVars, nClauses int) {
	v.nVars = nVars
	v.clauses = make([]sat.Clause, 0, nClauses)
}

func (v *cnfVisitor) Add(m z.Lit) {
	if m == z.LitNull {
		v.clauses = append(v.clauses, sat.NewClause(v.lits...))
		v.lits = nil
		return
	}
	v.lits = append(v.lits, sat.FromDimacs(m.Dimacs()))
}

func (v *cnfVisitor) Eof() {
	if len(v.lits) > 0 {
		v.Add(z.LitNull)
	}
}

func (v *cnfVisitor) instance() *sat.Instance {
	return sat.NewInstance(v.clauses, v.nVars)
}

// Read parses an unweighted DIMACS CNF. Every clause gets weight 1.
func Read(r io.Reader) (*sat.Instance, error) {
	vis := &cnfVisitor{}
	if err := dimacs.ReadCnf(r, vis); err != nil {
		return nil, fmt.Errorf("failed to read cnf: %w", err)
	}
	return vis.instance(), nil
}

// ReadWeighted parses one clause per line as "<weight> <lit>... 0" after a
// "p cnf" or "p wcnf" header. Comment lines start with 'c'.
func ReadWeighted(r io.Reader) (*sat.Instance, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header := false
	nVars, nClauses := 0, 0
	var clauses []sat.Clause
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == 'c' || text[0] == '%' {
			continue
		}

		fields := strings.Fields(text)
		if fields[0] == "p" {
			if header {
				return nil, fmt.Errorf("line %d: duplicate header", line)
			}
			var err error
			nVars, nClauses, err = parseHeader(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			header = true
			continue
		}
		if !header {
			return nil, fmt.Errorf("line %d: clause before header", line)
		}

		cls, err := parseWeightedClause(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		clauses = append(clauses, cls)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wcnf: %w", err)
	}
	if !header {
		return nil, fmt.Errorf("missing header")
	}
	if len(clauses) != nClauses {
		log.Warn().Msgf("header declares %d clauses but %d were read", nClauses, len(clauses))
	}
	return sat.NewInstance(clauses, nVars), nil
}

func parseHeader(fields []string) (int, int, error) {
	if len(fields) < 4 || (fields[1] != "cnf" && fields[1] != "wcnf") {
		return 0, 0, fmt.Errorf("malformed header %q", strings.Join(fields, " "))
	}
	nVars, err := strconv.Atoi(fields[2])
	if err != nil || nVars < 0 {
		return 0, 0, fmt.Errorf("invalid variable count %q", fields[2])
	}
	nClauses, err := strconv.Atoi(fields[3])
	if err != nil || nClauses < 0 {
		return 0, 0, fmt.Errorf("invalid clause count %q", fields[3])
	}
	return nVars, nClauses, nil
}

func parseWeightedClause(fields []string) (sat.Clause, error) {
	weight, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || weight < 0 {
		return sat.Clause{}, fmt.Errorf("invalid weight %q", fields[0])
	}
	if len(fields) < 2 || fields[len(fields)-1] != "0" {
		return sat.Clause{}, fmt.Errorf("clause is not terminated by 0")
	}

	lits := make([]sat.Literal, 0, len(fields)-2)
	for _, field := range fields[1 : len(fields)-1] {
		m, err := strconv.Atoi(field)
		if err != nil || m == 0 {
			return sat.Clause{}, fmt.Errorf("invalid literal %q", field)
		}
		lits = append(lits, sat.FromDimacs(m))
	}
	return sat.Clause{Literals: lits, Weight: weight}, nil
}

// ReadFile picks the weighted parser for .wcnf files and the CNF parser otherwise.
func ReadFile(path string) (*sat.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance: %w", err)
	}
	defer f.Close()

	if IsWeighted(path) {
		return ReadWeighted(f)
	}
	return Read(f)
}

func IsWeighted(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wcnf")
}
