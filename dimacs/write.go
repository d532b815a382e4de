package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"mcsat/sat"

	"github.com/samber/lo"
)

// Write emits inst as CNF, or as weighted CNF when some weight differs from 1.
func Write(w io.Writer, inst *sat.Instance) error {
	return write(w, inst, lo.SomeBy(inst.Clauses, func(cls sat.Clause) bool { return cls.Weight != 1 }))
}

// WriteWeighted emits inst as weighted CNF, the form ReadWeighted expects.
func WriteWeighted(w io.Writer, inst *sat.Instance) error {
	return write(w, inst, true)
}

func write(w io.Writer, inst *sat.Instance, weighted bool) error {
	bw := bufio.NewWriter(w)
	format := "cnf"
	if weighted {
		format = "wcnf"
	}
	if _, err := fmt.Fprintf(bw, "p %s %d %d\n", format, inst.NVars, inst.NClauses); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, cls := range inst.Clauses {
		if weighted {
			bw.WriteString(strconv.FormatFloat(cls.Weight, 'g', -1, 64))
			bw.WriteByte(' ')
		}
		for _, lit := range cls.Literals {
			bw.WriteString(strconv.Itoa(lit.Dimacs()))
			bw.WriteByte(' ')
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return fmt.Errorf("failed to write clause: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush instance: %w", err)
	}
	return nil
}
