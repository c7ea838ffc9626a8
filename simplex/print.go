package simplex

import (
	"fmt"
	"io"
)

// PrintSteps writes one line per pivot: the entering variable, the row it
// entered through and the running objective value.
func PrintSteps(w io.Writer, sol *Solution) {
	for _, s := range sol.Steps {
		name := fmt.Sprintf("c%d", s.Entering)
		if s.Entering < len(sol.Columns) {
			name = sol.Columns[s.Entering]
		}
		fmt.Fprintf(w, "-------------------- ITERATION %v ----------------------\n", s.Iteration)
		fmt.Fprintf(w, "Current variable: %s (row %d, ratio %v)\n", name, s.Leaving, s.Ratio)
		fmt.Fprintf(w, "cost = %v\n", s.Cost)
	}
}

// PrintSolution writes the outcome of a run.
func PrintSolution(w io.Writer, sol *Solution) {
	fmt.Fprintf(w, "\nDone after %d iterations (%s form)\n", sol.Iterations, sol.Form)
	switch sol.Status {
	case Unbounded:
		fmt.Fprintf(w, "problem is unbounded, p = %v\n", sol.Objective)
		return
	case Infeasible:
		fmt.Fprintln(w, "problem is infeasible")
		return
	}
	fmt.Fprintf(w, "p = %v\n", sol.Objective)
	for _, a := range sol.NonZero() {
		fmt.Fprintf(w, "%s = %v\n", a.Name, a.Value)
	}
}
