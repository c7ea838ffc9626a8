// Package simplex solves linear programs with a dense tableau simplex method.
//
// A model is laid out as a tableau by Build, iterated by a Driver until the
// objective row has no positive reduced cost, and read back by Extract.
// Solve runs the three stages in order.
package simplex

import (
	"fmt"

	"github.com/pkg/errors"
	"q.log/tableau/model"
)

// Status is the state of a Driver.
type Status int

const (
	Iterating Status = iota
	OptimalFound
	Unbounded
	// Infeasible is only reported on a Solution: a minimization whose dual
	// tableau is unbounded has no feasible point.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Iterating:
		return "iterating"
	case OptimalFound:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Step records one pivot.
type Step struct {
	Iteration int
	Entering  int
	Leaving   int
	Ratio     float64
	Cost      float64
}

// EnteringColumn picks the column with the largest reduced cost. Entries
// equal to zero, of either sign, are never eligible. ok is false when no
// eligible entry is positive, i.e. the tableau is optimal.
func EnteringColumn(objective []float64) (col int, ok bool) {
	col = -1
	for j, v := range objective {
		if v == 0 {
			continue
		}
		if col == -1 || v > objective[col] {
			col = j
		}
	}
	if col == -1 || objective[col] <= 0 {
		return -1, false
	}
	return col, true
}

// Driver owns a tableau and pivots it until it is optimal or unbounded.
type Driver struct {
	t       *model.Tableau
	maxIter int
	iter    int
	status  Status
	steps   []Step
}

// NewDriver takes ownership of t. A maxIterations of zero or less caps the
// run at the number of tableau columns.
func NewDriver(t *model.Tableau, maxIterations int) (*Driver, error) {
	if t == nil || t.NumVars <= 0 || t.NumSlacks <= 0 || len(t.Objective) != t.Cols() {
		return nil, errors.Wrap(model.ErrInvalidDimensions, "malformed tableau")
	}
	if r, c := t.Rows.Dims(); r != t.NumSlacks || c != t.Cols()+1 {
		return nil, errors.Wrapf(model.ErrInvalidDimensions, "tableau rows are %dx%d", r, c)
	}
	if t.SlackCoef != 1 && t.SlackCoef != -1 {
		return nil, errors.Wrapf(model.ErrInvalidDimensions, "slack coefficient %v", t.SlackCoef)
	}
	if len(t.Basis) != t.NumSlacks {
		return nil, errors.Wrapf(model.ErrInvalidDimensions, "basis has %d rows, want %d", len(t.Basis), t.NumSlacks)
	}
	for i, b := range t.Basis {
		if b < 0 || b >= t.Cols() {
			return nil, errors.Wrapf(model.ErrInvalidDimensions, "row %d basic column %d", i, b)
		}
	}
	for i := 0; i < t.NumSlacks; i++ {
		if v := t.RHS(i) / t.SlackCoef; v < 0 {
			return nil, errors.Wrapf(ErrInfeasibleBasis, "slack s%d = %v", i, v)
		}
	}
	if maxIterations <= 0 {
		maxIterations = t.Cols()
	}
	return &Driver{t: t, maxIter: maxIterations}, nil
}

func (d *Driver) Status() Status { return d.status }

func (d *Driver) Iterations() int { return d.iter }

func (d *Driver) Steps() []Step { return append([]Step(nil), d.steps...) }

// Tableau returns a copy of the current tableau.
func (d *Driver) Tableau() *model.Tableau { return d.t.Clone() }

// Step performs one iteration. It returns the status after the iteration;
// once the driver left Iterating further calls do nothing.
func (d *Driver) Step() (Status, error) {
	if d.status != Iterating {
		return d.status, nil
	}

	col, ok := EnteringColumn(d.t.Objective)
	if !ok {
		d.status = OptimalFound
		return d.status, nil
	}
	if d.iter >= d.maxIter {
		return d.status, errors.Wrapf(ErrMaxIterationsExceeded, "%d iterations", d.maxIter)
	}

	row, r, ok := LeavingRow(d.t, col)
	if !ok {
		d.status = Unbounded
		return d.status, nil
	}
	if err := Pivot(d.t, row, col); err != nil {
		return d.status, err
	}

	d.iter++
	d.steps = append(d.steps, Step{
		Iteration: d.iter,
		Entering:  col,
		Leaving:   row,
		Ratio:     r.Value,
		Cost:      d.t.Cost,
	})
	return d.status, nil
}

// Run iterates until the driver leaves Iterating or fails.
func (d *Driver) Run() (Status, error) {
	for d.status == Iterating {
		if _, err := d.Step(); err != nil {
			return d.status, err
		}
	}
	return d.status, nil
}

// Options configures Solve.
type Options struct {
	Form Form
	// MaxIterations caps the number of pivots; zero means one per tableau column.
	MaxIterations int
}

// Solve builds the tableau of m, runs the simplex iterations and extracts
// the solution.
func Solve(m *model.Model, opts Options) (*Solution, error) {
	form := opts.Form.Resolve(m.Orientation)
	t, err := Build(m, form)
	if err != nil {
		return nil, errors.Wrap(err, "building tableau")
	}
	return SolveTableau(t, m, Options{Form: form, MaxIterations: opts.MaxIterations})
}

// SolveTableau runs the simplex iterations on t, which Build laid out from m
// in opts.Form, and extracts the solution. t is consumed.
func SolveTableau(t *model.Tableau, m *model.Model, opts Options) (*Solution, error) {
	form := opts.Form.Resolve(m.Orientation)
	d, err := NewDriver(t, opts.MaxIterations)
	if err != nil {
		return nil, err
	}
	status, err := d.Run()
	if err != nil {
		return nil, err
	}

	sol := Extract(d.t, m, form)
	sol.Status = status
	sol.Iterations = d.iter
	sol.Steps = d.Steps()
	if status == Unbounded {
		if form == Dual {
			sol.infeasible()
		} else {
			sol.unbounded()
		}
	}
	return sol, nil
}
