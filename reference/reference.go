// Package reference solves models with independent LP solvers so tableau
// results can be cross-checked.
package reference

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	"q.log/tableau/model"
)

// ErrMismatch is returned by Compare when two optima disagree.
var ErrMismatch = errors.New("reference: optimum mismatch")

// Result is a reference optimum.
type Result struct {
	Objective float64
	Values    []float64
}

// Solve solves m with gonum's lp.Simplex. The >= rows are turned into
// equalities with one surplus column each, A·x - s = b, and a maximization is
// solved as the minimization of the negated objective.
func Solve(m *model.Model) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	n, rows := m.NumCols, m.NumRows
	if rows == 0 {
		return nil, errors.Wrap(model.ErrInvalidDimensions, "model has no constraints")
	}

	c := make([]float64, n+rows)
	copy(c, m.Objective())
	if m.Orientation == model.Maximize {
		floats.Scale(-1, c[:n])
	}

	a := mat.NewDense(rows, n+rows, nil)
	a.Slice(0, rows, 0, n).(*mat.Dense).Copy(m.A)
	for i := 0; i < rows; i++ {
		a.Set(i, n+i, -1)
	}

	opt, x, err := lp.Simplex(c, a, m.Rhs(), 0, nil)
	if err != nil {
		return nil, errors.Wrap(err, "gonum simplex")
	}
	if m.Orientation == model.Maximize {
		opt = -opt
	}
	return &Result{Objective: opt, Values: x[:n]}, nil
}

// Compare checks that objective agrees with the reference optimum within tol.
// Variable values are not compared since degenerate problems have more than
// one optimal vertex.
func Compare(ref *Result, objective, tol float64) error {
	if !scalar.EqualWithinAbsOrRel(ref.Objective, objective, tol, tol) {
		return errors.Wrapf(ErrMismatch, "reference %v, tableau %v", ref.Objective, objective)
	}
	return nil
}
