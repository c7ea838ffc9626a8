package simplex

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"q.log/tableau/model"
)

// Ratio is the outcome of the minimum-ratio test for one row. Rows that
// cannot bound the entering variable are not Bounded and carry no Value.
type Ratio struct {
	Value   float64
	Bounded bool
}

// RowRatio computes the ratio of rhs to the entering column coefficient.
//
// Rows are signed: a row whose basic variable has coefficient -1 carries a
// non-positive rhs, so a negative coefficient over a negative rhs yields a
// usable positive ratio, while mixed signs never bound the entering variable.
// A zero rhs is read as non-negative here; Ratios settles it from the basic
// column instead.
func RowRatio(coef, rhs float64) Ratio {
	switch {
	case coef == 0:
		return Ratio{}
	case coef > 0 && rhs >= 0:
		return Ratio{Value: rhs / coef, Bounded: true}
	case coef > 0:
		return Ratio{}
	case rhs >= 0:
		return Ratio{}
	default:
		return Ratio{Value: rhs / coef, Bounded: true}
	}
}

// basicRatio decides a row with a zero rhs, where the sign of the rhs says
// nothing about the basic variable. The row bounds the entering variable at
// zero only when the coefficient has the sign of the basic column.
func basicRatio(coef, basic float64) Ratio {
	if coef == 0 || (coef > 0) != (basic > 0) || basic == 0 {
		return Ratio{}
	}
	return Ratio{Bounded: true}
}

// Ratios returns the ratio of every row for entering column col.
func Ratios(t *model.Tableau, col int) []Ratio {
	out := make([]Ratio, t.NumSlacks)
	for i := range out {
		coef, rhs := t.Rows.At(i, col), t.RHS(i)
		if rhs == 0 {
			out[i] = basicRatio(coef, t.BasicCoef(i))
			continue
		}
		out[i] = RowRatio(coef, rhs)
	}
	return out
}

// LeavingRow returns the first row with the smallest bounded ratio for
// entering column col. ok is false when no row bounds the column.
func LeavingRow(t *model.Tableau, col int) (row int, r Ratio, ok bool) {
	row = -1
	for i, ri := range Ratios(t, col) {
		if !ri.Bounded {
			continue
		}
		if row == -1 || ri.Value < r.Value {
			row, r = i, ri
		}
	}
	return row, r, row != -1
}

// Pivot makes col basic in row. Every other row and the objective have the
// column eliminated by substituting the pivot row, and the running cost
// absorbs the objective's share of the pivot row's rhs.
func Pivot(t *model.Tableau, row, col int) error {
	if row < 0 || row >= t.NumSlacks || col < 0 || col >= t.Cols() || len(t.Basis) != t.NumSlacks {
		return errors.Wrapf(model.ErrInvalidDimensions, "pivot (%d, %d) outside tableau", row, col)
	}
	pr := t.Row(row)
	a := pr[col]
	if a == 0 {
		return errors.Wrapf(ErrDegeneratePivot, "row %d column %d", row, col)
	}

	// entering variable in terms of all others, negated for substitution
	transformed := make([]float64, len(pr))
	for k, v := range pr {
		transformed[k] = v / a * -1
	}

	for j := 0; j < t.NumSlacks; j++ {
		if j == row {
			continue
		}
		r := t.Row(j)
		if mult := r[col]; mult != 0 {
			floats.AddScaled(r, mult, transformed)
		}
		r[col] = 0
	}

	for k := range pr {
		pr[k] /= a
	}
	pr[col] = 1

	last := len(transformed) - 1
	mult := t.Objective[col]
	floats.AddScaled(t.Objective, mult, transformed[:last])
	t.Cost += transformed[last] * mult
	t.Objective[col] = 0
	t.Basis[row] = col
	return nil
}
