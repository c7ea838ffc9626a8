package simplex

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"q.log/tableau/model"
)

// Form selects how a model is laid out as a tableau.
type Form int

const (
	// Auto picks Dual for minimizations and Direct for maximizations.
	Auto Form = iota
	// Direct keeps the rows as written and subtracts one surplus column
	// (coefficient -1) per row. Minimizations are negated first.
	Direct
	// Dual transposes a minimization into its maximization dual and adds one
	// slack column (coefficient +1) per dual row.
	Dual
)

func (f Form) String() string {
	switch f {
	case Auto:
		return "auto"
	case Direct:
		return "direct"
	case Dual:
		return "dual"
	}
	return fmt.Sprintf("Form(%d)", int(f))
}

func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "direct":
		return Direct, nil
	case "dual":
		return Dual, nil
	}
	return Auto, errors.Wrapf(ErrUnsupportedForm, "unknown form %q", s)
}

// Resolve replaces Auto with the concrete form used for orientation o.
func (f Form) Resolve(o model.Orientation) Form {
	if f != Auto {
		return f
	}
	if o == model.Minimize {
		return Dual
	}
	return Direct
}

// Build augments m with slack columns and returns the initial tableau.
func Build(m *model.Model, form Form) (*model.Tableau, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.NumRows == 0 {
		return nil, errors.Wrap(model.ErrInvalidDimensions, "model has no constraints")
	}

	switch form.Resolve(m.Orientation) {
	case Direct:
		return buildDirect(m), nil
	case Dual:
		if m.Orientation != model.Minimize {
			return nil, errors.Wrap(ErrUnsupportedForm, "dual form needs a minimization")
		}
		return buildDual(m), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedForm, "form %v", form)
}

func buildDirect(m *model.Model) *model.Tableau {
	if m.Orientation == model.Minimize {
		m = m.Negated()
	}
	n, rows := m.NumCols, m.NumRows

	t := model.NewTableau(n, rows, -1)
	copy(t.Objective, m.Objective())
	for i := 0; i < rows; i++ {
		r := t.Row(i)
		mat.Row(r[:n], i, m.A)
		r[n+i] = t.SlackCoef
		r[n+rows] = m.B.At(i, 0)
	}
	return t
}

// buildDual assembles [A | B; C | 0], transposes it and reads the dual
// problem off the result: the first n rows become constraints whose rhs is
// the original objective, the last row becomes the objective.
func buildDual(m *model.Model) *model.Tableau {
	n, rows := m.NumCols, m.NumRows

	full := mat.NewDense(rows+1, n+1, nil)
	full.Slice(0, rows, 0, n).(*mat.Dense).Copy(m.A)
	full.Slice(0, rows, n, n+1).(*mat.Dense).Copy(m.B)
	full.Slice(rows, rows+1, 0, n).(*mat.Dense).Copy(m.C)
	dual := mat.DenseCopyOf(full.T())

	t := model.NewTableau(rows, n, 1)
	mat.Row(t.Objective[:rows], n, dual.Slice(0, n+1, 0, rows))
	for j := 0; j < n; j++ {
		r := t.Row(j)
		mat.Row(r[:rows], j, dual.Slice(0, n+1, 0, rows))
		r[rows+j] = t.SlackCoef
		r[rows+n] = dual.At(j, rows)
	}
	return t
}
