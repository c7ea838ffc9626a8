package model

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidDimensions is returned when the objective, constraint matrix and
// right-hand sides do not agree on the number of variables or constraints.
var ErrInvalidDimensions = errors.New("model: invalid dimensions")

// Orientation is the direction of the objective.
type Orientation int

const (
	Maximize Orientation = iota
	Minimize
)

func (o Orientation) String() string {
	switch o {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == Minimize {
		return Maximize
	}
	return Minimize
}

// Model is a linear program in the form
//
//	max|min  C·x
//	s.t.     A·x >= B
//	         x >= 0
type Model struct {
	Orientation Orientation

	//C objective function coefficients
	C *mat.Dense

	//A constraints matrix
	A *mat.Dense

	//B constraints rhs
	B *mat.Dense

	//Names of the decision variables, one per column of A
	Names []string

	NumRows int
	NumCols int
}

func NewModel(numRows, numCols int) *Model {
	m := &Model{
		C:       mat.NewDense(1, numCols, nil),
		NumRows: numRows,
		NumCols: numCols,
	}
	if numRows > 0 {
		m.A = mat.NewDense(numRows, numCols, nil)
		m.B = mat.NewDense(numRows, 1, nil)
	}
	m.Names = make([]string, numCols)
	for c := 0; c < numCols; c++ {
		m.Names[c] = fmt.Sprintf("x%d", c)
	}
	return m
}

// FromRows builds a model from a bare objective and raw constraint rows, each
// row holding one coefficient per variable followed by the right-hand side.
func FromRows(o Orientation, objective []float64, rows [][]float64) (*Model, error) {
	if len(objective) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "empty objective")
	}
	m := NewModel(0, len(objective))
	m.Orientation = o
	if err := m.SetC(objective); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != m.NumCols+1 {
			return nil, errors.Wrapf(ErrInvalidDimensions,
				"row %d has %d entries, want %d coefficients and a rhs", i, len(r), m.NumCols)
		}
		if err := m.AddRow(r[:m.NumCols], r[m.NumCols]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Model) SetC(cVec []float64) error {
	if len(cVec) != m.NumCols {
		return errors.Wrap(ErrInvalidDimensions, "mismatch number of variables")
	}

	m.C = mat.NewDense(1, m.NumCols, append([]float64(nil), cVec...))

	return nil
}

func (m *Model) SetA(aVec []float64) error {
	if len(aVec) != m.NumCols*m.NumRows {
		return errors.Wrap(ErrInvalidDimensions, "mismatch number of variables and/or constraints")
	}
	if m.NumRows == 0 {
		return nil
	}

	m.A = mat.NewDense(m.NumRows, m.NumCols, append([]float64(nil), aVec...))

	return nil
}

func (m *Model) SetB(bVec []float64) error {
	if len(bVec) != m.NumRows {
		return errors.Wrap(ErrInvalidDimensions, "mismatch number of constraints")
	}
	if m.NumRows == 0 {
		return nil
	}

	m.B = mat.NewDense(m.NumRows, 1, append([]float64(nil), bVec...))

	return nil
}

// AddRow appends the constraint rVec·x >= rhs.
func (m *Model) AddRow(rVec []float64, rhs float64) error {
	if len(rVec) != m.NumCols {
		return errors.Wrap(ErrInvalidDimensions, "mismatch number of columns, i.e. wrong len of rVec")
	}

	if m.NumRows == 0 {
		m.A = mat.NewDense(1, m.NumCols, append([]float64(nil), rVec...))
		m.B = mat.NewDense(1, 1, []float64{rhs})
		m.NumRows++
		return nil
	}

	m.A = mat.DenseCopyOf(m.A.Grow(1, 0))
	m.A.SetRow(m.NumRows, rVec)

	m.B = mat.DenseCopyOf(m.B.Grow(1, 0))
	m.B.Set(m.NumRows, 0, rhs)

	m.NumRows++
	return nil
}

func (m *Model) MultiplyConstraint(row int, mul float64) error {
	if row < 0 || row >= m.NumRows {
		return errors.Errorf("row %d does not exist", row)
	}

	for col := 0; col < m.NumCols; col++ {
		m.A.Set(row, col, m.A.At(row, col)*mul)
	}
	m.B.Set(row, 0, m.B.At(row, 0)*mul)
	return nil
}

// Objective returns a copy of the objective coefficients.
func (m *Model) Objective() []float64 {
	return mat.Row(nil, 0, m.C)
}

// Rhs returns a copy of the right-hand sides.
func (m *Model) Rhs() []float64 {
	if m.NumRows == 0 {
		return nil
	}
	return mat.Col(nil, 0, m.B)
}

// Validate checks that C, A and B agree with NumRows and NumCols.
func (m *Model) Validate() error {
	if m.NumCols == 0 || m.C == nil {
		return errors.Wrap(ErrInvalidDimensions, "model has no variables")
	}
	if _, c := m.C.Dims(); c != m.NumCols {
		return errors.Wrapf(ErrInvalidDimensions, "objective has %d coefficients, want %d", c, m.NumCols)
	}
	if len(m.Names) != m.NumCols {
		return errors.Wrapf(ErrInvalidDimensions, "%d names for %d variables", len(m.Names), m.NumCols)
	}
	if m.NumRows == 0 {
		return nil
	}
	if m.A == nil || m.B == nil {
		return errors.Wrap(ErrInvalidDimensions, "missing constraint matrix")
	}
	if r, c := m.A.Dims(); r != m.NumRows || c != m.NumCols {
		return errors.Wrapf(ErrInvalidDimensions, "A is %dx%d, want %dx%d", r, c, m.NumRows, m.NumCols)
	}
	if r, _ := m.B.Dims(); r != m.NumRows {
		return errors.Wrapf(ErrInvalidDimensions, "B has %d rows, want %d", r, m.NumRows)
	}
	return nil
}

// Negated returns a copy whose objective is multiplied by -1 and whose
// orientation is flipped. The constraints are unchanged.
func (m *Model) Negated() *Model {
	n := m.Clone()
	n.C.Scale(-1, n.C)
	n.Orientation = m.Orientation.Flip()
	return n
}

func (m *Model) Clone() *Model {
	n := &Model{
		Orientation: m.Orientation,
		C:           mat.DenseCopyOf(m.C),
		Names:       append([]string(nil), m.Names...),
		NumRows:     m.NumRows,
		NumCols:     m.NumCols,
	}
	if m.NumRows > 0 {
		n.A = mat.DenseCopyOf(m.A)
		n.B = mat.DenseCopyOf(m.B)
	}
	return n
}

func (m *Model) PrintC(w io.Writer) {
	caux := mat.Formatted(m.C, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "%s: c = %v\n", m.Orientation, caux)
}

func (m *Model) PrintB(w io.Writer) {
	if m.NumRows == 0 {
		fmt.Fprintln(w, "b = []")
		return
	}
	caux := mat.Formatted(m.B, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "b = %v\n", caux)
}

func (m *Model) PrintA(w io.Writer) {
	if m.NumRows == 0 {
		fmt.Fprintln(w, "A = []")
		return
	}
	caux := mat.Formatted(m.A, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "A = %v\n", caux)
	r, c := m.A.Dims()
	fmt.Fprintln(w, r, c)
}
