package model

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Tableau is the dense simplex tableau of a model after slack augmentation.
//
// Rows has one row per constraint laid out as
//
//	[ decision columns | slack columns | rhs ]
//
// and Objective holds one reduced cost per decision and slack column. Cost is
// the running cost accumulated by the pivots; it is the negated constant term
// of the objective expressed in the current non-basic variables.
type Tableau struct {
	Objective []float64
	Rows      *mat.Dense
	Cost      float64

	// SlackCoef is the coefficient of a row's own slack column, -1 or +1.
	SlackCoef float64

	// Basis holds the column basic in each row.
	Basis []int

	NumVars   int
	NumSlacks int
}

// NewTableau allocates a zeroed tableau with numVars decision columns and
// numSlacks constraint rows, each carrying one slack column.
// The basis starts out as the slack columns.
func NewTableau(numVars, numSlacks int, slackCoef float64) *Tableau {
	t := &Tableau{
		Objective: make([]float64, numVars+numSlacks),
		Rows:      mat.NewDense(numSlacks, numVars+numSlacks+1, nil),
		SlackCoef: slackCoef,
		Basis:     make([]int, numSlacks),
		NumVars:   numVars,
		NumSlacks: numSlacks,
	}
	for i := range t.Basis {
		t.Basis[i] = numVars + i
	}
	return t
}

// Cols is the number of decision plus slack columns, excluding the rhs.
func (t *Tableau) Cols() int {
	return t.NumVars + t.NumSlacks
}

// Row returns row i including its rhs. The slice aliases the tableau.
func (t *Tableau) Row(i int) []float64 {
	return t.Rows.RawRowView(i)
}

func (t *Tableau) RHS(i int) float64 {
	return t.Rows.At(i, t.Cols())
}

// BasicCoef returns the coefficient of the basic column of row i.
func (t *Tableau) BasicCoef(i int) float64 {
	return t.Rows.At(i, t.Basis[i])
}

// Column returns a copy of column j over all constraint rows.
func (t *Tableau) Column(j int) []float64 {
	return mat.Col(nil, j, t.Rows)
}

func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		Objective: append([]float64(nil), t.Objective...),
		Rows:      mat.DenseCopyOf(t.Rows),
		Cost:      t.Cost,
		SlackCoef: t.SlackCoef,
		Basis:     append([]int(nil), t.Basis...),
		NumVars:   t.NumVars,
		NumSlacks: t.NumSlacks,
	}
}

func (t *Tableau) Print(w io.Writer) {
	obj := mat.NewDense(1, len(t.Objective), t.Objective)
	fmt.Fprintf(w, "z = %v  (cost %v)\n", mat.Formatted(obj, mat.Squeeze()), t.Cost)
	rows := mat.Formatted(t.Rows, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "T = %v\n", rows)
}
