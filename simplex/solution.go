package simplex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"q.log/tableau/model"
)

// Assignment is a named variable value.
type Assignment struct {
	Name  string
	Value float64
}

// Solution is what a finished run reports about the original model.
type Solution struct {
	Status      Status
	Form        Form
	Orientation model.Orientation
	Iterations  int

	// Objective is the optimal value of the model's objective, in the
	// model's own orientation. Cost is the tableau's raw running cost.
	Objective float64
	Cost      float64

	// Names, Values and Duals are indexed like the model's variables and
	// constraints respectively.
	Names  []string
	Values []float64
	Duals  []float64

	// Columns labels the tableau columns the Steps refer to.
	Columns []string
	Steps   []Step
}

func (s *Solution) IsOptimal() bool { return s.Status == OptimalFound }

func (s *Solution) IsUnbounded() bool { return s.Status == Unbounded }

func (s *Solution) IsInfeasible() bool { return s.Status == Infeasible }

// Value returns the value of the named variable.
func (s *Solution) Value(name string) (float64, bool) {
	for i, n := range s.Names {
		if n == name {
			return s.Values[i], true
		}
	}
	return 0, false
}

// NonZero returns the variables with a non-zero value, in model order.
func (s *Solution) NonZero() []Assignment {
	var out []Assignment
	for i, v := range s.Values {
		if v != 0 {
			out = append(out, Assignment{Name: s.Names[i], Value: v})
		}
	}
	return out
}

func (s *Solution) unbounded() {
	s.Values, s.Duals = nil, nil
	if s.Orientation == model.Minimize {
		s.Objective = math.Inf(-1)
	} else {
		s.Objective = math.Inf(1)
	}
}

func (s *Solution) infeasible() {
	s.Status = Infeasible
	s.Values, s.Duals = nil, nil
	if s.Orientation == model.Minimize {
		s.Objective = math.Inf(1)
	} else {
		s.Objective = math.Inf(-1)
	}
}

// Extract reads the solution of m out of the terminal tableau t, which was
// built from m with the given form.
func Extract(t *model.Tableau, m *model.Model, form Form) *Solution {
	form = form.Resolve(m.Orientation)
	basic := BasicValues(t)
	prices := ShadowPrices(t)

	sol := &Solution{
		Status:      OptimalFound,
		Form:        form,
		Orientation: m.Orientation,
		Cost:        t.Cost,
		Names:       append([]string(nil), m.Names...),
		Columns:     ColumnNames(m, form),
	}

	switch form {
	case Dual:
		sol.Values, sol.Duals = prices, basic
		sol.Objective = -t.Cost
	default:
		sol.Values, sol.Duals = basic, prices
		if m.Orientation == model.Minimize {
			sol.Objective = t.Cost
		} else {
			sol.Objective = -t.Cost
		}
	}
	sol.Objective = unsigned(sol.Objective)
	return sol
}

// BasicValues returns the value of every decision column of t. A column whose
// reduced cost is exactly zero is taken as basic when the row holding its
// largest coefficient is a unit entry; its value is that row's rhs. All other
// columns are zero.
func BasicValues(t *model.Tableau) []float64 {
	out := make([]float64, t.NumVars)
	for j := 0; j < t.NumVars; j++ {
		if t.Objective[j] != 0 {
			continue
		}
		col := t.Column(j)
		i := floats.MaxIdx(col)
		if !isUnit(col, i) {
			continue
		}
		out[j] = unsigned(t.RHS(i))
	}
	return out
}

// ShadowPrices returns the negated reduced cost of every slack column.
func ShadowPrices(t *model.Tableau) []float64 {
	out := make([]float64, t.NumSlacks)
	for i := range out {
		out[i] = unsigned(-t.Objective[t.NumVars+i])
	}
	return out
}

func isUnit(col []float64, at int) bool {
	for i, v := range col {
		if (i == at && v != 1) || (i != at && v != 0) {
			return false
		}
	}
	return true
}

// unsigned maps -0 to 0.
func unsigned(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// ColumnNames labels the tableau columns of m laid out in the given form.
func ColumnNames(m *model.Model, form Form) []string {
	var names []string
	switch form.Resolve(m.Orientation) {
	case Dual:
		for i := 0; i < m.NumRows; i++ {
			names = append(names, fmt.Sprintf("y%d", i))
		}
		names = append(names, m.Names...)
	default:
		names = append(names, m.Names...)
		for i := 0; i < m.NumRows; i++ {
			names = append(names, fmt.Sprintf("s%d", i))
		}
	}
	return names
}
