package instance

import (
	"fmt"
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/tableau/model"
)

// ReadMPS reads a free format MPS file with GLPK and returns it as a model
// with >= rows only: <= rows are negated and finite column bounds become
// extra rows. Equality and ranged rows, as well as negative or free columns,
// are rejected.
func ReadMPS(filename string) (*model.Model, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, filename); err != nil {
		return nil, errors.Wrapf(ErrIO, "%s: %v", filename, err)
	}

	numCols := lp.NumCols()
	if numCols == 0 {
		return nil, &ParseError{Msg: fmt.Sprintf("%s has no columns", filename)}
	}

	//populate constraints
	var aVec, bVec []float64
	addRow := func(rowVec []float64, rhs float64) {
		aVec = append(aVec, rowVec...)
		bVec = append(bVec, rhs)
	}
	for r := 1; r <= lp.NumRows(); r++ {
		rowVec := make([]float64, numCols)
		idxs, row := lp.MatRow(r)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = row[i]
		}

		lb, ub := lp.RowLB(r), lp.RowUB(r)
		switch {
		case lb == -math.MaxFloat64 && ub == math.MaxFloat64:
			// free row
			continue
		case lb == -math.MaxFloat64:
			for i := range rowVec {
				rowVec[i] = -rowVec[i]
			}
			addRow(rowVec, -ub)
		case ub == math.MaxFloat64:
			addRow(rowVec, lb)
		default:
			return nil, &ParseError{Msg: fmt.Sprintf("row %s: equality and ranged rows are not supported", lp.RowName(r))}
		}
	}

	for c := 1; c <= numCols; c++ {
		lb, ub := lp.ColLB(c), lp.ColUB(c)
		if lb < 0 {
			return nil, &ParseError{Msg: fmt.Sprintf("column %s: variables must be non-negative", lp.ColName(c))}
		}
		if lb > 0 {
			rowVec := make([]float64, numCols)
			rowVec[c-1] = 1
			addRow(rowVec, lb)
		}
		if ub != math.MaxFloat64 {
			rowVec := make([]float64, numCols)
			rowVec[c-1] = -1
			addRow(rowVec, -ub)
		}
	}

	m := model.NewModel(len(bVec), numCols)
	if lp.ObjDir() == glpk.MAX {
		m.Orientation = model.Maximize
	} else {
		m.Orientation = model.Minimize
	}

	//populate obj function
	cVec := make([]float64, numCols)
	for c := 0; c < numCols; c++ {
		cVec[c] = lp.ObjCoef(c + 1)
		if name := lp.ColName(c + 1); name != "" {
			m.Names[c] = name
		}
	}
	if err := m.SetC(cVec); err != nil {
		return nil, err
	}
	if err := m.SetA(aVec); err != nil {
		return nil, err
	}
	if err := m.SetB(bVec); err != nil {
		return nil, err
	}

	return m, nil
}
