package reference

import (
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"q.log/tableau/model"
)

// SolveGLPK solves m with GLPK's primal simplex.
func SolveGLPK(m *model.Model) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	lp := glpk.New()
	defer lp.Delete()

	if m.Orientation == model.Maximize {
		lp.SetObjDir(glpk.MAX)
	} else {
		lp.SetObjDir(glpk.MIN)
	}

	n := m.NumCols
	lp.AddCols(n)
	for j := 0; j < n; j++ {
		lp.SetColName(j+1, m.Names[j])
		lp.SetColBnds(j+1, glpk.LO, 0, 0)
		lp.SetObjCoef(j+1, m.C.At(0, j))
	}

	if m.NumRows > 0 {
		lp.AddRows(m.NumRows)
	}
	ind := make([]int32, n+1)
	for j := 0; j < n; j++ {
		ind[j+1] = int32(j + 1)
	}
	for i := 0; i < m.NumRows; i++ {
		lp.SetRowBnds(i+1, glpk.LO, m.B.At(i, 0), 0)
		val := make([]float64, n+1)
		mat.Row(val[1:], i, m.A)
		lp.SetMatRow(i+1, ind, val)
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MSG_OFF)
	if err := lp.Simplex(smcp); err != nil {
		return nil, errors.Wrap(err, "glpk simplex")
	}
	if lp.Status() != glpk.OPT {
		return nil, errors.Errorf("glpk status %v", lp.Status())
	}

	res := &Result{Objective: lp.ObjVal(), Values: make([]float64, n)}
	for j := 0; j < n; j++ {
		res.Values[j] = lp.ColPrim(j + 1)
	}
	return res, nil
}
