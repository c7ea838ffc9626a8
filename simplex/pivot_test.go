package simplex_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

const tol = 1e-9

func TestRowRatio(t *testing.T) {
	for _, tc := range []struct {
		name      string
		coef, rhs float64
		want      simplex.Ratio
	}{
		{"positive over positive", 2, 4, simplex.Ratio{Value: 2, Bounded: true}},
		{"positive over zero", 3, 0, simplex.Ratio{Value: 0, Bounded: true}},
		{"positive over negative", 2, -4, simplex.Ratio{}},
		{"negative over positive", -1, 5, simplex.Ratio{}},
		{"negative over zero", -1, 0, simplex.Ratio{}},
		{"negative over negative", -2, -6, simplex.Ratio{Value: 3, Bounded: true}},
		{"zero coefficient", 0, 5, simplex.Ratio{}},
		{"negative zero coefficient", math.Copysign(0, -1), -5, simplex.Ratio{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, simplex.RowRatio(tc.coef, tc.rhs))
		})
	}
}

func TestMinimumRatio(t *testing.T) {
	tab := model.NewTableau(1, 3, 1)
	for i, v := range [][2]float64{{2, 4}, {-1, 5}, {3, 9}} {
		tab.Rows.Set(i, 0, v[0])
		tab.Rows.Set(i, 1+i, 1)
		tab.Rows.Set(i, tab.Cols(), v[1])
	}

	rs := simplex.Ratios(tab, 0)
	require.Len(t, rs, 3)
	assert.Equal(t, simplex.Ratio{Value: 2, Bounded: true}, rs[0])
	assert.False(t, rs[1].Bounded)
	assert.Equal(t, simplex.Ratio{Value: 3, Bounded: true}, rs[2])

	row, r, ok := simplex.LeavingRow(tab, 0)
	require.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 2.0, r.Value)
}

func TestRatiosZeroRhs(t *testing.T) {
	// surplus rows: -x0 - s0 = 0 and -2x0 - s1 = -3
	tab := model.NewTableau(1, 2, -1)
	copy(tab.Row(0), []float64{-1, -1, 0, 0})
	copy(tab.Row(1), []float64{-2, 0, -1, -3})

	rs := simplex.Ratios(tab, 0)
	assert.Equal(t, simplex.Ratio{Value: 0, Bounded: true}, rs[0], "a zero surplus blocks a decreasing row")
	assert.Equal(t, simplex.Ratio{Value: 1.5, Bounded: true}, rs[1])
	row, _, ok := simplex.LeavingRow(tab, 0)
	require.True(t, ok)
	assert.Equal(t, 0, row)

	// x0 basic with +1 in a zero row: increasing x1 only raises x0
	tab = model.NewTableau(2, 1, -1)
	copy(tab.Row(0), []float64{1, -1, 1, 0})
	tab.Basis[0] = 0
	assert.False(t, simplex.Ratios(tab, 1)[0].Bounded)
	assert.True(t, simplex.Ratios(tab, 2)[0].Bounded)
}

func TestPivotTracksBasis(t *testing.T) {
	tab, err := simplex.Build(maxModel(t), simplex.Direct)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, tab.Basis)

	require.NoError(t, simplex.Pivot(tab, 0, 1))
	assert.Equal(t, []int{1, 3}, tab.Basis)
	assert.Equal(t, 1.0, tab.BasicCoef(0))
	assert.Equal(t, -1.0, tab.BasicCoef(1))
}

func TestLeavingRowTiesAndNone(t *testing.T) {
	tab := model.NewTableau(1, 2, 1)
	tab.Rows.Set(0, 0, 1)
	tab.Rows.Set(0, 3, 2)
	tab.Rows.Set(1, 0, 2)
	tab.Rows.Set(1, 3, 4)

	row, _, ok := simplex.LeavingRow(tab, 0)
	require.True(t, ok)
	assert.Equal(t, 0, row, "ties go to the first row")

	_, _, ok = simplex.LeavingRow(tab, 1)
	assert.False(t, ok, "all-zero column bounds nothing")
}

func TestPivot(t *testing.T) {
	tab, err := simplex.Build(minModel(t), simplex.Dual)
	require.NoError(t, err)

	require.NoError(t, simplex.Pivot(tab, 0, 1))

	assert.InDeltaSlice(t, []float64{0.5, 1, 0.5, 0, 1.5}, tab.Row(0), tol)
	assert.InDeltaSlice(t, []float64{0.5, 0, -0.5, 1, 0.5}, tab.Row(1), tol)
	assert.InDeltaSlice(t, []float64{1, 0, -3, 0}, tab.Objective, tol)
	assert.InDelta(t, -9, tab.Cost, tol)

	assert.Equal(t, 1.0, tab.Rows.At(0, 1), "pivot entry is exactly one")
	assert.Equal(t, 0.0, tab.Rows.At(1, 1), "pivot column is zero elsewhere")
	assert.Equal(t, 0.0, tab.Objective[1])
}

func TestPivotSignedRows(t *testing.T) {
	tab, err := simplex.Build(maxModel(t), simplex.Direct)
	require.NoError(t, err)

	require.NoError(t, simplex.Pivot(tab, 0, 1))

	assert.InDeltaSlice(t, []float64{0.5, 1, 0.5, 0, 1.5}, tab.Row(0), tol)
	assert.InDeltaSlice(t, []float64{-0.5, 0, 0.5, -1, -0.5}, tab.Row(1), tol)
	assert.InDeltaSlice(t, []float64{1, 0, -3, 0}, tab.Objective, tol)
	assert.InDelta(t, -9, tab.Cost, tol)
}

func TestPivotZeroElement(t *testing.T) {
	tab := model.NewTableau(2, 1, 1)
	copy(tab.Row(0), []float64{0, 1, 1, 3})
	tab.Objective[0] = 1
	before := tab.Clone()

	err := simplex.Pivot(tab, 0, 0)
	require.ErrorIs(t, err, simplex.ErrDegeneratePivot)
	assert.Equal(t, before.Row(0), tab.Row(0))
	assert.Equal(t, before.Objective, tab.Objective)

	tab.Rows.Set(0, 0, math.Copysign(0, -1))
	require.ErrorIs(t, simplex.Pivot(tab, 0, 0), simplex.ErrDegeneratePivot)

	require.ErrorIs(t, simplex.Pivot(tab, 1, 0), model.ErrInvalidDimensions)
}
