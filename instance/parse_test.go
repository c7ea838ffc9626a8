package instance_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"q.log/tableau/instance"
	"q.log/tableau/model"
)

func TestParse(t *testing.T) {
	src := `
// comment before the objective
min: + 3*x0 + 2*x1;

+ 1*x0 + 1*x1 >= 4;
// comment between constraints
+ 2*x0 + 1*x1 >= 6;
`
	m, err := instance.Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, model.Minimize, m.Orientation)
	assert.Equal(t, []string{"x0", "x1"}, m.Names)
	assert.Equal(t, []float64{3, 2}, m.Objective())
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 1, 2, 1}), m.A))
	assert.Equal(t, []float64{4, 6}, m.Rhs())
}

func TestParseMatchesTermsByName(t *testing.T) {
	src := `max: + 1*apples + -2.5*pears;
+ -1*pears + 0.5*apples >= -3;`
	m, err := instance.Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, model.Maximize, m.Orientation)
	assert.Equal(t, []string{"apples", "pears"}, m.Names)
	assert.Equal(t, []float64{1, -2.5}, m.Objective())
	assert.Equal(t, []float64{0.5, -1}, mat.Row(nil, 0, m.A))
	assert.Equal(t, []float64{-3}, m.Rhs())
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"no objective", "// nothing\n", 0, "no objective"},
		{"no direction", "+ 1*x0;\n", 1, "min: or max:"},
		{"bad direction", "opt: + 1*x0;\n", 1, "unknown objective direction"},
		{"objective without semicolon", "max: + 1*x0\n", 1, "missing ;"},
		{"missing plus", "max: 1*x0;\n", 1, "must start with +"},
		{"duplicate objective var", "max: + 1*x0 + 2*x0;\n", 1, "appears twice"},
		{"missing >=", "max: + 1*x0;\n+ 1*x0 4;\n", 2, "missing >="},
		{"less-equal", "max: + 1*x0;\n+ 1*x0 <= 4;\n", 2, "only >="},
		{"non numeric coefficient", "max: + 1*x0;\n+ a*x0 >= 4;\n", 2, "not a number"},
		{"non numeric rhs", "max: + 1*x0;\n+ 1*x0 >= four;\n", 2, "not a number"},
		{"no star", "max: + 1*x0;\n+ 1 x0 >= 4;\n", 2, "not coeff*var"},
		{"term count", "max: + 1*x0 + 1*x1;\n+ 1*x0 >= 4;\n", 2, "1 terms, objective has 2"},
		{"unknown var", "max: + 1*x0;\n+ 1*y >= 4;\n", 2, "unknown variable y"},
		{"duplicate constraint var", "max: + 1*x0 + 1*x1;\n+ 1*x0 + 1*x0 >= 4;\n", 2, "appears twice"},
		{"bad name", "max: + 1*0x;\n", 1, "bad variable name"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := instance.Parse(strings.NewReader(tc.src))
			require.Error(t, err)
			var pe *instance.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.line, pe.Line)
			assert.Contains(t, pe.Error(), tc.msg)
		})
	}
}

func TestReader(t *testing.T) {
	m, err := instance.NewReader(filepath.Join("testdata", "production.txt")).ConstructModelFromFile()
	require.NoError(t, err)
	assert.Equal(t, model.Maximize, m.Orientation)
	assert.Equal(t, 3, m.NumRows)
	assert.Equal(t, []float64{-4, -3, -5}, m.Rhs())
}

func TestReaderErrors(t *testing.T) {
	_, err := instance.NewReader(filepath.Join("testdata", "missing.txt")).ConstructModelFromFile()
	require.ErrorIs(t, err, instance.ErrInputNotFound)

	_, err = instance.NewReader("testdata").ConstructModelFromFile()
	require.ErrorIs(t, err, instance.ErrIO, "a directory cannot be parsed")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("max: + 1*x0;\n+ 1*x0 = 2;\n"), 0o600))
	_, err = instance.NewReader(bad).ConstructModelFromFile()
	var pe *instance.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestReadMPS(t *testing.T) {
	m, err := instance.NewReader(filepath.Join("testdata", "diet.mps")).ConstructModelFromFile()
	require.NoError(t, err)

	assert.Equal(t, model.Minimize, m.Orientation)
	assert.Equal(t, []string{"X0", "X1"}, m.Names)
	assert.Equal(t, []float64{3, 2}, m.Objective())
	assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{
		1, 1,
		2, 1,
		0, -1,
	}), m.A))
	assert.Equal(t, []float64{4, 6, -10}, m.Rhs())
	require.NoError(t, m.Validate())
}
