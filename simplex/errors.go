package simplex

import "github.com/pkg/errors"

var (
	// ErrDegeneratePivot indicates a pivot on a zero element was requested.
	ErrDegeneratePivot = errors.New("simplex: pivot element is zero")
	// ErrMaxIterationsExceeded indicates the iteration cap was reached before an optimum.
	ErrMaxIterationsExceeded = errors.New("simplex: no optimum found within iteration bound")
	// ErrInfeasibleBasis indicates the initial slack basis assigns a negative value.
	ErrInfeasibleBasis = errors.New("simplex: initial basis is infeasible")
	// ErrUnsupportedForm indicates the tableau form cannot express the model.
	ErrUnsupportedForm = errors.New("simplex: unsupported tableau form")
)
