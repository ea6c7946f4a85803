package solver

import "errors"

// Domain errors for time integration.
var (
	// ErrNotInitialized indicates Solve was called before Initialize.
	ErrNotInitialized = errors.New("solver: not initialized")

	// ErrInvalidSettings indicates an out-of-range integration setting.
	ErrInvalidSettings = errors.New("solver: invalid settings")

	// ErrSingularSystem indicates a non-invertible mass matrix. By default
	// it is absorbed by a pseudo-inverse fallback and only counted in the
	// report; StrictSingular surfaces it.
	ErrSingularSystem = errors.New("solver: singular mass matrix")

	// ErrNonConvergence indicates the Newton loop exhausted its iteration
	// budget. By default the step is committed anyway and only counted in
	// the report; StrictNewton surfaces it.
	ErrNonConvergence = errors.New("solver: newton iterations exhausted")
)
