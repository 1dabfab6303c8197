package subtle

import (
	"errors"
	"fmt"
)

// FE1 operations fail with exactly two error kinds. Callers discriminate
// with errors.Is; every error returned by this package wraps one of these.
var (
	// ErrInvalidArgument reports caller-supplied inputs that violate the
	// documented contract: nil arguments, an empty key or tweak, a value
	// outside [0, modulus), or a modulus below 2 or wider than
	// MaxModulusBytes. It is raised before any cryptographic work.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFPE reports inputs that are well-formed but that the algorithm
	// cannot process, currently only a prime modulus, which has no
	// nontrivial factorization into Feistel halves.
	ErrFPE = errors.New("fpe")
)

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}
