package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage marks invalid or contradictory input detected before any work starts.
	ErrUsage = errors.New("usage error")

	// ErrCapture marks browser launch, navigation, screenshot or measurement failures.
	ErrCapture = errors.New("capture error")

	// ErrAssembly marks an encoder job that cannot be turned into arguments.
	ErrAssembly = errors.New("assembly error")

	// ErrEncode marks an encoder process that failed.
	ErrEncode = errors.New("encode error")
)

// ExitError reports a non-zero encoder exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("encoder exited with status %d", e.Code)
}

// Is lets errors.Is match ExitError against ErrEncode.
func (e *ExitError) Is(target error) bool {
	return target == ErrEncode
}
