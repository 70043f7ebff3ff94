package dataset

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable signals that the designated dataset could not be
// located or read. Callers recover by substituting the built-in sample
// with a visible warning; it is never a hard failure by itself.
var ErrSourceUnavailable = errors.New("dataset source unavailable")

// MissingColumnError reports a required semantic field absent from the
// input. It is fatal for the pipeline: no derived computation may run
// over an invalid schema.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// AsMissingColumn unwraps err into a MissingColumnError if there is one.
func AsMissingColumn(err error) (*MissingColumnError, bool) {
	var mc *MissingColumnError
	if errors.As(err, &mc) {
		return mc, true
	}
	return nil, false
}
