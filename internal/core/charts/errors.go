package charts

import (
	"errors"
	"fmt"
)

// ErrTargetSurfaceMissing is returned when no chart is registered under the
// requested id.
var ErrTargetSurfaceMissing = errors.New("chart target surface missing")

// RenderError names the chart whose render cycle failed.
type RenderError struct {
	Chart string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Chart, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
