package field

import "errors"

// ErrLengthMismatch indicates a value slice sized for a different grid
// element set.
var ErrLengthMismatch = errors.New("field: value slice length does not match grid")
