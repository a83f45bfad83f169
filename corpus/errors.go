package corpus

import "errors"

// ErrLineMismatch is returned when parallel files do not
// have the same number of lines.
var ErrLineMismatch = errors.New("parallel files have different line counts")
