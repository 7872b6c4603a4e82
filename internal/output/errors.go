package output

import "errors"

// ErrUnsupportedFormat is returned when no formatter or alias matches a requested format.
var ErrUnsupportedFormat = errors.New("unsupported report format")
