package topic

import "errors"

// ErrUnknownCategory is returned when an association request names a category that does not exist.
var ErrUnknownCategory = errors.New("unknown category")
