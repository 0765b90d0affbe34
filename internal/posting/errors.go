package posting

import "errors"

// ErrNoContent is returned when a posting page has no visible text.
var ErrNoContent = errors.New("posting page has no text")
