package meal

import "errors"

// Pipeline failure categories. The handler maps ErrBadRequest to 400 and
// everything else to 500; none of them are retried server-side.
var (
	ErrBadRequest      = errors.New("missing required field")
	ErrStorage         = errors.New("storage failure")
	ErrInference       = errors.New("inference failure")
	ErrMalformedOutput = errors.New("malformed model output")
	ErrInvalidProtein  = errors.New("invalid protein estimate")
	ErrPersistence     = errors.New("persistence failure")
)
