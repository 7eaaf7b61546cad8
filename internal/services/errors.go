package services

import "errors"

// ErrValidation marks malformed or missing input that handlers should map
// to a 400 response. Wrap it with context via fmt.Errorf("%w: ...").
var ErrValidation = errors.New("validation error")
