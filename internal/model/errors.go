package model

import "errors"

// ErrValidation is wrapped by every Validate method so callers can map it to 400.
var ErrValidation = errors.New("validation failed")
