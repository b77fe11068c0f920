package domain

import "errors"

// ErrValidation marks field-constraint failures. Concrete messages wrap it
// so the transport layer can map the whole class with errors.Is.
var ErrValidation = errors.New("validation failed")
