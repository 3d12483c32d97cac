package estimator

import "errors"

var ErrInvalidInput = errors.New("invalid estimate input")
