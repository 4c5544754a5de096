package settings

import "errors"

var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid setting value")
	ErrRejected     = errors.New("setting rejected")
)
