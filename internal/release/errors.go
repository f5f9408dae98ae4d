package release

import "errors"

var (
	ErrDecodeFailed    = errors.New("failed to decode release")
	ErrEncodeFailed    = errors.New("failed to encode release")
	ErrInvalidRelease  = errors.New("invalid release")
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrInvalidTemplate = errors.New("invalid commit message template")
)
