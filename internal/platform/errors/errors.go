package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrPluginDisabled   = errors.New("detector plugin is disabled")
	ErrChecksumMismatch = errors.New("detector plugin checksum mismatch")
)
