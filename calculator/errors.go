package calculator

import "github.com/pkg/errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid tube config")
	ErrRunning       = errors.New("simulation already running")
)
