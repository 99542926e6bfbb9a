package economy

import "errors"

var (
	ErrInsufficient = errors.New("insufficient balance")
	ErrStopped      = errors.New("economy store stopped")
)
