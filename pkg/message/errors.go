package message

import "errors"

var (
	ErrUnbalancedBraces = errors.New("message: unbalanced braces in placeholder")
	ErrEmptyPlaceholder = errors.New("message: empty placeholder")
)
