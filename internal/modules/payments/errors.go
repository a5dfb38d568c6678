package payments

import "errors"

var (
	ErrProviderDown    = errors.New("payment provider unavailable")
	ErrSessionNotFound = errors.New("payment session not found")
)
