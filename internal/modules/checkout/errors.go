package checkout

import "errors"

var (
	ErrNotBookable   = errors.New("item is not open for booking")
	ErrUnknownAddOns = errors.New("one or more add-ons do not belong to this adventure")
)
