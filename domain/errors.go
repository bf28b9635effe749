package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrOrderSelectionRequired = errors.New("select an order before starting production")
	ErrBackendUnavailable     = errors.New("production module is not available on the server")
	ErrProductionActive       = errors.New("stop the running production before selecting another order")
	ErrOrderNotSelectable     = errors.New("order is not pending or in progress")
	ErrOrderNotResumable      = errors.New("only orders in progress can be continued")
	ErrInvalidQuantity        = errors.New("the quantity must be greater than 0")
	ErrUnknownItemType        = errors.New("unknown inventory item type")
)
