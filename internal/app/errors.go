package app

import "errors"

// Sentinel kinds for reconciliation errors.
var (
	ErrMissingPlayerID = errors.New("missing player id")
	ErrNegativeCoins   = errors.New("negative coin delta")
	ErrUnknownCosmetic = errors.New("unknown cosmetic")
)
