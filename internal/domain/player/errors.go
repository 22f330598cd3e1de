package player

import "errors"

// Sentinel kinds for player errors.
var (
	ErrNotFound          = errors.New("player not found")
	ErrCosmeticLocked    = errors.New("cosmetic not unlocked")
	ErrInsufficientCoins = errors.New("insufficient coins")
)
