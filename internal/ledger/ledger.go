// internal/ledger/ledger.go
package ledger

import (
	"errors"

	"github.com/google/uuid"
)

// Ledger holds fungible balances keyed by (asset, holder) and executes the
// mint and transfer primitives. Each call is atomic: it either applies fully
// or fails without touching any balance. Authority over a balance belongs to
// the holder; a transfer whose authority is not the source holder fails.
type Ledger interface {
	// Mint credits amount units of asset to the recipient.
	Mint(asset, to uuid.UUID, amount uint64) error

	// Transfer moves amount units of asset from one holder to another.
	// authority must be the account empowered to move from's balance.
	Transfer(asset, from, to uuid.UUID, amount uint64, authority uuid.UUID) error

	// Balance reports the holder's current position; zero if none exists.
	Balance(asset, holder uuid.UUID) (uint64, error)
}

var (
	ErrNotAuthorized       = errors.New("authority cannot move this balance")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrBalanceOverflow     = errors.New("balance overflows")
)
