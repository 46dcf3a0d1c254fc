// internal/ledger/memory.go
package ledger

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

type position struct {
	asset  uuid.UUID
	holder uuid.UUID
}

// MemoryLedger is an in-process Ledger keeping balances in a map. Used by
// tests and by local development mode, where no database is attached.
type MemoryLedger struct {
	mtx      sync.Mutex
	balances map[position]uint64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[position]uint64)}
}

func (l *MemoryLedger) Mint(asset, to uuid.UUID, amount uint64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	key := position{asset, to}
	if amount > math.MaxUint64-l.balances[key] {
		return ErrBalanceOverflow
	}
	l.balances[key] += amount
	return nil
}

func (l *MemoryLedger) Transfer(asset, from, to uuid.UUID, amount uint64, authority uuid.UUID) error {
	if authority != from {
		return ErrNotAuthorized
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	source := position{asset, from}
	dest := position{asset, to}
	if l.balances[source] < amount {
		return ErrInsufficientBalance
	}
	if amount > math.MaxUint64-l.balances[dest] {
		return ErrBalanceOverflow
	}

	l.balances[source] -= amount
	l.balances[dest] += amount
	return nil
}

func (l *MemoryLedger) Balance(asset, holder uuid.UUID) (uint64, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.balances[position{asset, holder}], nil
}
