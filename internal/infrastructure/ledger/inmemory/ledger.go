package inmemory

import (
	"context"
	"errors"
	"sync"

	"github.com/swapdex-network/swapdex-daemon/internal/core/ports"
)

var (
	// ErrInsufficientBalance is thrown when a transfer exceeds the sender's
	// balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAllowance is thrown when a pull-payment exceeds the
	// authorization granted by the account owner.
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Ledger is an in-process implementation of ports.AssetLedger keeping
// balances per account per asset. It serves tests and single-node
// deployments where no external ledger is reachable.
type Ledger struct {
	balances   map[string]map[string]uint64
	allowances map[string]map[string]uint64

	lock *sync.RWMutex
}

// NewLedger returns a new empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances:   map[string]map[string]uint64{},
		allowances: map[string]map[string]uint64{},
		lock:       &sync.RWMutex{},
	}
}

var _ ports.AssetLedger = (*Ledger)(nil)

func (l *Ledger) BalanceOf(
	_ context.Context, account, asset string,
) (uint64, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.balances[account][asset], nil
}

func (l *Ledger) Transfer(
	_ context.Context, from, to, asset string, amount uint64,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	return l.move(from, to, asset, amount)
}

func (l *Ledger) TransferFrom(
	_ context.Context, authorizer, to, asset string, amount uint64,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	allowance := l.allowances[authorizer][asset]
	if allowance < amount {
		return ErrInsufficientAllowance
	}
	if err := l.move(authorizer, to, asset, amount); err != nil {
		return err
	}
	l.allowances[authorizer][asset] = allowance - amount

	return nil
}

// Fund credits the account out of thin air. Test and bootstrap helper.
func (l *Ledger) Fund(account, asset string, amount uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.credit(account, asset, amount)
}

// Approve grants a pull-payment authorization spendable via TransferFrom.
func (l *Ledger) Approve(account, asset string, amount uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.allowances[account] == nil {
		l.allowances[account] = map[string]uint64{}
	}
	l.allowances[account][asset] = amount
}

func (l *Ledger) move(from, to, asset string, amount uint64) error {
	balance := l.balances[from][asset]
	if balance < amount {
		return ErrInsufficientBalance
	}

	l.balances[from][asset] = balance - amount
	l.credit(to, asset, amount)
	return nil
}

func (l *Ledger) credit(account, asset string, amount uint64) {
	if l.balances[account] == nil {
		l.balances[account] = map[string]uint64{}
	}
	l.balances[account][asset] += amount
}
