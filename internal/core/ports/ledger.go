package ports

import "context"

// AssetLedger is the external ledger holding balances per account per asset.
// The engine consumes it, never implements it: every reserve is a balance of
// a pool account on this ledger and every settlement is a transfer on it.
// Any failure returned here must abort the enclosing pool operation.
type AssetLedger interface {
	// BalanceOf returns the balance of the given asset held by account.
	BalanceOf(ctx context.Context, account, asset string) (uint64, error)
	// Transfer moves amount of asset from one account to another.
	Transfer(ctx context.Context, from, to, asset string, amount uint64) error
	// TransferFrom moves amount of asset out of the authorizer's account,
	// spending an authorization previously granted to the recipient.
	TransferFrom(
		ctx context.Context, authorizer, to, asset string, amount uint64,
	) error
}
