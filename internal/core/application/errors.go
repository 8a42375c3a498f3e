package application

import "errors"

var (
	// ErrInvalidAsset is returned for zero, malformed or non-poolable asset
	// references.
	ErrInvalidAsset = errors.New("asset must be a 32-byte hex string distinct from the base asset")
	// ErrInvalidAccount ...
	ErrInvalidAccount = errors.New("account must not be empty")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientContribution is returned when a deposit does not meet
	// the proportional paired-asset requirement.
	ErrInsufficientContribution = errors.New(
		"desired asset amount does not cover the proportional requirement",
	)
	// ErrSlippageExceeded is returned when the computed output of a swap is
	// below the caller's minimum acceptable amount.
	ErrSlippageExceeded = errors.New("computed output is below the accepted minimum")
	// ErrInvalidDestination is returned when a token-to-token swap resolves
	// to an unregistered destination or to the source pool itself.
	ErrInvalidDestination = errors.New("destination pool does not exist or is the source pool")
	// ErrLedgerTransferFailed wraps any debit/credit rejected by the external
	// asset ledger.
	ErrLedgerTransferFailed = errors.New("asset ledger rejected the transfer")
	// ErrLedgerUnavailable wraps any failed balance read on the external
	// asset ledger.
	ErrLedgerUnavailable = errors.New("asset ledger is unavailable")
)
