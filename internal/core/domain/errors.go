package domain

import "errors"

var (
	// ErrPoolInvalidAsset is thrown when the paired asset id is not a 32-byte
	// hex string.
	ErrPoolInvalidAsset = errors.New("pool asset must be a 32-byte hex string")
	// ErrPoolInvalidFee is thrown when the percentage fee is out of the
	// [0, 9999] basis point range.
	ErrPoolInvalidFee = errors.New("pool fee must be in range [0, 9999]")
	// ErrPoolInvalidShareAmount ...
	ErrPoolInvalidShareAmount = errors.New("share amount must be positive")
	// ErrPoolInsufficientShareBalance is thrown when burning more shares than
	// the provider's recorded balance.
	ErrPoolInsufficientShareBalance = errors.New(
		"share amount exceeds provider balance",
	)
	// ErrPoolShareSupplyOverflow ...
	ErrPoolShareSupplyOverflow = errors.New("share supply overflow")
	// ErrPoolNotFound ...
	ErrPoolNotFound = errors.New("pool does not exist")
	// ErrPoolAlreadyExists is thrown when registering a second pool for an
	// asset that is already served by one.
	ErrPoolAlreadyExists = errors.New("pool already exists for asset")
)
