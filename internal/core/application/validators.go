package application

import "encoding/hex"

func validateAssetString(asset string) error {
	buf, err := hex.DecodeString(asset)
	if err != nil {
		return ErrInvalidAsset
	}
	if len(buf) != 32 {
		return ErrInvalidAsset
	}
	return nil
}

func validateAccountString(account string) error {
	if len(account) == 0 {
		return ErrInvalidAccount
	}
	return nil
}
