package adapter

import (
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

// Asset is either the ledger's native unit or an issued asset
// identified by code and issuer account.
type Asset struct {
	Native bool
	Code   string
	Issuer string
}

func NativeAsset() Asset {
	return Asset{Native: true}
}

func IssuedAsset(code, issuer string) Asset {
	return Asset{Code: code, Issuer: issuer}
}

// Validate enforces that issuer is required unless native.
func (a Asset) Validate() error {
	if a.Native {
		return nil
	}

	if len(a.Code) == 0 {
		return errors.Wrap(exception.ErrInvalidAssetPair, "empty asset code")
	}

	if len(a.Issuer) == 0 {
		return errors.Wrapf(exception.ErrInvalidAssetPair, "asset %s requires an issuer", a.Code)
	}

	return nil
}

func (a Asset) Equal(other Asset) bool {
	if a.Native || other.Native {
		return a.Native == other.Native
	}

	return a.Code == other.Code && a.Issuer == other.Issuer
}

func (a Asset) String() string {
	if a.Native {
		return "native"
	}

	return a.Code + ":" + a.Issuer
}

// AssetPair is a tradable pair from the seller's point of view.
type AssetPair struct {
	Selling Asset
	Buying  Asset
}

func (p AssetPair) Validate() error {
	if err := p.Selling.Validate(); err != nil {
		return err
	}

	if err := p.Buying.Validate(); err != nil {
		return err
	}

	if p.Selling.Equal(p.Buying) {
		return errors.Wrap(exception.ErrInvalidAssetPair, "selling and buying asset are identical")
	}

	return nil
}
