// Package translate maps buy/sell intent to canonical exchange order
// parameters and selects which side of the book a fill must consume.
package translate

import (
	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

// Translate resolves an intent into the exchange's selling/buying frame.
//
// Buy: amount is the quantity of the target asset acquired, priced in
// disposed units per acquired unit, filled from the asks (counterparties
// offering the target asset). Sell: amount is the quantity of the target
// asset disposed, priced in acquired units per disposed unit, filled
// from the bids.
func Translate(intent adapter.OrderIntent) (adapter.CanonicalOrder, error) {
	var order adapter.CanonicalOrder

	switch intent.Side {
	case enum.OrderSideBuy:
		order = adapter.CanonicalOrder{
			Selling: intent.Counter,
			Buying:  intent.Target,
			Amount:  intent.Amount,
			Book:    enum.BookSideAsks,
		}
	case enum.OrderSideSell:
		order = adapter.CanonicalOrder{
			Selling: intent.Target,
			Buying:  intent.Counter,
			Amount:  intent.Amount,
			Book:    enum.BookSideBids,
		}
	default:
		return adapter.CanonicalOrder{}, errors.Wrapf(exception.ErrInvalidAssetPair, "unsupported order side: %d", intent.Side)
	}

	if err := order.Pair().Validate(); err != nil {
		return adapter.CanonicalOrder{}, err
	}

	return order, nil
}
