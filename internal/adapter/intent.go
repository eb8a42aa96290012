package adapter

import (
	"main/internal/adapter/enum"

	"github.com/shopspring/decimal"
)

// OrderIntent is the caller's trading intent before translation.
//
// Amount semantics depend on side: for a buy it is the quantity of the
// target asset being acquired, for a sell the quantity being disposed.
type OrderIntent struct {
	Side        enum.OrderSide
	Target      Asset
	Counter     Asset
	Amount      decimal.Decimal
	LimitPrice  *decimal.Decimal
	MaxSlippage decimal.Decimal
}

// CanonicalOrder is the exchange-facing form of an intent: the selling
// and buying asset of a manage-offer operation, plus which book side the
// fill simulation must consume.
type CanonicalOrder struct {
	Selling Asset
	Buying  Asset
	Amount  decimal.Decimal
	Book    enum.BookSide
}

func (o CanonicalOrder) Pair() AssetPair {
	return AssetPair{Selling: o.Selling, Buying: o.Buying}
}
