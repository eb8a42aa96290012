package adapter

import (
	"main/internal/adapter/enum"

	"github.com/shopspring/decimal"
)

// Offer is an order persisted on the exchange.
type Offer struct {
	ID     int64
	Pair   AssetPair
	Side   enum.OrderSide
	Amount decimal.Decimal
	Price  decimal.Decimal
	Status enum.OfferStatus
}

// TradeResult is the outcome of one trading call.
type TradeResult struct {
	Success        bool
	Hash           string
	LedgerSequence int64
	Diagnostics    *ExecutionDiagnostics
	Offers         []Offer
	UnsignedTx     string
	Err            error
}
