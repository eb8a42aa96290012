package exception

import "errors"

// Trading errors detected before any network mutation.
var (
	ErrInvalidAssetPair       = errors.New("invalid asset pair")
	ErrInsufficientLiquidity  = errors.New("insufficient liquidity")
	ErrSlippageExceeded       = errors.New("slippage exceeds threshold")
	ErrOrderNotFound          = errors.New("order not found")
	ErrAccountNotFound        = errors.New("account not found in key storage")
	ErrMalformedAmountOrPrice = errors.New("malformed amount or price")
)
