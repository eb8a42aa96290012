// Package trade is the trading call surface. Each call runs one
// synchronous pipeline: fetch depth → simulate → guard → build → sign →
// submit. The depth snapshot is fetched exactly once per call; the
// computed plan is a best-effort prediction and the padded execution
// price bounds the worst case on the exchange side.
package trade

import (
	"context"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/internal/pipeline"
	"main/internal/risk"
	"main/internal/sim"
	"main/internal/translate"
	"main/internal/tx"
	"main/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

// LedgerClient is the slice of the ledger client the usecase consumes.
type LedgerClient interface {
	OrderBook(ctx context.Context, pair adapter.AssetPair, limit int) (adapter.Depth, error)
	Offers(ctx context.Context, accountID string) ([]adapter.Offer, error)
	Offer(ctx context.Context, offerID int64) (adapter.Offer, string, error)
}

// Config carries the trading policy knobs.
type Config struct {
	DepthLimit         int
	DefaultMaxSlippage decimal.Decimal
	Sim                sim.Config
}

var defaultMaxSlippage = decimal.RequireFromString("0.05")

type Usecase struct {
	ledger LedgerClient
	pipe   *pipeline.Pipeline
	cfg    Config
}

func NewUsecase(ledger LedgerClient, pipe *pipeline.Pipeline, cfg Config) *Usecase {
	if cfg.DepthLimit <= 0 {
		cfg.DepthLimit = 20
	}
	if cfg.DefaultMaxSlippage.IsZero() {
		cfg.DefaultMaxSlippage = defaultMaxSlippage
	}
	return &Usecase{ledger: ledger, pipe: pipe, cfg: cfg}
}

// MarketOrderRequest crosses the spread at the best available prices,
// bounded by the slippage guard. A nil MaxSlippage falls back to the
// configured default; an explicit zero tolerates no slippage at all.
type MarketOrderRequest struct {
	AccountID   string
	Side        enum.OrderSide
	Target      adapter.Asset
	Counter     adapter.Asset
	Amount      decimal.Decimal
	MaxSlippage *decimal.Decimal
	AutoSign    bool
}

// LimitOrderRequest places a plain limit order at the caller's price,
// bypassing simulation and the slippage guard.
type LimitOrderRequest struct {
	AccountID string
	Side      enum.OrderSide
	Target    adapter.Asset
	Counter   adapter.Asset
	Amount    decimal.Decimal
	Price     decimal.Decimal
	AutoSign  bool
}

// MarketOrder runs the full diagnostic pipeline before any network
// mutation: infeasible or unsafe plans are rejected without spending a
// submission fee.
func (use *Usecase) MarketOrder(ctx context.Context, req MarketOrderRequest) adapter.TradeResult {
	if !req.Amount.IsPositive() {
		return failure(errors.Wrapf(exception.ErrMalformedAmountOrPrice, "amount %s", req.Amount))
	}

	maxSlippage := use.cfg.DefaultMaxSlippage
	if req.MaxSlippage != nil {
		maxSlippage = *req.MaxSlippage
	}

	order, err := translate.Translate(adapter.OrderIntent{
		Side:        req.Side,
		Target:      req.Target,
		Counter:     req.Counter,
		Amount:      req.Amount,
		MaxSlippage: maxSlippage,
	})
	if err != nil {
		return failure(err)
	}

	depth, err := use.ledger.OrderBook(ctx, bookPair(req.Target, req.Counter), use.cfg.DepthLimit)
	if err != nil {
		return failure(err)
	}

	plan := sim.Simulate(depth.Side(order.Book), order.Amount, req.Side, use.cfg.Sim)
	decision := risk.Evaluate(plan, maxSlippage)
	if decision.Action != risk.ActionAllow {
		result := failure(decision.Err)
		result.Diagnostics = plan.Diagnostics()
		return result
	}

	logs.Infof("market %s accepted, filled: %s, execution price: %s, slippage: %s",
		req.Side, decision.TotalFilled, decision.ExecutionPrice, decision.Observed)

	offer := tx.ManageOffer{
		Side:    req.Side,
		Selling: order.Selling,
		Buying:  order.Buying,
		Amount:  decision.TotalFilled,
		Price:   decision.ExecutionPrice,
	}

	result := outcomeResult(use.pipe.Execute(ctx, req.AccountID, []tx.ManageOffer{offer}, nil, req.AutoSign))
	result.Diagnostics = plan.Diagnostics()
	return result
}

// LimitOrder places an order at the caller-supplied price.
func (use *Usecase) LimitOrder(ctx context.Context, req LimitOrderRequest) adapter.TradeResult {
	if !req.Amount.IsPositive() || !req.Price.IsPositive() {
		return failure(errors.Wrapf(exception.ErrMalformedAmountOrPrice, "amount %s, price %s", req.Amount, req.Price))
	}

	order, err := translate.Translate(adapter.OrderIntent{
		Side:       req.Side,
		Target:     req.Target,
		Counter:    req.Counter,
		Amount:     req.Amount,
		LimitPrice: &req.Price,
	})
	if err != nil {
		return failure(err)
	}

	offer := tx.ManageOffer{
		Side:    req.Side,
		Selling: order.Selling,
		Buying:  order.Buying,
		Amount:  order.Amount,
		Price:   req.Price,
	}

	return outcomeResult(use.pipe.Execute(ctx, req.AccountID, []tx.ManageOffer{offer}, nil, req.AutoSign))
}

// bookPair keys the depth query in the target asset's seller frame, so
// ask prices read counter-per-target and match the buy price meaning.
func bookPair(target, counter adapter.Asset) adapter.AssetPair {
	return adapter.AssetPair{Selling: target, Buying: counter}
}

func failure(err error) adapter.TradeResult {
	return adapter.TradeResult{Err: err}
}

func outcomeResult(outcome pipeline.Outcome) adapter.TradeResult {
	if outcome.Err != nil {
		return adapter.TradeResult{Err: outcome.Err}
	}

	if outcome.UnsignedTx != "" {
		return adapter.TradeResult{Success: true, UnsignedTx: outcome.UnsignedTx}
	}

	return adapter.TradeResult{
		Success:        true,
		Hash:           outcome.Hash,
		LedgerSequence: outcome.Ledger,
	}
}
