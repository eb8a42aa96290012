package trade

import (
	"context"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/internal/tx"
	"main/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

// CancelRequest removes one open offer owned by the account.
type CancelRequest struct {
	AccountID string
	OfferID   int64
	AutoSign  bool
}

// Cancel resubmits the offer with zero remaining amount and the same
// offer id. The original pair and price are looked up from the ledger;
// an offer that does not belong to the caller maps to
// exception.ErrOrderNotFound.
func (use *Usecase) Cancel(ctx context.Context, req CancelRequest) adapter.TradeResult {
	offer, seller, err := use.ledger.Offer(ctx, req.OfferID)
	if err != nil {
		return failure(err)
	}

	if seller != req.AccountID {
		return failure(errors.Wrapf(exception.ErrOrderNotFound,
			"offer %d does not belong to account %s", req.OfferID, req.AccountID))
	}

	cancel := tx.ManageOffer{
		Side:    offer.Side,
		Selling: offer.Pair.Selling,
		Buying:  offer.Pair.Buying,
		Amount:  decimal.Zero,
		Price:   offer.Price,
		OfferID: req.OfferID,
	}

	return outcomeResult(use.pipe.Execute(ctx, req.AccountID, []tx.ManageOffer{cancel}, nil, req.AutoSign))
}

// ListOpen returns the account's open offers as normalized records.
func (use *Usecase) ListOpen(ctx context.Context, accountID string) adapter.TradeResult {
	offers, err := use.ledger.Offers(ctx, accountID)
	if err != nil {
		return failure(err)
	}

	return adapter.TradeResult{Success: true, Offers: offers}
}

// TradeRequest is the flat trading call surface. Action selects the
// typed path; the remaining fields are interpreted per action.
type TradeRequest struct {
	Action      enum.TradeAction
	AccountID   string
	Target      adapter.Asset
	Counter     adapter.Asset
	Amount      decimal.Decimal
	LimitPrice  *decimal.Decimal
	MaxSlippage *decimal.Decimal
	OfferID     int64
	AutoSign    bool
}

// Trade dispatches exhaustively on the action variant.
func (use *Usecase) Trade(ctx context.Context, req TradeRequest) adapter.TradeResult {
	switch req.Action {
	case enum.TradeActionBuy, enum.TradeActionSell:
		side := enum.OrderSideBuy
		if req.Action == enum.TradeActionSell {
			side = enum.OrderSideSell
		}

		if req.LimitPrice != nil {
			return use.LimitOrder(ctx, LimitOrderRequest{
				AccountID: req.AccountID,
				Side:      side,
				Target:    req.Target,
				Counter:   req.Counter,
				Amount:    req.Amount,
				Price:     *req.LimitPrice,
				AutoSign:  req.AutoSign,
			})
		}

		return use.MarketOrder(ctx, MarketOrderRequest{
			AccountID:   req.AccountID,
			Side:        side,
			Target:      req.Target,
			Counter:     req.Counter,
			Amount:      req.Amount,
			MaxSlippage: req.MaxSlippage,
			AutoSign:    req.AutoSign,
		})
	case enum.TradeActionCancel:
		return use.Cancel(ctx, CancelRequest{
			AccountID: req.AccountID,
			OfferID:   req.OfferID,
			AutoSign:  req.AutoSign,
		})
	case enum.TradeActionListOpen:
		return use.ListOpen(ctx, req.AccountID)
	default:
		return failure(errors.Wrapf(exception.ErrInvalidAssetPair, "unsupported trade action: %d", req.Action))
	}
}
