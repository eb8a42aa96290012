package trade

import (
	"context"
	"testing"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/internal/tx"
	"main/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelOwnOffer(t *testing.T) {
	api := &fakeLedger{
		offer: adapter.Offer{
			Pair:   adapter.AssetPair{Selling: _usdc, Buying: _xlm},
			Side:   enum.OrderSideSell,
			Amount: d("40"),
			Price:  d("1.5"),
			Status: enum.OfferStatusOpen,
		},
	}
	use, kp := newTestUsecase(t, api)
	api.seller = kp.AccountID()

	result := use.Cancel(context.Background(), CancelRequest{
		AccountID: kp.AccountID(),
		OfferID:   12345,
		AutoSign:  true,
	})

	require.NoError(t, result.Err)
	require.True(t, result.Success)

	require.Len(t, api.submitted, 1)
	envelope, err := tx.Decode(api.submitted[0])
	require.NoError(t, err)
	require.Len(t, envelope.Offers, 1)

	cancel := envelope.Offers[0]
	assert.True(t, cancel.Amount.IsZero(), "cancellation is an amount-zero resubmission")
	assert.Equal(t, int64(12345), cancel.OfferID)
	assert.True(t, cancel.Price.Equal(d("1.5")), "original price is preserved")
	assert.True(t, cancel.Selling.Equal(_usdc))
	assert.True(t, cancel.Buying.Equal(_xlm))
	assert.Equal(t, enum.OrderSideSell, cancel.Side)
}

func TestCancelForeignOffer(t *testing.T) {
	api := &fakeLedger{
		offer:  adapter.Offer{Pair: adapter.AssetPair{Selling: _usdc, Buying: _xlm}, Price: d("1.5")},
		seller: "GSOMEONEELSE",
	}
	use, kp := newTestUsecase(t, api)

	result := use.Cancel(context.Background(), CancelRequest{
		AccountID: kp.AccountID(),
		OfferID:   12345,
		AutoSign:  true,
	})

	require.ErrorIs(t, result.Err, exception.ErrOrderNotFound)
	assert.Empty(t, api.submitted)
}

func TestCancelMissingOffer(t *testing.T) {
	api := &fakeLedger{offerErr: exception.ErrOrderNotFound}
	use, kp := newTestUsecase(t, api)

	result := use.Cancel(context.Background(), CancelRequest{AccountID: kp.AccountID(), OfferID: 999})
	require.ErrorIs(t, result.Err, exception.ErrOrderNotFound)
}

func TestListOpen(t *testing.T) {
	open := []adapter.Offer{
		{ID: 1, Pair: adapter.AssetPair{Selling: _usdc, Buying: _xlm}, Side: enum.OrderSideSell, Amount: d("40"), Price: d("1.5"), Status: enum.OfferStatusOpen},
		{ID: 2, Pair: adapter.AssetPair{Selling: _xlm, Buying: _usdc}, Side: enum.OrderSideBuy, Amount: d("10"), Price: d("0.6"), Status: enum.OfferStatusOpen},
	}
	use, kp := newTestUsecase(t, &fakeLedger{offers: open})

	result := use.ListOpen(context.Background(), kp.AccountID())

	require.NoError(t, result.Err)
	require.True(t, result.Success)
	assert.Equal(t, open, result.Offers)
}

func TestTradeDispatch(t *testing.T) {
	t.Run("buy routes to market order", func(t *testing.T) {
		api := &fakeLedger{depth: asks([2]string{"0.10", "100"})}
		use, kp := newTestUsecase(t, api)

		result := use.Trade(context.Background(), TradeRequest{
			Action:    enum.TradeActionBuy,
			AccountID: kp.AccountID(),
			Target:    _usdc,
			Counter:   _xlm,
			Amount:    d("50"),
			AutoSign:  true,
		})

		require.NoError(t, result.Err)
		assert.Equal(t, 1, api.orderBookCalls)
	})

	t.Run("sell with limit price routes to limit order", func(t *testing.T) {
		api := &fakeLedger{}
		use, kp := newTestUsecase(t, api)

		price := d("1.5")
		result := use.Trade(context.Background(), TradeRequest{
			Action:     enum.TradeActionSell,
			AccountID:  kp.AccountID(),
			Target:     _usdc,
			Counter:    _xlm,
			Amount:     d("40"),
			LimitPrice: &price,
			AutoSign:   true,
		})

		require.NoError(t, result.Err)
		assert.Zero(t, api.orderBookCalls)
	})

	t.Run("list", func(t *testing.T) {
		use, kp := newTestUsecase(t, &fakeLedger{})
		result := use.Trade(context.Background(), TradeRequest{
			Action:    enum.TradeActionListOpen,
			AccountID: kp.AccountID(),
		})
		require.NoError(t, result.Err)
	})

	t.Run("unknown action", func(t *testing.T) {
		use, _ := newTestUsecase(t, &fakeLedger{})
		result := use.Trade(context.Background(), TradeRequest{Amount: decimal.Zero})
		require.Error(t, result.Err)
	})
}
