package translate

import (
	"testing"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_usdc = adapter.IssuedAsset("USDC", "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVV")
	_xlm  = adapter.NativeAsset()
)

func TestTranslateBuy(t *testing.T) {
	order, err := Translate(adapter.OrderIntent{
		Side:    enum.OrderSideBuy,
		Target:  _usdc,
		Counter: _xlm,
		Amount:  decimal.RequireFromString("100"),
	})

	require.NoError(t, err)
	assert.True(t, order.Selling.Equal(_xlm), "buy disposes the counter asset")
	assert.True(t, order.Buying.Equal(_usdc), "buy acquires the target asset")
	assert.Equal(t, enum.BookSideAsks, order.Book)
	assert.True(t, order.Amount.Equal(decimal.RequireFromString("100")))
}

func TestTranslateSell(t *testing.T) {
	order, err := Translate(adapter.OrderIntent{
		Side:    enum.OrderSideSell,
		Target:  _usdc,
		Counter: _xlm,
		Amount:  decimal.RequireFromString("40"),
	})

	require.NoError(t, err)
	assert.True(t, order.Selling.Equal(_usdc), "sell disposes the target asset")
	assert.True(t, order.Buying.Equal(_xlm), "sell acquires the counter asset")
	assert.Equal(t, enum.BookSideBids, order.Book)
}

func TestTranslateRejectsUnknownSide(t *testing.T) {
	_, err := Translate(adapter.OrderIntent{Target: _usdc, Counter: _xlm})
	require.ErrorIs(t, err, exception.ErrInvalidAssetPair)
}

func TestTranslateRejectsIdenticalAssets(t *testing.T) {
	_, err := Translate(adapter.OrderIntent{
		Side:    enum.OrderSideBuy,
		Target:  _xlm,
		Counter: _xlm,
		Amount:  decimal.RequireFromString("1"),
	})
	require.ErrorIs(t, err, exception.ErrInvalidAssetPair)
}

func TestTranslateRejectsIssuerlessAsset(t *testing.T) {
	_, err := Translate(adapter.OrderIntent{
		Side:    enum.OrderSideSell,
		Target:  adapter.IssuedAsset("USDC", ""),
		Counter: _xlm,
		Amount:  decimal.RequireFromString("1"),
	})
	require.ErrorIs(t, err, exception.ErrInvalidAssetPair)
}
