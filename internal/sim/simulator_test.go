package sim

import (
	"testing"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func levels(rows ...[2]string) []adapter.DepthLevel {
	out := make([]adapter.DepthLevel, 0, len(rows))
	for _, row := range rows {
		out = append(out, adapter.DepthLevel{Price: d(row[0]), Amount: d(row[1])})
	}
	return out
}

func TestSimulateMultiLevelBuy(t *testing.T) {
	depth := levels([2]string{"0.10", "50"}, [2]string{"0.12", "50"}, [2]string{"0.15", "100"})

	plan := Simulate(depth, d("100"), enum.OrderSideBuy, DefaultConfig())

	require.True(t, plan.Feasible)
	require.NoError(t, plan.Err)
	require.Len(t, plan.Fills, 2)
	assert.True(t, plan.Fills[0].Price.Equal(d("0.10")), "fill 0 price %s", plan.Fills[0].Price)
	assert.True(t, plan.Fills[0].Amount.Equal(d("50")), "fill 0 amount %s", plan.Fills[0].Amount)
	assert.True(t, plan.Fills[1].Price.Equal(d("0.12")), "fill 1 price %s", plan.Fills[1].Price)
	assert.True(t, plan.Fills[1].Amount.Equal(d("50")), "fill 1 amount %s", plan.Fills[1].Amount)
	assert.True(t, plan.TotalFilled.Equal(d("100")), "total filled %s", plan.TotalFilled)
	assert.True(t, plan.AveragePrice.Equal(d("0.11")), "average price %s", plan.AveragePrice)
	assert.True(t, plan.Slippage.Equal(d("0.10")), "slippage %s", plan.Slippage)
	assert.True(t, plan.BestPrice.Equal(d("0.10")), "best price %s", plan.BestPrice)
	assert.True(t, plan.WorstPrice.Equal(d("0.12")), "worst price %s", plan.WorstPrice)
	assert.True(t, plan.ExecutionPrice.Equal(d("0.126")), "execution price %s", plan.ExecutionPrice)
}

func TestSimulateInsufficientLiquidity(t *testing.T) {
	depth := levels([2]string{"0.10", "30"}, [2]string{"0.12", "20"})

	plan := Simulate(depth, d("100"), enum.OrderSideBuy, DefaultConfig())

	require.False(t, plan.Feasible)
	require.ErrorIs(t, plan.Err, exception.ErrInsufficientLiquidity)
	assert.True(t, plan.TotalFilled.Equal(d("50")), "partial fill %s", plan.TotalFilled)
}

func TestSimulateSellSide(t *testing.T) {
	depth := levels([2]string{"2.0", "10"}, [2]string{"1.5", "40"})

	plan := Simulate(depth, d("50"), enum.OrderSideSell, DefaultConfig())

	require.True(t, plan.Feasible)
	require.Len(t, plan.Fills, 2)
	assert.True(t, plan.TotalFilled.Equal(d("50")), "total filled %s", plan.TotalFilled)
	// cost 10*2.0 + 40*1.5 = 80, average 1.6
	assert.True(t, plan.TotalCost.Equal(d("80")), "total cost %s", plan.TotalCost)
	assert.True(t, plan.AveragePrice.Equal(d("1.6")), "average price %s", plan.AveragePrice)
	assert.True(t, plan.Slippage.Equal(d("0.2")), "slippage %s", plan.Slippage)
	// sell limit shades the worst bid down so the order still crosses
	assert.True(t, plan.ExecutionPrice.LessThan(plan.WorstPrice), "execution price %s", plan.ExecutionPrice)
}

func TestSimulateSkipsEmptyLevels(t *testing.T) {
	depth := levels([2]string{"0.10", "0"}, [2]string{"0.12", "50"})

	plan := Simulate(depth, d("50"), enum.OrderSideBuy, DefaultConfig())

	require.True(t, plan.Feasible)
	require.Len(t, plan.Fills, 1)
	assert.True(t, plan.BestPrice.Equal(d("0.12")), "best price comes from the first consumed level, got %s", plan.BestPrice)
	assert.True(t, plan.Slippage.IsZero(), "single consumed level has no slippage, got %s", plan.Slippage)
}

func TestSimulateEmptyDepth(t *testing.T) {
	plan := Simulate(nil, d("10"), enum.OrderSideBuy, DefaultConfig())

	require.False(t, plan.Feasible)
	require.ErrorIs(t, plan.Err, exception.ErrInsufficientLiquidity)
	assert.True(t, plan.TotalFilled.IsZero())
}

func TestSimulateZeroAmount(t *testing.T) {
	depth := levels([2]string{"0.10", "50"})

	plan := Simulate(depth, decimal.Zero, enum.OrderSideBuy, DefaultConfig())

	require.True(t, plan.Feasible)
	require.NoError(t, plan.Err)
	assert.Empty(t, plan.Fills)
	assert.True(t, plan.TotalFilled.IsZero())
}

func TestSimulateNegativeAmount(t *testing.T) {
	plan := Simulate(nil, d("-1"), enum.OrderSideBuy, DefaultConfig())

	require.False(t, plan.Feasible)
	require.ErrorIs(t, plan.Err, exception.ErrMalformedAmountOrPrice)
}

func TestSimulateBufferFactorFromConfig(t *testing.T) {
	depth := levels([2]string{"0.10", "100"})
	cfg := Config{BufferFactor: d("1.10")}

	plan := Simulate(depth, d("100"), enum.OrderSideBuy, cfg)

	require.True(t, plan.Feasible)
	assert.True(t, plan.ExecutionPrice.Equal(d("0.11")), "execution price %s", plan.ExecutionPrice)
}

func TestSimulateNeverOverfills(t *testing.T) {
	depth := levels([2]string{"0.10", "50"}, [2]string{"0.12", "50"}, [2]string{"0.15", "100"})
	amounts := []string{"1", "49", "50", "51", "100", "150", "200", "500"}

	for _, amount := range amounts {
		plan := Simulate(depth, d(amount), enum.OrderSideBuy, DefaultConfig())
		assert.True(t, plan.TotalFilled.LessThanOrEqual(d(amount)),
			"amount %s: filled %s", amount, plan.TotalFilled)

		if plan.Feasible {
			assert.True(t, plan.AveragePrice.GreaterThanOrEqual(plan.BestPrice),
				"amount %s: average %s below best %s", amount, plan.AveragePrice, plan.BestPrice)
		}
	}
}

func TestSimulateFeasibleWhenLiquiditySuffices(t *testing.T) {
	depth := levels([2]string{"0.10", "50"}, [2]string{"0.12", "50"})

	// total available 100 >= requested 80
	plan := Simulate(depth, d("80"), enum.OrderSideBuy, DefaultConfig())
	require.True(t, plan.Feasible)
	assert.True(t, plan.TotalFilled.Equal(d("80")))
}

func TestSimulateIsPure(t *testing.T) {
	depth := levels([2]string{"0.10", "50"}, [2]string{"0.12", "50"})

	first := Simulate(depth, d("75"), enum.OrderSideBuy, DefaultConfig())
	second := Simulate(depth, d("75"), enum.OrderSideBuy, DefaultConfig())

	require.Equal(t, first.Feasible, second.Feasible)
	require.Len(t, second.Fills, len(first.Fills))
	assert.True(t, first.TotalFilled.Equal(second.TotalFilled))
	assert.True(t, first.AveragePrice.Equal(second.AveragePrice))
	assert.True(t, first.Slippage.Equal(second.Slippage))
	assert.True(t, first.ExecutionPrice.Equal(second.ExecutionPrice))
}

func TestSimulateCostRoundTrip(t *testing.T) {
	depth := levels([2]string{"0.1234567", "12.345"}, [2]string{"0.1299999", "7.891"}, [2]string{"0.1555555", "100"})

	plan := Simulate(depth, d("55.5"), enum.OrderSideBuy, DefaultConfig())
	require.True(t, plan.Feasible)

	sum := decimal.Zero
	for _, fill := range plan.Fills {
		sum = sum.Add(fill.Price.Mul(fill.Amount))
	}
	assert.True(t, sum.Equal(plan.TotalCost), "sum %s, total cost %s", sum, plan.TotalCost)
}
