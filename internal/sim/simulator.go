// Package sim predicts the execution of an order against a depth
// snapshot. Simulation is pure: no I/O, no shared state, exact decimal
// arithmetic end-to-end.
package sim

import (
	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

// Config carries the execution-price policy.
//
// BufferFactor pads the worst consumed level to derive the limit price
// submitted to the exchange. It is a policy choice, not a correctness
// constant, so it always comes from configuration.
type Config struct {
	BufferFactor decimal.Decimal
}

var defaultBufferFactor = decimal.RequireFromString("1.05")

func DefaultConfig() Config {
	return Config{BufferFactor: defaultBufferFactor}
}

// Simulate walks the given book side best-first and fills greedily until
// the requested amount is covered or the levels are exhausted.
//
// The returned plan never fills more than requested. A partially covered
// amount yields an infeasible plan carrying ErrInsufficientLiquidity and
// the achievable partial totals.
//
// Side fixes the direction of the padding: a buy pads the worst ask up,
// a sell shades the worst bid down, so the submitted limit price always
// still crosses every simulated level. Slippage is the magnitude of the
// deviation from the top-of-book price.
func Simulate(levels []adapter.DepthLevel, amount decimal.Decimal, side enum.OrderSide, cfg Config) adapter.FillPlan {
	plan := adapter.FillPlan{
		TotalFilled: decimal.Zero,
		TotalCost:   decimal.Zero,
	}

	if amount.IsNegative() {
		plan.Err = errors.Wrapf(exception.ErrMalformedAmountOrPrice, "negative amount: %s", amount)
		return plan
	}

	if amount.IsZero() {
		plan.Feasible = true
		return plan
	}

	buffer := cfg.BufferFactor
	if buffer.IsZero() {
		buffer = defaultBufferFactor
	}

	remaining := amount
	for _, level := range levels {
		if !level.Amount.IsPositive() {
			continue
		}

		filled := decimal.Min(remaining, level.Amount)
		plan.Fills = append(plan.Fills, adapter.Fill{Price: level.Price, Amount: filled})
		plan.TotalFilled = plan.TotalFilled.Add(filled)
		plan.TotalCost = plan.TotalCost.Add(filled.Mul(level.Price))
		plan.WorstPrice = level.Price

		remaining = remaining.Sub(filled)
		if !remaining.IsPositive() {
			break
		}
	}

	if len(plan.Fills) != 0 {
		plan.BestPrice = plan.Fills[0].Price
	}

	if plan.TotalFilled.IsPositive() {
		plan.AveragePrice = plan.TotalCost.Div(plan.TotalFilled)
	}

	if remaining.IsPositive() {
		plan.Err = errors.Wrapf(exception.ErrInsufficientLiquidity,
			"requested %s, only %s available", amount, plan.TotalFilled)
		return plan
	}

	if plan.BestPrice.IsPositive() {
		plan.Slippage = plan.AveragePrice.Sub(plan.BestPrice).Div(plan.BestPrice).Abs()
	}

	if side == enum.OrderSideSell {
		plan.ExecutionPrice = plan.WorstPrice.Div(buffer)
	} else {
		plan.ExecutionPrice = plan.WorstPrice.Mul(buffer)
	}

	plan.Feasible = true
	return plan
}
