package adapter

import "github.com/shopspring/decimal"

// Fill is the quantity matched at one price level during simulation.
type Fill struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// FillPlan is the predicted execution of an order against one depth
// snapshot. TotalFilled never exceeds the requested amount; Feasible
// holds only when the full amount is covered by the walked levels.
type FillPlan struct {
	Fills          []Fill
	TotalFilled    decimal.Decimal
	TotalCost      decimal.Decimal
	AveragePrice   decimal.Decimal
	BestPrice      decimal.Decimal
	WorstPrice     decimal.Decimal
	Slippage       decimal.Decimal
	ExecutionPrice decimal.Decimal
	Feasible       bool
	Err            error
}

// ExecutionDiagnostics is the caller-facing view of an accepted plan.
type ExecutionDiagnostics struct {
	Fills          []Fill
	AveragePrice   decimal.Decimal
	BestPrice      decimal.Decimal
	ExecutionPrice decimal.Decimal
	Slippage       decimal.Decimal
}

func (p FillPlan) Diagnostics() *ExecutionDiagnostics {
	return &ExecutionDiagnostics{
		Fills:          p.Fills,
		AveragePrice:   p.AveragePrice,
		BestPrice:      p.BestPrice,
		ExecutionPrice: p.ExecutionPrice,
		Slippage:       p.Slippage,
	}
}
