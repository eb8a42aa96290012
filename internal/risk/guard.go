// Package risk vetoes unsafe fill plans before anything touches the
// network. A denied plan never costs a submission fee.
package risk

import (
	"main/internal/adapter"
	"main/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

// Action allow, deny
type Action uint8

const (
	_action_beg Action = iota
	ActionAllow
	ActionDeny
	_action_end
)

func (a Action) IsAvailable() bool {
	return a > _action_beg && a < _action_end
}

// Reason none, liquidity, slippage
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonInsufficientLiquidity
	ReasonSlippageExceeded
)

// Decision is the guard's verdict over one fill plan.
type Decision struct {
	Action         Action
	Reason         Reason
	ExecutionPrice decimal.Decimal
	TotalFilled    decimal.Decimal
	Observed       decimal.Decimal
	Threshold      decimal.Decimal
	Err            error
}

// Evaluate applies the liquidity and slippage policy to a simulated
// plan. It has no side effects and must run before any network
// mutation.
func Evaluate(plan adapter.FillPlan, maxSlippage decimal.Decimal) Decision {
	decision := Decision{
		Action:         ActionAllow,
		Reason:         ReasonNone,
		ExecutionPrice: plan.ExecutionPrice,
		TotalFilled:    plan.TotalFilled,
		Observed:       plan.Slippage,
		Threshold:      maxSlippage,
	}

	if !plan.Feasible {
		decision.Action = ActionDeny
		decision.Reason = ReasonInsufficientLiquidity
		decision.Err = plan.Err
		if decision.Err == nil {
			decision.Err = exception.ErrInsufficientLiquidity
		}
		return decision
	}

	if plan.Slippage.GreaterThan(maxSlippage) {
		decision.Action = ActionDeny
		decision.Reason = ReasonSlippageExceeded
		decision.Err = errors.Wrapf(exception.ErrSlippageExceeded,
			"observed %s, threshold %s", plan.Slippage, maxSlippage)
		return decision
	}

	return decision
}
