// Package trust manages trustlines: the authorization an account needs
// before holding or trading a non-native asset.
package trust

import (
	"context"

	"main/internal/adapter"
	"main/internal/pipeline"
	"main/internal/tx"

	"github.com/shopspring/decimal"
)

type Manager struct {
	pipe *pipeline.Pipeline
}

func NewManager(pipe *pipeline.Pipeline) *Manager {
	return &Manager{pipe: pipe}
}

// Establish creates a trustline for the asset. A nil limit trusts the
// maximum.
func (m *Manager) Establish(ctx context.Context, accountID string, asset adapter.Asset, limit *decimal.Decimal, autoSign bool) pipeline.Outcome {
	if err := asset.Validate(); err != nil {
		return pipeline.Outcome{Err: err}
	}

	change := tx.ChangeTrust{Asset: asset, Limit: limit}
	return m.pipe.Execute(ctx, accountID, nil, []tx.ChangeTrust{change}, autoSign)
}

// Remove deletes the trustline by setting its limit to zero. The
// account must hold a zero balance of the asset.
func (m *Manager) Remove(ctx context.Context, accountID string, asset adapter.Asset, autoSign bool) pipeline.Outcome {
	if err := asset.Validate(); err != nil {
		return pipeline.Outcome{Err: err}
	}

	zero := decimal.Zero
	change := tx.ChangeTrust{Asset: asset, Limit: &zero}
	return m.pipe.Execute(ctx, accountID, nil, []tx.ChangeTrust{change}, autoSign)
}
