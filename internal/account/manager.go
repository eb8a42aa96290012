// Package account manages ledger accounts around the keystore: create,
// fund (testnet friendbot), inspect, list, import and export.
package account

import (
	"context"

	"main/internal/keystore"
	"main/internal/ledger"

	"github.com/yanun0323/logs"
)

// LedgerClient is the slice of the ledger client the manager consumes.
type LedgerClient interface {
	Account(ctx context.Context, accountID string) (ledger.Account, error)
	Transactions(ctx context.Context, accountID string, limit int) ([]ledger.Transaction, error)
	FundAccount(ctx context.Context, accountID string) error
}

type Manager struct {
	keys   keystore.Store
	ledger LedgerClient
}

func NewManager(keys keystore.Store, ledger LedgerClient) *Manager {
	return &Manager{keys: keys, ledger: ledger}
}

// Create generates a new keypair and persists it. The account is
// unfunded until Fund activates it on the network.
func (m *Manager) Create() (string, error) {
	kp, err := keystore.NewKeypair()
	if err != nil {
		return "", err
	}

	if err := m.keys.Persist(kp.AccountID(), kp.Secret()); err != nil {
		return "", err
	}

	logs.Infof("account created (unfunded): %s", kp.AccountID())
	return kp.AccountID(), nil
}

// Fund requests friendbot funding and returns the resulting account
// state.
func (m *Manager) Fund(ctx context.Context, accountID string) (ledger.Account, error) {
	if err := m.ledger.FundAccount(ctx, accountID); err != nil {
		return ledger.Account{}, err
	}

	return m.ledger.Account(ctx, accountID)
}

// Get loads the account's balances and sequence from the ledger.
func (m *Manager) Get(ctx context.Context, accountID string) (ledger.Account, error) {
	return m.ledger.Account(ctx, accountID)
}

// Transactions lists the account's transaction history, newest first.
func (m *Manager) Transactions(ctx context.Context, accountID string, limit int) ([]ledger.Transaction, error) {
	return m.ledger.Transactions(ctx, accountID, limit)
}

// List returns all account ids managed by the keystore.
func (m *Manager) List() ([]string, error) {
	return m.keys.List()
}

// Import stores an existing secret and returns the derived account id.
func (m *Manager) Import(secret string) (string, error) {
	return m.keys.Import(secret)
}

// Export returns the secret material for backup/migration. Handle with
// care: anyone holding the secret controls the account.
func (m *Manager) Export(accountID string) (string, error) {
	return m.keys.Export(accountID)
}
