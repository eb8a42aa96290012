// Package keystore resolves account identifiers to signing capability.
//
// All backends serialize mutation behind a single writer so interleaved
// create/import calls from concurrent invocations cannot corrupt the
// backing store.
package keystore

// Store is the keystore contract consumed by the transaction pipeline
// and the account manager.
type Store interface {
	// Resolve returns signing capability for the account, or
	// exception.ErrAccountNotFound.
	Resolve(accountID string) (*Keypair, error)

	// Persist stores secret material under the account id.
	Persist(accountID, secret string) error

	// Import stores an existing secret and returns the derived account id.
	Import(secret string) (string, error)

	// Export returns the secret material for backup/migration.
	Export(accountID string) (string, error)

	// List returns all managed account ids.
	List() ([]string, error)

	Close() error
}
