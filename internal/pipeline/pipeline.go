// Package pipeline carries an approved order through build → sign →
// submit against the ledger. Failures are reported, never retried; a
// transaction that fails diagnosis before submission never costs a fee.
package pipeline

import (
	"context"
	"errors"

	"main/internal/adapter/enum"
	"main/internal/keystore"
	"main/internal/ledger"
	"main/internal/tx"

	"github.com/yanun0323/logs"
)

var ErrInvalidTransition = errors.New("invalid transaction stage transition")

// LedgerAPI is the slice of the ledger client the pipeline consumes.
type LedgerAPI interface {
	Account(ctx context.Context, accountID string) (ledger.Account, error)
	Submit(ctx context.Context, encodedTx string) (ledger.SubmitResult, error)
}

// Resolver resolves account ids to signing capability.
type Resolver interface {
	Resolve(accountID string) (*keystore.Keypair, error)
}

// Config carries transaction construction parameters.
type Config struct {
	Network string
	BaseFee int64
}

// Transaction tracks one envelope through its lifecycle. Built is the
// initial stage; Confirmed and Failed are terminal.
type Transaction struct {
	Stage    enum.TxStage
	Envelope *tx.Envelope
}

// Outcome is the terminal report of one pipeline run.
type Outcome struct {
	Stage      enum.TxStage
	Hash       string
	Ledger     int64
	UnsignedTx string
	Err        error
}

type Pipeline struct {
	api  LedgerAPI
	keys Resolver
	cfg  Config
}

func New(api LedgerAPI, keys Resolver, cfg Config) *Pipeline {
	if cfg.BaseFee == 0 {
		cfg.BaseFee = 100
	}
	return &Pipeline{api: api, keys: keys, cfg: cfg}
}

// Build constructs the envelope from the account's current sequence
// number and the given operations.
func (p *Pipeline) Build(ctx context.Context, accountID string, offers []tx.ManageOffer, trusts []tx.ChangeTrust) (*Transaction, error) {
	account, err := p.api.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Stage: enum.TxStageBuilt,
		Envelope: &tx.Envelope{
			Source:   accountID,
			Sequence: account.Sequence + 1,
			BaseFee:  p.cfg.BaseFee,
			Network:  p.cfg.Network,
			Offers:   offers,
			Trusts:   trusts,
		},
	}, nil
}

// Sign resolves the source account's signing capability and signs the
// envelope. Fails with exception.ErrAccountNotFound when unresolved.
func (p *Pipeline) Sign(transaction *Transaction) error {
	if transaction.Stage != enum.TxStageBuilt {
		return ErrInvalidTransition
	}

	kp, err := p.keys.Resolve(transaction.Envelope.Source)
	if err != nil {
		return err
	}

	if err := transaction.Envelope.Sign(kp); err != nil {
		return err
	}

	transaction.Stage = enum.TxStageSigned
	return nil
}

// Submit hands the signed envelope to the ledger. On success the
// transaction confirms with {hash, ledgerSequence}; on rejection it
// fails carrying the verbatim network error.
func (p *Pipeline) Submit(ctx context.Context, transaction *Transaction) Outcome {
	if transaction.Stage != enum.TxStageSigned {
		return Outcome{Stage: transaction.Stage, Err: ErrInvalidTransition}
	}

	encoded, err := transaction.Envelope.Encode()
	if err != nil {
		transaction.Stage = enum.TxStageFailed
		return Outcome{Stage: enum.TxStageFailed, Err: err}
	}

	transaction.Stage = enum.TxStageSubmitted
	result, err := p.api.Submit(ctx, encoded)
	if err != nil {
		transaction.Stage = enum.TxStageFailed
		logs.Errorf("submission failed, source: %s, err: %+v", transaction.Envelope.Source, err)
		return Outcome{Stage: enum.TxStageFailed, Err: err}
	}

	transaction.Stage = enum.TxStageConfirmed
	logs.Infof("submission confirmed, hash: %s, ledger: %d", result.Hash, result.Ledger)
	return Outcome{
		Stage:  enum.TxStageConfirmed,
		Hash:   result.Hash,
		Ledger: result.Ledger,
	}
}

// Execute runs the full build → sign → submit flow. With autoSign false
// it halts after build and returns the unsigned artifact so the caller
// can resume signing out-of-band.
func (p *Pipeline) Execute(ctx context.Context, accountID string, offers []tx.ManageOffer, trusts []tx.ChangeTrust, autoSign bool) Outcome {
	transaction, err := p.Build(ctx, accountID, offers, trusts)
	if err != nil {
		return Outcome{Err: err}
	}

	if !autoSign {
		unsigned, err := transaction.Envelope.Encode()
		if err != nil {
			return Outcome{Stage: enum.TxStageBuilt, Err: err}
		}
		return Outcome{Stage: enum.TxStageBuilt, UnsignedTx: unsigned}
	}

	if err := p.Sign(transaction); err != nil {
		return Outcome{Stage: enum.TxStageBuilt, Err: err}
	}

	return p.Submit(ctx, transaction)
}
