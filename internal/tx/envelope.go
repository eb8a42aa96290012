// Package tx builds, hashes and signs transaction envelopes for the
// ledger submission endpoint. The wire artifact is the base64 encoding
// of the canonical JSON envelope; the signed digest commits to the
// network passphrase so an envelope cannot be replayed across networks.
package tx

import (
	"crypto/sha256"
	"encoding/base64"

	"main/internal/adapter"
	"main/internal/adapter/enum"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

// Signer is the signing capability the envelope consumes. Satisfied by
// keystore.Keypair.
type Signer interface {
	AccountID() string
	Sign(digest []byte) ([]byte, error)
}

// ManageOffer creates, updates or deletes an offer on the exchange.
// Amount zero with a non-zero OfferID deletes the offer.
//
// Side selects the frame: a buy offer's amount counts buying units and
// its price is selling-per-buying; a sell offer's amount counts selling
// units and its price is buying-per-selling.
type ManageOffer struct {
	Side    enum.OrderSide
	Selling adapter.Asset
	Buying  adapter.Asset
	Amount  decimal.Decimal
	Price   decimal.Decimal
	OfferID int64
}

// ChangeTrust establishes or removes a trustline. A nil limit means the
// maximum; limit zero removes the trustline.
type ChangeTrust struct {
	Asset adapter.Asset
	Limit *decimal.Decimal
}

// Envelope is one transaction: source account, its next sequence
// number, fee and the operation list, plus any collected signatures.
type Envelope struct {
	Source     string
	Sequence   int64
	BaseFee    int64
	Network    string
	Offers     []ManageOffer
	Trusts     []ChangeTrust
	Signatures []Signature
}

type Signature struct {
	AccountID string
	Payload   []byte
}

type assetJSON struct {
	Type   string `json:"type,omitempty"`
	Code   string `json:"code,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

type offerJSON struct {
	Side    string    `json:"side"`
	Selling assetJSON `json:"selling"`
	Buying  assetJSON `json:"buying"`
	Amount  string    `json:"amount"`
	Price   string    `json:"price"`
	OfferID int64     `json:"offer_id,omitempty"`
}

type trustJSON struct {
	Asset assetJSON `json:"asset"`
	Limit string    `json:"limit,omitempty"`
}

type signatureJSON struct {
	AccountID string `json:"account_id"`
	Payload   string `json:"payload"`
}

type envelopeJSON struct {
	Source     string          `json:"source"`
	Sequence   int64           `json:"sequence"`
	BaseFee    int64           `json:"base_fee"`
	Network    string          `json:"network"`
	Offers     []offerJSON     `json:"manage_offers,omitempty"`
	Trusts     []trustJSON     `json:"change_trusts,omitempty"`
	Signatures []signatureJSON `json:"signatures,omitempty"`
}

func assetToJSON(a adapter.Asset) assetJSON {
	if a.Native {
		return assetJSON{Type: "native"}
	}
	return assetJSON{Code: a.Code, Issuer: a.Issuer}
}

func assetFromJSON(a assetJSON) adapter.Asset {
	if a.Type == "native" {
		return adapter.NativeAsset()
	}
	return adapter.IssuedAsset(a.Code, a.Issuer)
}

func (e *Envelope) body() envelopeJSON {
	body := envelopeJSON{
		Source:   e.Source,
		Sequence: e.Sequence,
		BaseFee:  e.BaseFee,
		Network:  e.Network,
	}

	for _, op := range e.Offers {
		body.Offers = append(body.Offers, offerJSON{
			Side:    op.Side.String(),
			Selling: assetToJSON(op.Selling),
			Buying:  assetToJSON(op.Buying),
			Amount:  op.Amount.String(),
			Price:   op.Price.String(),
			OfferID: op.OfferID,
		})
	}

	for _, op := range e.Trusts {
		entry := trustJSON{Asset: assetToJSON(op.Asset)}
		if op.Limit != nil {
			entry.Limit = op.Limit.String()
		}
		body.Trusts = append(body.Trusts, entry)
	}

	return body
}

// Hash returns the sha256 digest of the canonical unsigned body.
func (e *Envelope) Hash() ([]byte, error) {
	payload, err := sonic.ConfigStd.Marshal(e.body())
	if err != nil {
		return nil, errors.Wrap(err, "encode envelope body")
	}

	digest := sha256.Sum256(payload)
	return digest[:], nil
}

// Sign appends the signer's signature over the envelope hash.
func (e *Envelope) Sign(signer Signer) error {
	digest, err := e.Hash()
	if err != nil {
		return err
	}

	payload, err := signer.Sign(digest)
	if err != nil {
		return err
	}

	e.Signatures = append(e.Signatures, Signature{
		AccountID: signer.AccountID(),
		Payload:   payload,
	})
	return nil
}

// Encode serializes the envelope, signatures included, into the base64
// wire artifact accepted by the submission endpoint.
func (e *Envelope) Encode() (string, error) {
	body := e.body()
	for _, sig := range e.Signatures {
		body.Signatures = append(body.Signatures, signatureJSON{
			AccountID: sig.AccountID,
			Payload:   base64.StdEncoding.EncodeToString(sig.Payload),
		})
	}

	payload, err := sonic.ConfigStd.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "encode envelope")
	}

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode rebuilds an envelope from its wire artifact, allowing a caller
// that received an unsigned envelope to resume signing out-of-band.
func Decode(encoded string) (*Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "decode envelope base64")
	}

	var body envelopeJSON
	if err := sonic.ConfigStd.Unmarshal(raw, &body); err != nil {
		return nil, errors.Wrap(err, "decode envelope json")
	}

	envelope := &Envelope{
		Source:   body.Source,
		Sequence: body.Sequence,
		BaseFee:  body.BaseFee,
		Network:  body.Network,
	}

	for _, op := range body.Offers {
		amount, err := decimal.NewFromString(op.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "decode offer amount")
		}
		price, err := decimal.NewFromString(op.Price)
		if err != nil {
			return nil, errors.Wrap(err, "decode offer price")
		}
		side := enum.OrderSideSell
		if op.Side == "buy" {
			side = enum.OrderSideBuy
		}
		envelope.Offers = append(envelope.Offers, ManageOffer{
			Side:    side,
			Selling: assetFromJSON(op.Selling),
			Buying:  assetFromJSON(op.Buying),
			Amount:  amount,
			Price:   price,
			OfferID: op.OfferID,
		})
	}

	for _, op := range body.Trusts {
		entry := ChangeTrust{Asset: assetFromJSON(op.Asset)}
		if op.Limit != "" {
			limit, err := decimal.NewFromString(op.Limit)
			if err != nil {
				return nil, errors.Wrap(err, "decode trust limit")
			}
			entry.Limit = &limit
		}
		envelope.Trusts = append(envelope.Trusts, entry)
	}

	for _, sig := range body.Signatures {
		payload, err := base64.StdEncoding.DecodeString(sig.Payload)
		if err != nil {
			return nil, errors.Wrap(err, "decode signature")
		}
		envelope.Signatures = append(envelope.Signatures, Signature{
			AccountID: sig.AccountID,
			Payload:   payload,
		})
	}

	return envelope, nil
}
