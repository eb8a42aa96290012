package tx

import (
	"testing"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/internal/keystore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleEnvelope() *Envelope {
	return &Envelope{
		Source:   "GSOURCE",
		Sequence: 42,
		BaseFee:  100,
		Network:  "Test SDF Network ; September 2015",
		Offers: []ManageOffer{{
			Side:    enum.OrderSideBuy,
			Selling: adapter.NativeAsset(),
			Buying:  adapter.IssuedAsset("USDC", "GISSUER"),
			Amount:  d("100"),
			Price:   d("0.126"),
		}},
	}
}

func TestEnvelopeHashIsStable(t *testing.T) {
	envelope := sampleEnvelope()

	first, err := envelope.Hash()
	require.NoError(t, err)
	second, err := envelope.Hash()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
}

func TestEnvelopeHashCommitsToNetwork(t *testing.T) {
	testnet := sampleEnvelope()
	mainnet := sampleEnvelope()
	mainnet.Network = "Public Global Network ; September 2015"

	first, err := testnet.Hash()
	require.NoError(t, err)
	second, err := mainnet.Hash()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestEnvelopeHashChangesWithContent(t *testing.T) {
	base := sampleEnvelope()
	baseHash, err := base.Hash()
	require.NoError(t, err)

	bumped := sampleEnvelope()
	bumped.Sequence++
	bumpedHash, err := bumped.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, baseHash, bumpedHash)

	repriced := sampleEnvelope()
	repriced.Offers[0].Price = d("0.127")
	repricedHash, err := repriced.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, baseHash, repricedHash)
}

func TestEnvelopeHashIgnoresSignatures(t *testing.T) {
	envelope := sampleEnvelope()
	unsigned, err := envelope.Hash()
	require.NoError(t, err)

	kp, err := keystore.NewKeypair()
	require.NoError(t, err)
	require.NoError(t, envelope.Sign(kp))

	signed, err := envelope.Hash()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed)
}

func TestEnvelopeSign(t *testing.T) {
	envelope := sampleEnvelope()

	kp, err := keystore.NewKeypair()
	require.NoError(t, err)
	require.NoError(t, envelope.Sign(kp))

	require.Len(t, envelope.Signatures, 1)
	assert.Equal(t, kp.AccountID(), envelope.Signatures[0].AccountID)

	digest, err := envelope.Hash()
	require.NoError(t, err)
	assert.True(t, kp.Verify(digest, envelope.Signatures[0].Payload))
}

func TestEnvelopeEncodeDecodeRoundTrip(t *testing.T) {
	limit := d("5000")
	envelope := sampleEnvelope()
	envelope.Offers = append(envelope.Offers, ManageOffer{
		Side:    enum.OrderSideSell,
		Selling: adapter.IssuedAsset("USDC", "GISSUER"),
		Buying:  adapter.NativeAsset(),
		Amount:  decimal.Zero,
		Price:   d("1.5"),
		OfferID: 77,
	})
	envelope.Trusts = []ChangeTrust{
		{Asset: adapter.IssuedAsset("USDC", "GISSUER"), Limit: &limit},
		{Asset: adapter.IssuedAsset("EURC", "GISSUER")},
	}

	kp, err := keystore.NewKeypair()
	require.NoError(t, err)
	require.NoError(t, envelope.Sign(kp))

	encoded, err := envelope.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, envelope.Source, decoded.Source)
	assert.Equal(t, envelope.Sequence, decoded.Sequence)
	assert.Equal(t, envelope.BaseFee, decoded.BaseFee)
	assert.Equal(t, envelope.Network, decoded.Network)

	require.Len(t, decoded.Offers, 2)
	assert.Equal(t, enum.OrderSideBuy, decoded.Offers[0].Side)
	assert.True(t, decoded.Offers[0].Amount.Equal(d("100")))
	assert.Equal(t, enum.OrderSideSell, decoded.Offers[1].Side)
	assert.True(t, decoded.Offers[1].Amount.IsZero())
	assert.Equal(t, int64(77), decoded.Offers[1].OfferID)
	assert.True(t, decoded.Offers[1].Selling.Equal(adapter.IssuedAsset("USDC", "GISSUER")))

	require.Len(t, decoded.Trusts, 2)
	require.NotNil(t, decoded.Trusts[0].Limit)
	assert.True(t, decoded.Trusts[0].Limit.Equal(limit))
	assert.Nil(t, decoded.Trusts[1].Limit)

	require.Len(t, decoded.Signatures, 1)
	assert.Equal(t, kp.AccountID(), decoded.Signatures[0].AccountID)

	// decoded unsigned body hashes identically, so the signature still verifies
	digest, err := decoded.Hash()
	require.NoError(t, err)
	assert.True(t, kp.Verify(digest, decoded.Signatures[0].Payload))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not base64 !!!")
	assert.Error(t, err)

	_, err = Decode("bm90IGpzb24=")
	assert.Error(t, err)
}
