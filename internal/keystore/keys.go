package keystore

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

const (
	accountIDPrefix = "G"
	secretPrefix    = "S"
)

var keyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Keypair derives signing capability from a 32-byte ed25519 seed.
// The account id is the public half; the secret never leaves this
// package except through an explicit export.
type Keypair struct {
	accountID string
	priv      ed25519.PrivateKey
}

// NewKeypair generates a random keypair.
func NewKeypair() (*Keypair, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, errors.Wrap(err, "generate seed")
	}

	return keypairFromSeed(seed), nil
}

// KeypairFromSecret rebuilds a keypair from its exported secret.
func KeypairFromSecret(secret string) (*Keypair, error) {
	if !strings.HasPrefix(secret, secretPrefix) {
		return nil, errors.New("malformed secret key: missing " + secretPrefix + " prefix")
	}

	seed, err := keyEncoding.DecodeString(secret[len(secretPrefix):])
	if err != nil {
		return nil, errors.Wrap(err, "decode secret")
	}

	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("malformed secret key: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}

	return keypairFromSeed(seed), nil
}

func keypairFromSeed(seed []byte) *Keypair {
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	return &Keypair{
		accountID: accountIDPrefix + keyEncoding.EncodeToString(pub),
		priv:      priv,
	}
}

func (kp *Keypair) AccountID() string {
	return kp.accountID
}

// Secret returns the exportable secret encoding of the seed.
func (kp *Keypair) Secret() string {
	return secretPrefix + keyEncoding.EncodeToString(kp.priv.Seed())
}

// Sign signs the given digest with the account's private key.
func (kp *Keypair) Sign(digest []byte) ([]byte, error) {
	if kp == nil || len(kp.priv) == 0 {
		return nil, exception.ErrAccountNotFound
	}

	return ed25519.Sign(kp.priv, digest), nil
}

// Verify reports whether sig is a valid signature of digest by this
// account.
func (kp *Keypair) Verify(digest, sig []byte) bool {
	pub := kp.priv.Public().(ed25519.PublicKey)
	return ed25519.Verify(pub, digest, sig)
}
