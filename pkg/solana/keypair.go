package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var ErrInvalidKeypair = errors.New("invalid keypair")

// LoadKeypairFile reads a keypair in the JSON byte array format written by
// solana-keygen.
func LoadKeypairFile(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keypair file")
	}
	return ParseKeypair(raw)
}

// ParseKeypair accepts the JSON byte array format or a base58 encoded
// private key.
func ParseKeypair(raw []byte) (ed25519.PrivateKey, error) {
	var key []byte

	var values []int
	if err := json.Unmarshal(raw, &values); err == nil {
		key = make([]byte, len(values))
		for i, v := range values {
			if v < 0 || v > 255 {
				return nil, errors.Wrapf(ErrInvalidKeypair, "byte %d out of range", i)
			}
			key[i] = byte(v)
		}
	} else {
		decoded, err := base58.Decode(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, errors.Wrap(ErrInvalidKeypair, "neither a byte array nor base58")
		}
		key = decoded
	}

	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(ErrInvalidKeypair, "expected %d bytes, got %d", ed25519.PrivateKeySize, len(key))
	}

	private := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !private.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(key[ed25519.SeedSize:])) {
		return nil, errors.Wrap(ErrInvalidKeypair, "public key does not match the seed")
	}
	return private, nil
}
