package rsa

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/textbook-rsa/internal/params"
	"github.com/taurusgroup/textbook-rsa/pkg/pool"
)

var maxCharCode = big.NewInt(params.MaxCharCode)

// EncryptText encrypts every character of text on its own, and returns the
// ciphertexts in the same order.
//
// Only characters with a code up to 0xFF are supported.
// Characters are independent, so they are spread over the workers of pl.
func (pk *PublicKey) EncryptText(pl *pool.Pool, text string) ([]*saferith.Nat, error) {
	codes := []rune(text)
	return pool.Parallelize(pl, len(codes), func(i int) (*saferith.Nat, error) {
		code := codes[i]
		if code > params.MaxCharCode {
			return nil, fmt.Errorf("%w: %q at position %d", ErrNotSingleByte, code, i)
		}
		ct, err := pk.Encrypt(new(saferith.Nat).SetUint64(uint64(code)))
		if err != nil {
			return nil, fmt.Errorf("rsa: character at position %d: %w", i, err)
		}
		return ct, nil
	})
}

// DecryptText decrypts every ciphertext to a single character, and reassembles
// them in the same order.
func (sk *SecretKey) DecryptText(pl *pool.Pool, cts []*saferith.Nat) (string, error) {
	codes, err := pool.Parallelize(pl, len(cts), func(i int) (rune, error) {
		m, err := sk.Decrypt(cts[i])
		if err != nil {
			return 0, fmt.Errorf("rsa: ciphertext at position %d: %w", i, err)
		}
		code := m.Big()
		if code.Cmp(maxCharCode) > 0 {
			return 0, fmt.Errorf("%w: code %v at position %d", ErrNotSingleByte, code, i)
		}
		return rune(code.Int64()), nil
	})
	if err != nil {
		return "", err
	}
	return string(codes), nil
}
