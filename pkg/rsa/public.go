package rsa

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/textbook-rsa/internal/hash"
	"github.com/taurusgroup/textbook-rsa/pkg/math/arith"
)

// PublicKey is the shareable part of a key: the modulus n and the public exponent e.
type PublicKey struct {
	n *arith.Modulus
	e *saferith.Nat
}

// Encrypt returns the encryption of m under the public key pk.
//
// ct = mᵉ (mod n)
//
// ErrInputExceedsModulus is returned when m ≥ n.
func (pk *PublicKey) Encrypt(m *saferith.Nat) (*saferith.Nat, error) {
	x, err := checkInput(m, pk.n.Modulus)
	if err != nil {
		return nil, err
	}
	return pk.n.Exp(x, pk.e), nil
}

// N returns a copy of the modulus n.
func (pk *PublicKey) N() *big.Int {
	return pk.n.Big()
}

// E returns a copy of the public exponent e.
func (pk *PublicKey) E() *big.Int {
	return pk.e.Big()
}

// Modulus returns n as a saferith.Modulus.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) Modulus() *saferith.Modulus {
	return pk.n.Modulus
}

// Equal returns true if pk = other.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.n.Nat().Eq(other.n.Nat()) == 1 && pk.e.Eq(other.e) == 1
}

// String formats the key as the pair (n, e).
func (pk *PublicKey) String() string {
	return fmt.Sprintf("(%v, %v)", pk.N(), pk.E())
}

// Fingerprint returns a digest identifying this key.
func (pk *PublicKey) Fingerprint() []byte {
	h := hash.New()
	if err := h.WriteAny(pk); err != nil {
		panic(fmt.Sprintf("rsa: fingerprint: %v", err))
	}
	return h.Sum()
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
// n and e are each written big-endian, prefixed by their length in bytes.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, x := range []*big.Int{pk.N(), pk.E()} {
		b := x.Bytes()
		length := make([]byte, 4)
		binary.BigEndian.PutUint32(length, uint32(len(b)))
		n, err := w.Write(length)
		total += int64(n)
		if err != nil {
			return total, err
		}
		n, err = w.Write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*PublicKey) Domain() string {
	return "RSA Public Key"
}
