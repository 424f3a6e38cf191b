package rsa

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/textbook-rsa/pkg/math/arith"
)

// SecretKey is an RSA key pair, built from the two factors of its modulus.
//
// The embedded PublicKey holds (n, e), and is the only part that should be shared.
// A SecretKey is never modified after construction, and may be used concurrently.
type SecretKey struct {
	*PublicKey
	// crt is n, along with its factorization p⋅q
	crt *arith.Modulus
	// phi = ϕ = (p-1)(q-1)
	phi *big.Int
	// d = e⁻¹ (mod ϕ)
	d *saferith.Nat
}

// Decrypt returns the decryption of c.
//
// m = cᵈ (mod n)
//
// The exponentiation is split over the factors of n.
// ErrInputExceedsModulus is returned when c ≥ n.
func (sk *SecretKey) Decrypt(c *saferith.Nat) (*saferith.Nat, error) {
	x, err := checkInput(c, sk.crt.Modulus)
	if err != nil {
		return nil, err
	}
	return sk.crt.Exp(x, sk.d), nil
}

// D returns a copy of the private exponent d.
func (sk *SecretKey) D() *big.Int {
	return sk.d.Big()
}

// Phi returns a copy of ϕ = (p-1)(q-1).
func (sk *SecretKey) Phi() *big.Int {
	return new(big.Int).Set(sk.phi)
}
