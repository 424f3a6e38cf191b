package rsa

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/textbook-rsa/pkg/math/arith"
	"github.com/taurusgroup/textbook-rsa/pkg/math/sample"
)

var (
	ErrConstruction = errors.New("rsa: key construction failed")
	ErrInvalidInput = errors.New("rsa: invalid input")

	ErrInputExceedsModulus = fmt.Errorf("%w: input exceeds modulus", ErrInvalidInput)
	ErrNilInput            = fmt.Errorf("%w: nil value", ErrInvalidInput)
	ErrNegativeInput       = fmt.Errorf("%w: negative value", ErrInvalidInput)
	ErrNotSingleByte       = fmt.Errorf("%w: not a single byte character", ErrInvalidInput)
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// GenerateKey is NewKey using crypto/rand as the source of randomness.
func GenerateKey(p, q *big.Int) (*SecretKey, error) {
	return NewKey(rand.Reader, p, q)
}

// NewKey constructs a key from two primes p and q.
//
// The public exponent e is sampled uniformly among the integers coprime to
// ϕ = (p-1)(q-1), and the private exponent is d = e⁻¹ (mod ϕ).
// The reader is only consumed while sampling e. A reader shared between goroutines
// must be safe for concurrent use, which pool.NewLockedReader provides.
//
// p and q are assumed to be distinct primes. This is not verified:
// other values produce a key which does not decrypt correctly.
// Only values for which no key can exist at all result in ErrConstruction.
func NewKey(rand io.Reader, p, q *big.Int) (*SecretKey, error) {
	phi, err := totient(p, q)
	if err != nil {
		return nil, err
	}
	e, err := sample.Coprime(rand, phi)
	if err != nil {
		return nil, fmt.Errorf("%w: public exponent: %w", ErrConstruction, err)
	}
	return newSecretKey(p, q, phi, e)
}

// NewKeyWithExponent constructs a key from two primes p and q, and a chosen
// public exponent e, which must satisfy 1 < e < ϕ and gcd(e, ϕ) = 1.
func NewKeyWithExponent(p, q, e *big.Int) (*SecretKey, error) {
	phi, err := totient(p, q)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: public exponent is nil", ErrConstruction)
	}
	if e.Cmp(one) <= 0 || e.Cmp(phi) >= 0 {
		return nil, fmt.Errorf("%w: public exponent %v is not in (1, ϕ)", ErrConstruction, e)
	}
	return newSecretKey(p, q, phi, e)
}

// totient returns ϕ = (p-1)(q-1), after checking that some 1 < e < ϕ may exist.
func totient(p, q *big.Int) (*big.Int, error) {
	if p == nil || q == nil {
		return nil, fmt.Errorf("%w: prime is nil", ErrConstruction)
	}
	if p.Cmp(two) < 0 || q.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: factors must be at least 2", ErrConstruction)
	}
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	phi := pMinus1.Mul(pMinus1, qMinus1)
	if phi.Cmp(two) <= 0 {
		return nil, fmt.Errorf("%w: totient %v is too small", ErrConstruction, phi)
	}
	return phi, nil
}

func newSecretKey(p, q, phi, e *big.Int) (*SecretKey, error) {
	d, err := arith.ModInverse(e, phi)
	if err != nil {
		return nil, fmt.Errorf("%w: private exponent: %w", ErrConstruction, err)
	}

	crt := arith.ModulusFromFactors(p, q)
	return &SecretKey{
		PublicKey: &PublicKey{
			n: arith.ModulusFromN(crt.Modulus),
			e: arith.NatFromBig(e),
		},
		crt: crt,
		phi: new(big.Int).Set(phi),
		d:   arith.NatFromBig(d),
	}, nil
}

// Encrypt returns mᵉ (mod n), for 0 ≤ m < n.
func Encrypt(pk *PublicKey, m *big.Int) (*big.Int, error) {
	x, err := natFromInput(m)
	if err != nil {
		return nil, err
	}
	c, err := pk.Encrypt(x)
	if err != nil {
		return nil, err
	}
	return c.Big(), nil
}

// Decrypt returns cᵈ (mod n), for 0 ≤ c < n.
func Decrypt(sk *SecretKey, c *big.Int) (*big.Int, error) {
	x, err := natFromInput(c)
	if err != nil {
		return nil, err
	}
	m, err := sk.Decrypt(x)
	if err != nil {
		return nil, err
	}
	return m.Big(), nil
}

func natFromInput(x *big.Int) (*saferith.Nat, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	if x.Sign() < 0 {
		return nil, ErrNegativeInput
	}
	return arith.NatFromBig(x), nil
}

// checkInput returns a copy of x, after checking that 0 ≤ x < n.
func checkInput(x *saferith.Nat, n *saferith.Modulus) (*saferith.Nat, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	if _, _, lt := x.CmpMod(n); lt != 1 {
		return nil, ErrInputExceedsModulus
	}
	// x is already reduced, this only adjusts its size to that of n.
	return new(saferith.Nat).Mod(x, n), nil
}
