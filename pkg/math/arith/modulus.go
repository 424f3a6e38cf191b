package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus and enables faster modular exponentiation when
// the factorization is known.
// When n = p⋅q, xᵉ (mod n) can be computed with only two exponentiations
// with p and q respectively.
type Modulus struct {
	// represents modulus n
	*saferith.Modulus
	// n = p⋅q
	p, q *saferith.Modulus
	// pInv = p⁻¹ (mod q)
	pNat, pInv *saferith.Nat
	// n is even, so exponentiation cannot use Montgomery form
	even bool
}

// ModulusFromN creates a simple wrapper around a given modulus n.
// The modulus is not copied.
func ModulusFromN(n *saferith.Modulus) *Modulus {
	return &Modulus{
		Modulus: n,
		even:    n.Big().Bit(0) == 0,
	}
}

// ModulusFromFactors creates the necessary cached values to accelerate
// exponentiation mod n = p⋅q.
//
// The factors are not checked for primality. If p and q are not coprime,
// if either of them is smaller than 2, or if either of them is even,
// no acceleration is possible and the returned Modulus behaves like ModulusFromN(p⋅q).
func ModulusFromFactors(p, q *big.Int) *Modulus {
	nBig := new(big.Int).Mul(p, q)
	nMod := saferith.ModulusFromNat(NatFromBig(nBig))
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 || p.Bit(0) == 0 || q.Bit(0) == 0 || !IsCoprime(p, q) {
		return ModulusFromN(nMod)
	}
	pNat := NatFromBig(p)
	pMod := saferith.ModulusFromNat(pNat)
	qMod := saferith.ModulusFromNat(NatFromBig(q))
	// p and q are coprime, so p⁻¹ (mod q) exists.
	pInvQBig, _ := ModInverse(p, q)
	pInvQ := NatFromBig(pInvQBig)
	return &Modulus{
		Modulus: nMod,
		p:       pMod,
		q:       qMod,
		pNat:    pNat,
		pInv:    pInvQ,
	}
}

// Exp is equivalent to (saferith.Nat).Exp(x, e, n.Modulus).
// It returns xᵉ (mod n), for x ∈ [0, n).
func (n *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	if n.hasFactorization() {
		var xModP, xModQ, xp, xq saferith.Nat
		xModP.Mod(x, n.p)
		xModQ.Mod(x, n.q)
		xp.Exp(&xModP, e, n.p) // x₁ = xᵉ (mod p)
		xq.Exp(&xModQ, e, n.q) // x₂ = xᵉ (mod q)
		// r = x₁ + p ⋅ [p⁻¹ (mod q)] ⋅ [x₂ - x₁] (mod n)
		r := xq.ModSub(&xq, &xp, n.Modulus)
		r.ModMul(r, n.pInv, n.Modulus)
		r.ModMul(r, n.pNat, n.Modulus)
		r.ModAdd(r, &xp, n.Modulus)
		return r
	}
	if n.even {
		// saferith only exponentiates modulo odd numbers
		r := new(big.Int).Exp(x.Big(), e.Big(), n.Big())
		return new(saferith.Nat).SetBig(r, n.BitLen())
	}
	return new(saferith.Nat).Exp(x, e, n.Modulus)
}

// HasFactorization returns true if exponentiation mod n goes through the CRT.
func (n *Modulus) HasFactorization() bool {
	return n.hasFactorization()
}

func (n Modulus) hasFactorization() bool {
	return n.p != nil && n.q != nil && n.pNat != nil && n.pInv != nil
}

// NatFromBig converts a non-negative x into a saferith.Nat sized to its true length.
func NatFromBig(x *big.Int) *saferith.Nat {
	return new(saferith.Nat).SetBig(x, x.BitLen())
}
