package arith

import (
	"errors"
	"math/big"
)

var (
	ErrNotInvertible  = errors.New("arith: value is not invertible modulo m")
	ErrInvalidModulus = errors.New("arith: modulus must be at least 1")
	ErrNilOperand     = errors.New("arith: operand is nil")
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// GCD returns the greatest common divisor of a and b, using Euclid's algorithm:
//
//	gcd(a, 0) = a
//	gcd(a, b) = gcd(b, a mod b)
//
// Both a and b must be non-negative, and not both zero.
// Neither a nor b is modified.
func GCD(a, b *big.Int) *big.Int {
	return gcd(new(big.Int).Set(a), new(big.Int).Set(b))
}

// gcd consumes a and b, and may reuse them for the result.
func gcd(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return a
	}
	return gcd(b, a.Mod(a, b))
}

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(one) == 0
}

// ModInverse returns d ∈ [0, m) such that e⋅d ≡ 1 (mod m).
//
// The inverse is computed with the iterative extended Euclidean algorithm,
// keeping track of the Bézout coefficient of e.
// Since any residue mod 1 is 0, ModInverse(e, 1) = 0 for every e.
//
// ErrNotInvertible is returned when gcd(e, m) ≠ 1.
func ModInverse(e, m *big.Int) (*big.Int, error) {
	if e == nil || m == nil {
		return nil, ErrNilOperand
	}
	if m.Cmp(one) < 0 {
		return nil, ErrInvalidModulus
	}
	if m.Cmp(one) == 0 {
		return new(big.Int), nil
	}

	// a = e (mod m), so that the first quotient is meaningful even for e ≥ m or e < 0.
	a := new(big.Int).Mod(e, m)
	b := new(big.Int).Set(m)
	// x0, x1 are the coefficients of e in the linear combinations equal to b and a.
	x0 := new(big.Int)
	x1 := new(big.Int).SetInt64(1)

	q := new(big.Int)
	r := new(big.Int)
	tmp := new(big.Int)
	for a.Cmp(one) > 0 {
		if b.Sign() == 0 {
			// a = gcd(e, m) > 1
			return nil, ErrNotInvertible
		}
		q.QuoRem(a, b, r)
		// (a, b) ← (b, a mod b)
		a, b, r = b, r, a
		// (x0, x1) ← (x1 - q⋅x0, x0)
		tmp.Mul(q, x0)
		tmp.Sub(x1, tmp)
		x0, x1, tmp = tmp, x0, x1
	}
	if a.Sign() == 0 {
		// e ≡ 0 (mod m) with m > 1
		return nil, ErrNotInvertible
	}

	if x1.Sign() < 0 {
		x1.Add(x1, m)
	}
	x1.Mod(x1, m)

	// The recursion above stops as soon as a = 1, so this only fails on a bug.
	check := new(big.Int).Mul(e, x1)
	if check.Mod(check, m).Cmp(one) != 0 {
		return nil, ErrNotInvertible
	}
	return x1, nil
}

// IsReduced returns true if 0 ≤ x < m.
func IsReduced(x, m *big.Int) bool {
	return x.Cmp(zero) >= 0 && x.Cmp(m) < 0
}
