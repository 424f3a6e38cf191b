package arith

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{10, 5, 5},
		{10, 3, 1},
		{10, 2, 2},
		{7, 0, 7},
		{0, 9, 9},
		{48, 180, 12},
		{1, 1, 1},
	}
	for _, c := range cases {
		got := GCD(big.NewInt(c.a), big.NewInt(c.b))
		assert.Equal(t, c.want, got.Int64(), "gcd(%d, %d)", c.a, c.b)
	}
}

func TestGCD_DoesNotModifyInputs(t *testing.T) {
	a, b := big.NewInt(84), big.NewInt(36)
	GCD(a, b)
	assert.Equal(t, int64(84), a.Int64())
	assert.Equal(t, int64(36), b.Int64())
}

func TestGCD_Recursion(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	bound := new(big.Int).Lsh(one, 300)
	for i := 0; i < 100; i++ {
		a := new(big.Int).Rand(r, bound)
		b := new(big.Int).Rand(r, bound)
		if b.Sign() == 0 {
			continue
		}
		// gcd(a, 0) = a
		assert.Equal(t, 0, GCD(a, new(big.Int)).Cmp(a))
		// gcd(a, b) = gcd(b, a mod b)
		aModB := new(big.Int).Mod(a, b)
		assert.Equal(t, 0, GCD(a, b).Cmp(GCD(b, aModB)))
		// agrees with the library implementation
		expected := new(big.Int).GCD(nil, nil, a, b)
		if a.Sign() == 0 {
			expected.Set(b)
		}
		assert.Equal(t, 0, GCD(a, b).Cmp(expected))
	}
}

func TestGCD_Wide(t *testing.T) {
	// Both operands exceed 64 bits and share the factor 2¹²⁸ + 51.
	f := new(big.Int).Lsh(one, 128)
	f.Add(f, big.NewInt(51))
	a := new(big.Int).Mul(f, big.NewInt(1_000_000_007))
	b := new(big.Int).Mul(f, big.NewInt(1_000_000_009))
	assert.Equal(t, 0, GCD(a, b).Cmp(f))
	assert.False(t, IsCoprime(a, b))
	assert.True(t, IsCoprime(big.NewInt(1_000_000_007), big.NewInt(1_000_000_009)))
}

func TestModInverse(t *testing.T) {
	cases := []struct {
		e, m, want int64
	}{
		{3, 11, 4},
		{5, 11, 9},
		{7, 11, 8},
		{1, 11, 1},
		{17, 3120, 2753},
		// e ≥ m is reduced first
		{14, 11, 4},
	}
	for _, c := range cases {
		got, err := ModInverse(big.NewInt(c.e), big.NewInt(c.m))
		require.NoError(t, err, "modInverse(%d, %d)", c.e, c.m)
		assert.Equal(t, c.want, got.Int64(), "modInverse(%d, %d)", c.e, c.m)
	}
}

func TestModInverse_ModulusOne(t *testing.T) {
	for _, e := range []int64{0, 1, 2, 12345} {
		d, err := ModInverse(big.NewInt(e), big.NewInt(1))
		require.NoError(t, err)
		assert.Equal(t, 0, d.Sign())
	}
}

func TestModInverse_NotInvertible(t *testing.T) {
	cases := [][2]int64{
		{4, 6},
		{0, 7},
		{22, 11},
		{6, 9},
	}
	for _, c := range cases {
		d, err := ModInverse(big.NewInt(c[0]), big.NewInt(c[1]))
		assert.ErrorIs(t, err, ErrNotInvertible, "modInverse(%d, %d)", c[0], c[1])
		assert.Nil(t, d)
	}
}

func TestModInverse_InvalidArguments(t *testing.T) {
	_, err := ModInverse(big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidModulus)
	_, err = ModInverse(big.NewInt(3), big.NewInt(-5))
	assert.ErrorIs(t, err, ErrInvalidModulus)
	_, err = ModInverse(nil, big.NewInt(5))
	assert.ErrorIs(t, err, ErrNilOperand)
}

func TestModInverse_Random(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	bound := new(big.Int).Lsh(one, 512)
	found := 0
	for found < 100 {
		m := new(big.Int).Rand(r, bound)
		if m.Cmp(one) <= 0 {
			continue
		}
		a := new(big.Int).Rand(r, m)
		if !IsCoprime(a, m) {
			continue
		}
		found++
		d, err := ModInverse(a, m)
		require.NoError(t, err)
		assert.True(t, IsReduced(d, m))
		check := new(big.Int).Mul(a, d)
		check.Mod(check, m)
		assert.Equal(t, 0, check.Cmp(one), "(a * modInverse(a, m)) mod m should be 1")
		assert.Equal(t, 0, d.Cmp(new(big.Int).ModInverse(a, m)))
	}
}

func TestModInverse_DoesNotModifyInputs(t *testing.T) {
	e, m := big.NewInt(7), big.NewInt(11)
	_, err := ModInverse(e, m)
	require.NoError(t, err)
	assert.Equal(t, int64(7), e.Int64())
	assert.Equal(t, int64(11), m.Int64())
}

var resultInt *big.Int

func BenchmarkModInverse(b *testing.B) {
	b.StopTimer()
	r := mrand.New(mrand.NewSource(0))
	m := new(big.Int).Rand(r, new(big.Int).Lsh(one, 2048))
	m.SetBit(m, 0, 1)
	e := big.NewInt(65537)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		resultInt, _ = ModInverse(e, m)
	}
}
