package sample

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/textbook-rsa/pkg/math/arith"
)

func TestModN(t *testing.T) {
	n := big.NewInt(3 * 11 * 65519)
	for i := 0; i < 100; i++ {
		x, err := ModN(rand.Reader, n)
		require.NoError(t, err)
		assert.True(t, arith.IsReduced(x, n), "ModN generated a number >= %v: %v", n, x)
	}

	x, err := ModN(rand.Reader, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, 0, x.Sign())

	_, err = ModN(rand.Reader, big.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidBound)
}

func TestModN_Uniform(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	n := big.NewInt(5)
	counts := make([]int, 5)
	for i := 0; i < 5000; i++ {
		x, err := ModN(r, n)
		require.NoError(t, err)
		counts[x.Int64()]++
	}
	for v, c := range counts {
		assert.InDelta(t, 1000, c, 150, "value %d drawn %d times", v, c)
	}
}

func TestCoprime(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(1_000_000_007), big.NewInt(1_000_000_009))
	r := mrand.New(mrand.NewSource(0))
	for i := 0; i < 100; i++ {
		c, err := Coprime(r, n)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Cmp(big.NewInt(1)), "coprime should be > 1")
		assert.Equal(t, -1, c.Cmp(n), "coprime should be < n")
		assert.Equal(t, int64(1), arith.GCD(n, c).Int64())
	}
}

func TestCoprime_SmallBounds(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	// The only integer in (1, 3) is 2.
	c, err := Coprime(r, big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.Int64())

	// For 6, only 5 qualifies.
	c, err = Coprime(r, big.NewInt(6))
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.Int64())

	// Nothing lies strictly between 1 and 2.
	_, err = Coprime(r, big.NewInt(2))
	assert.ErrorIs(t, err, ErrMaxIterations)

	for _, n := range []*big.Int{nil, big.NewInt(1), big.NewInt(0), big.NewInt(-7)} {
		_, err = Coprime(r, n)
		assert.ErrorIs(t, err, ErrInvalidBound)
	}
}

type failingReader struct{}

var errBroken = errors.New("broken reader")

func (failingReader) Read([]byte) (int, error) { return 0, errBroken }

func TestCoprime_BrokenReader(t *testing.T) {
	_, err := Coprime(failingReader{}, big.NewInt(1000))
	assert.ErrorIs(t, err, ErrRandomSource)
	assert.ErrorIs(t, err, errBroken)

	// A reader that runs dry is reported the same way.
	_, err = Coprime(bytes.NewReader(nil), big.NewInt(1000))
	assert.ErrorIs(t, err, ErrRandomSource)
}

type constantReader byte

func (r constantReader) Read(buf []byte) (int, error) {
	for i := range buf {
		buf[i] = byte(r)
	}
	return len(buf), nil
}

func TestModN_AlwaysRejected(t *testing.T) {
	// Every draw is 7, which is never below 5.
	_, err := ModN(constantReader(0xff), big.NewInt(5))
	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, ErrRandomSource)

	_, err = Coprime(constantReader(0xff), big.NewInt(5))
	assert.ErrorIs(t, err, ErrRejected)
}

func TestSeeded(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 200)
	a, err := Coprime(Seeded([]byte("seed")), n)
	require.NoError(t, err)
	b, err := Coprime(Seeded([]byte("seed")), n)
	require.NoError(t, err)
	c, err := Coprime(Seeded([]byte("other seed")), n)
	require.NoError(t, err)

	assert.Equal(t, 0, a.Cmp(b), "same seed should give the same value")
	assert.NotEqual(t, 0, a.Cmp(c), "different seeds should give different values")

	buf := make([]byte, 1<<12)
	_, err = io.ReadFull(Seeded(nil), buf)
	require.NoError(t, err)
}

// This exists to save the results of functions we want to benchmark, to avoid
// having them optimized away.
var resultInt *big.Int

func BenchmarkCoprime(b *testing.B) {
	b.StopTimer()
	n, _ := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 2048))
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		resultInt, _ = Coprime(rand.Reader, n)
	}
}
