package sample

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/textbook-rsa/internal/hash"
	"github.com/taurusgroup/textbook-rsa/internal/params"
	"github.com/taurusgroup/textbook-rsa/pkg/math/arith"
)

var (
	ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", params.MaxCoprimeIterations)
	ErrRandomSource  = fmt.Errorf("sample: failed to read from random source after %d attempts", params.MaxReadIterations)
	ErrInvalidBound  = errors.New("sample: bound is out of range")
	ErrRejected      = fmt.Errorf("sample: every draw was out of range after %d attempts", params.MaxReadIterations)
)

var one = big.NewInt(1)

func readBits(rand io.Reader, buf []byte) error {
	var err error
	for i := 0; i < params.MaxReadIterations; i++ {
		if _, err = io.ReadFull(rand, buf); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrRandomSource, err)
}

// ModN samples a uniform element of ℤₙ = [0, n), for n ≥ 1.
//
// Candidates are drawn with the bit length of n-1 and rejected when they
// don't land in the range, so that at least half of the draws succeed.
func ModN(rand io.Reader, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, ErrInvalidBound
	}
	nMinus1 := new(big.Int).Sub(n, one)
	if nMinus1.Sign() == 0 {
		return new(big.Int), nil
	}
	bitLen := nMinus1.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	// Number of bits to keep in the most significant byte.
	topBits := uint(bitLen % 8)
	if topBits == 0 {
		topBits = 8
	}

	out := new(big.Int)
	for i := 0; i < params.MaxReadIterations; i++ {
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= uint8(int(1<<topBits) - 1)
		out.SetBytes(buf)
		if out.Cmp(n) < 0 {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: ModN: %w", ErrRandomSource, ErrRejected)
}

// Coprime returns a uniformly sampled r such that 1 < r < n and gcd(n, r) = 1.
//
// A candidate is drawn from [1, n-1], and discarded if it is 1 or if it shares a
// factor with n. After params.MaxCoprimeIterations discarded candidates,
// ErrMaxIterations is returned. This is also how n = 2 fails, since no such r exists.
func Coprime(rand io.Reader, n *big.Int) (*big.Int, error) {
	if n == nil || n.Cmp(one) <= 0 {
		return nil, ErrInvalidBound
	}
	for i := 0; i < params.MaxCoprimeIterations; i++ {
		r, err := ModN(rand, n)
		if err != nil {
			return nil, err
		}
		// 0 is never a candidate, and 1 is never accepted.
		if r.Cmp(one) <= 0 {
			continue
		}
		if arith.IsCoprime(n, r) {
			return r, nil
		}
	}
	return nil, ErrMaxIterations
}

// Seeded returns a deterministic stream of bytes derived from seed.
//
// The stream is the extendable output of the hash function over seed,
// so it is suitable for reproducible key construction in tests and demos,
// and nothing else.
func Seeded(seed []byte) io.Reader {
	h := hash.New()
	_ = h.WriteAny(hash.BytesWithDomain{
		TheDomain: "Sample Seed",
		Bytes:     seed,
	})
	return h.Digest()
}
