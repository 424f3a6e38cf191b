package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// MaxReadIterations is the number of times a failing random source is read again,
	// and the number of rejected draws tolerated while sampling a single value in a range.
	MaxReadIterations = 255

	// MaxCoprimeIterations bounds the number of candidates drawn when searching for
	// an integer coprime to a totient.
	//
	// The density of units mod φ is at least 1/(2⋅ln ln φ) for any totient we can
	// represent, so reaching this limit on a valid totient is not something we expect
	// to ever observe.
	MaxCoprimeIterations = 1 << 12

	// DigestLengthBytes is the size of a public key fingerprint.
	DigestLengthBytes = SecBytes * 2 // = 64

	// MaxCharCode is the largest character code accepted by the text variants.
	MaxCharCode = 0xFF

	// DemoP and DemoQ are two well known primes, used by the demo when none are configured.
	DemoP = 1_000_000_007
	DemoQ = 1_000_000_009
)
