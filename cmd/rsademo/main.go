package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/taurusgroup/textbook-rsa/pkg/math/sample"
	"github.com/taurusgroup/textbook-rsa/pkg/pool"
	"github.com/taurusgroup/textbook-rsa/pkg/rsa"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := LoadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log = log.Level(cfg.LogLevel)

	if err = run(cfg, log, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("demo failed")
	}
}

func run(cfg *Config, log zerolog.Logger, out io.Writer) error {
	var reader io.Reader = rand.Reader
	if cfg.Seed != nil {
		log.Warn().Msg("using a seeded random stream, the key is reproducible")
		reader = sample.Seeded(cfg.Seed)
	}

	sk, err := rsa.NewKey(pool.NewLockedReader(reader), cfg.P, cfg.Q)
	if err != nil {
		return err
	}
	log.Debug().Stringer("n", sk.N()).Stringer("e", sk.E()).Msg("key constructed")
	fmt.Fprintf(out, "Public Key: %v\n", sk.PublicKey)
	fmt.Fprintf(out, "Fingerprint: %s\n", hex.EncodeToString(sk.Fingerprint()[:8]))

	pl := pool.NewPool(cfg.Workers)
	defer pl.TearDown()

	var (
		errGroup  errgroup.Group
		numberOut string
		textOut   string
	)
	errGroup.Go(func() error {
		encrypted, err := rsa.Encrypt(sk.PublicKey, cfg.Message)
		if err != nil {
			return fmt.Errorf("message: %w", err)
		}
		original, err := rsa.Decrypt(sk, encrypted)
		if err != nil {
			return fmt.Errorf("message: %w", err)
		}
		if original.Cmp(cfg.Message) != 0 {
			return fmt.Errorf("message: decrypted %v, expected %v", original, cfg.Message)
		}
		numberOut = fmt.Sprintf("Encrypted: %v\nOriginal: %v\n", encrypted, original)
		return nil
	})
	errGroup.Go(func() error {
		if cfg.Text == "" {
			return nil
		}
		encrypted, err := sk.EncryptText(pl, cfg.Text)
		if err != nil {
			return fmt.Errorf("text: %w", err)
		}
		original, err := sk.DecryptText(pl, encrypted)
		if err != nil {
			return fmt.Errorf("text: %w", err)
		}
		if original != cfg.Text {
			return fmt.Errorf("text: decrypted %q, expected %q", original, cfg.Text)
		}
		parts := make([]string, len(encrypted))
		for i, ct := range encrypted {
			parts[i] = ct.Big().String()
		}
		textOut = fmt.Sprintf("Encrypted text: %s\nOriginal text: %s\n", strings.Join(parts, " "), original)
		return nil
	})
	if err = errGroup.Wait(); err != nil {
		return err
	}
	log.Info().Int("workers", pl.Workers()).Int("characters", len([]rune(cfg.Text))).Msg("round trips succeeded")

	fmt.Fprint(out, numberOut)
	fmt.Fprint(out, textOut)
	return nil
}
