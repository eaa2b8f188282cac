package certmaker

import (
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"k8s.io/klog/v2"
)

type Option func(*Options) error

func WithLogger(log klog.Logger) Option {
	return func(options *Options) error {
		options.log = log
		return nil
	}
}

func WithMetrics(m *Metrics) Option {
	return func(options *Options) error {
		if m == nil {
			return fmt.Errorf("metrics is nil")
		}
		options.metrics = m
		return nil
	}
}

func WithClock(now func() time.Time) Option {
	return func(options *Options) error {
		if now == nil {
			return fmt.Errorf("clock is nil")
		}
		options.now = now
		return nil
	}
}

// WithRandom replaces crypto/rand.Reader as the entropy source for keys, serials and signatures.
func WithRandom(random io.Reader) Option {
	return func(options *Options) error {
		if random == nil {
			return fmt.Errorf("random reader is nil")
		}
		options.random = random
		return nil
	}
}

type Options struct {
	log     klog.Logger
	metrics *Metrics
	now     func() time.Time
	random  io.Reader
}

// Generator is safe for concurrent use; every call allocates its own key material.
// The zero value uses crypto/rand, the wall clock and the global klog logger.
type Generator struct {
	options Options
}

func NewGenerator(opts ...Option) (g *Generator, err error) {
	options := Options{
		now:    time.Now,
		random: rand.Reader,
	}
	for _, option := range opts {
		if optErr := option(&options); optErr != nil {
			err = fmt.Errorf("certmaker: new generator failed, %v", optErr)
			return
		}
	}
	g = &Generator{
		options: options,
	}
	return
}

var defaultGenerator = &Generator{}

func (g *Generator) random() io.Reader {
	if g.options.random == nil {
		return rand.Reader
	}
	return g.options.random
}

func (g *Generator) now() time.Time {
	if g.options.now == nil {
		return time.Now()
	}
	return g.options.now()
}

func (g *Generator) logger() klog.Logger {
	if g.options.log.GetSink() == nil {
		return klog.Background()
	}
	return g.options.log
}

// Generate creates a fresh RSA key of keySize bits and a certificate self-signed with it
// using SHA-256, valid from now for validityDays days. Inputs are not validated here:
// an empty common name is embedded as given and an unusable key size fails in the rsa package.
// Nothing is written to disk.
func (g *Generator) Generate(commonName string, validityDays int, keySize int) (certPEM []byte, keyPEM []byte, err error) {
	log := g.logger()
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		g.options.metrics.observe(keySize, elapsed, err)
		if err != nil {
			// callers report the error themselves
			log.V(1).Info("generate certificate failed", "err", err, "commonName", commonName, "keyBits", keySize, "validityDays", validityDays)
		}
	}()
	// KEY
	random := g.random()
	key, keyErr := generateKEY(random, keySize)
	if keyErr != nil {
		err = keyErr
		return
	}
	// SN
	serialNumber, snErr := randomSerialNumber(random)
	if snErr != nil {
		err = snErr
		return
	}
	// CERT
	tpl := generateCRT(key, serialNumber, commonName, g.now(), validityDays)
	certPEM, err = encodeCRT(random, key, tpl)
	if err != nil {
		return
	}
	keyPEM = encodeKEY(key)
	// verify
	if _, pairErr := tls.X509KeyPair(certPEM, keyPEM); pairErr != nil {
		certPEM, keyPEM = nil, nil
		err = cryptoError("verify key pair", pairErr)
		return
	}
	log.V(2).Info("certificate generated",
		"commonName", commonName,
		"keyBits", keySize,
		"validityDays", validityDays,
		"serial", serialNumber.Text(16),
		"duration", time.Since(start),
	)
	return
}

func Generate(commonName string, validityDays int, keySize int) (certPEM []byte, keyPEM []byte, err error) {
	return defaultGenerator.Generate(commonName, validityDays, keySize)
}
