package otp

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"
)

// CodeLength is the number of decimal digits in every code.
const CodeLength = 6

const (
	minCode = 100000
	span    = 900000
)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate() (string, error) {
	return f()
}

// RandomGenerator draws codes uniformly from 100000-999999.
type RandomGenerator struct {
	reader io.Reader
}

// NewGenerator returns a generator backed by crypto/rand.
func NewGenerator() *RandomGenerator {
	return &RandomGenerator{reader: rand.Reader}
}

// Generate returns a six digit code whose first digit is never zero.
func (g *RandomGenerator) Generate() (string, error) {
	n, err := rand.Int(g.reader, big.NewInt(span))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+minCode, 10), nil
}
