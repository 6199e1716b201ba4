// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.
//
// go-quorum is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package aead provides an authenticated-encryption envelope keyed by a
// shared secret, supporting AES-GCM and XChaCha20-Poly1305.
//
// Nonces are generated at random for every Seal call and additionally
// tracked per cipher instance, so an accidental collision is refused rather
// than silently reusing keystream.
//
// Nonce collision bound: AES-GCM uses 96-bit random nonces, so after n Seal
// calls under one key the probability that any two collided is at most
// n^2 / 2^97 (birthday bound) - below 2^-33 for n = 2^32. Callers expecting
// to exceed 2^32 seals under a single key should use XChaCha20-Poly1305,
// whose 192-bit nonces make random generation safe for any realistic volume,
// or rotate keys.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Algorithm identifies an AEAD cipher suite.
type Algorithm string

const (
	// AESGCM is AES in Galois/Counter Mode with a 12-byte nonce and a
	// 16-byte tag. Accepts 128, 192 or 256-bit keys. This is the default.
	AESGCM Algorithm = "aes-gcm"

	// XChaCha20Poly1305 uses a 24-byte nonce and a 16-byte tag with a
	// 256-bit key. Preferred when very large numbers of payloads are
	// sealed under one key.
	XChaCha20Poly1305 Algorithm = "xchacha20-poly1305"
)

// Cipher seals and opens envelopes under a fixed key. A Cipher is safe for
// concurrent use; the only shared mutable state is the nonce tracker, which
// serializes itself.
type Cipher struct {
	aead      cipher.AEAD
	algorithm Algorithm
	tracker   *NonceTracker
}

// New creates a Cipher for the given key and algorithm. AES-GCM requires a
// 16, 24 or 32-byte key; XChaCha20-Poly1305 requires 32 bytes.
func New(key []byte, algorithm Algorithm) (*Cipher, error) {
	var aeadCipher cipher.AEAD

	switch algorithm {
	case AESGCM:
		switch len(key) {
		case 16, 24, 32:
		default:
			return nil, fmt.Errorf("aead: invalid AES key size: %d bytes (must be 16, 24 or 32)", len(key))
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("aead: failed to create AES cipher: %w", err)
		}
		aeadCipher, err = cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("aead: failed to create GCM mode: %w", err)
		}
	case XChaCha20Poly1305:
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("aead: invalid key size: %d bytes (must be %d)", len(key), chacha20poly1305.KeySize)
		}
		var err error
		aeadCipher, err = chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("aead: failed to create XChaCha20-Poly1305 cipher: %w", err)
		}
	default:
		return nil, fmt.Errorf("aead: unsupported algorithm %q", algorithm)
	}

	return &Cipher{
		aead:      aeadCipher,
		algorithm: algorithm,
		tracker:   NewNonceTracker(),
	}, nil
}

// Seal encrypts and authenticates plaintext, optionally binding it to
// associated data. The associated data is authenticated but not encrypted;
// Open must be given the identical bytes.
//
// A fresh random nonce is drawn per call and checked against the tracker;
// a collision fails with ErrNonceReuse instead of proceeding.
func (c *Cipher) Seal(plaintext, associatedData []byte) (*Envelope, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("aead: failed to generate nonce: %w", err)
	}

	if err := c.tracker.CheckAndRecord(nonce); err != nil {
		return nil, err
	}

	sealed := c.aead.Seal(nil, nonce, plaintext, associatedData)

	tagSize := c.aead.Overhead()
	return &Envelope{
		Nonce:      nonce,
		Ciphertext: sealed[:len(sealed)-tagSize],
		Tag:        sealed[len(sealed)-tagSize:],
		Algorithm:  string(c.algorithm),
	}, nil
}

// Open verifies and decrypts an envelope. The tag is verified over the
// whole ciphertext before any plaintext is released, in constant time with
// respect to how much of the tag matches; any failure is reported as
// ErrAuthenticationFailure with no partial plaintext.
func (c *Cipher) Open(envelope *Envelope, associatedData []byte) ([]byte, error) {
	if envelope == nil {
		return nil, fmt.Errorf("aead: envelope cannot be nil")
	}
	if len(envelope.Nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("aead: invalid nonce size: %d bytes (must be %d)", len(envelope.Nonce), c.aead.NonceSize())
	}
	if len(envelope.Tag) != c.aead.Overhead() {
		return nil, fmt.Errorf("aead: invalid tag size: %d bytes (must be %d)", len(envelope.Tag), c.aead.Overhead())
	}

	sealed := make([]byte, 0, len(envelope.Ciphertext)+len(envelope.Tag))
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.Tag...)

	plaintext, err := c.aead.Open(nil, envelope.Nonce, sealed, associatedData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailure, err)
	}
	return plaintext, nil
}

// Algorithm returns the cipher suite this Cipher was created with.
func (c *Cipher) Algorithm() Algorithm {
	return c.algorithm
}

// NonceSize returns the nonce length in bytes.
func (c *Cipher) NonceSize() int {
	return c.aead.NonceSize()
}

// Overhead returns the authentication tag length in bytes.
func (c *Cipher) Overhead() int {
	return c.aead.Overhead()
}

// SealCount returns the number of envelopes sealed so far, which equals the
// number of nonces tracked. Useful for deciding when to rotate the key.
func (c *Cipher) SealCount() int {
	return c.tracker.Count()
}

// GenerateKey returns size cryptographically random key bytes.
func GenerateKey(size int) ([]byte, error) {
	switch size {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("aead: invalid key size: %d bytes (must be 16, 24 or 32)", size)
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("aead: failed to generate key: %w", err)
	}
	return key, nil
}
