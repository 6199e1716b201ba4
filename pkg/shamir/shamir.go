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

// Package shamir implements Shamir's Secret Sharing scheme over GF(2^8),
// splitting a secret into N shares of which any T reconstruct it while any
// T-1 reveal nothing.
//
// Each byte of the secret is shared independently: a random polynomial of
// degree T-1 is drawn with the secret byte as its constant term, and every
// share receives the polynomial's value at the share's index. Reconstruction
// is Lagrange interpolation at x=0. Because each coefficient is drawn
// uniformly at random, any T-1 evaluations are statistically independent of
// the constant term, per byte.
package shamir

import (
	"crypto/rand"
	"fmt"

	"github.com/jeremyhahn/go-quorum/pkg/gf256"
)

// MaxShares is the largest supported share count. Indices are single field
// elements, and x=0 is reserved for the secret.
const MaxShares = 255

// Split divides secret into total shares, any threshold of which can
// reconstruct it. Requires 1 <= threshold <= total <= MaxShares.
//
// With threshold == 1 every share carries the secret verbatim; the scheme
// permits it for completeness, but there is no secrecy benefit.
func Split(secret []byte, threshold, total int) ([]Share, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: threshold %d must be >= 1", ErrInvalidThreshold, threshold)
	}
	if total < threshold {
		return nil, fmt.Errorf("%w: total %d must be >= threshold %d", ErrInvalidThreshold, total, threshold)
	}
	if total > MaxShares {
		return nil, fmt.Errorf("%w: total %d exceeds maximum %d", ErrInvalidThreshold, total, MaxShares)
	}
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	shares := make([]Share, total)
	for i := range shares {
		shares[i] = Share{
			Index:     byte(i + 1),
			Threshold: threshold,
			Total:     total,
			Value:     make([]byte, len(secret)),
		}
	}

	coeffs := make([]byte, threshold)
	for byteIdx, secretByte := range secret {
		// p(x) = secret + a1*x + ... + a(t-1)*x^(t-1), fresh randomness
		// per byte position.
		coeffs[0] = secretByte
		if threshold > 1 {
			if _, err := rand.Read(coeffs[1:]); err != nil {
				return nil, fmt.Errorf("shamir: failed to generate polynomial coefficients: %w", err)
			}
		}

		for i := range shares {
			shares[i].Value[byteIdx] = evaluate(coeffs, shares[i].Index)
		}
	}

	// The coefficients are as sensitive as the secret itself.
	for i := range coeffs {
		coeffs[i] = 0
	}

	return shares, nil
}

// Combine reconstructs the secret from threshold or more shares of a single
// sharing session. Any subset of at least Threshold distinct shares yields
// the identical secret.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares provided", ErrInsufficientShares)
	}

	threshold := shares[0].Threshold
	total := shares[0].Total
	length := len(shares[0].Value)
	seen := make(map[byte]int, len(shares))

	distinct := shares[:0:0]
	for i, share := range shares {
		if err := share.Validate(); err != nil {
			return nil, fmt.Errorf("share %d: %w", i, err)
		}
		if share.Threshold != threshold || share.Total != total {
			return nil, fmt.Errorf("%w: share %d has group %d/%d, expected %d/%d",
				ErrInconsistentShares, i, share.Threshold, share.Total, threshold, total)
		}
		if len(share.Value) != length {
			return nil, fmt.Errorf("%w: share %d has length %d, expected %d",
				ErrInconsistentShares, i, len(share.Value), length)
		}
		if j, dup := seen[share.Index]; dup {
			if !share.Equal(shares[j]) {
				return nil, fmt.Errorf("%w: shares %d and %d both claim index %d with different values",
					ErrInconsistentShares, j, i, share.Index)
			}
			continue
		}
		seen[share.Index] = i
		distinct = append(distinct, share)
	}

	if len(distinct) < threshold {
		return nil, fmt.Errorf("%w: need %d distinct shares, have %d",
			ErrInsufficientShares, threshold, len(distinct))
	}

	// Any T shares determine the polynomial; use the first T.
	distinct = distinct[:threshold]

	secret := make([]byte, length)
	for byteIdx := range secret {
		b, err := interpolate(distinct, byteIdx)
		if err != nil {
			return nil, err
		}
		secret[byteIdx] = b
	}

	return secret, nil
}

// evaluate computes the polynomial with the given coefficients at x using
// Horner's method in GF(2^8).
func evaluate(coeffs []byte, x byte) byte {
	result := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = gf256.Add(gf256.Mul(result, x), coeffs[i])
	}
	return result
}

// interpolate evaluates the Lagrange interpolation of the shares' points at
// x=0 for a single byte position, recovering the polynomial's constant term.
func interpolate(shares []Share, byteIdx int) (byte, error) {
	var result byte

	for i := range shares {
		xi := shares[i].Index
		yi := shares[i].Value[byteIdx]

		// Basis l_i(0) = prod_{j!=i} xj / (xi - xj). In GF(2^8) the
		// numerator term (0 - xj) is just xj.
		var num, den byte = 1, 1
		for j := range shares {
			if i == j {
				continue
			}
			xj := shares[j].Index
			num = gf256.Mul(num, xj)
			den = gf256.Mul(den, gf256.Sub(xi, xj))
		}

		// Indices are pairwise distinct and non-zero, so den is never
		// zero; a failure here is an internal invariant violation.
		basis, err := gf256.Div(num, den)
		if err != nil {
			return 0, fmt.Errorf("shamir: interpolation basis: %w", err)
		}

		result = gf256.Add(result, gf256.Mul(yi, basis))
	}

	return result, nil
}
