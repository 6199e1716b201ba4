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

// Package gf256 implements arithmetic in the finite field GF(2^8) defined by
// the AES irreducible polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
//
// All operations are constant-time with respect to their operands: there is
// no data-dependent branching and no table lookup indexed by a secret value.
// This matters because the operands are bytes of split secrets and polynomial
// coefficients; a cache-timing side channel on a lookup table would leak them.
package gf256

import "errors"

// ErrArithmeticDomain is returned when an operation is requested outside the
// field's domain, i.e. the inverse of zero or division by zero.
var ErrArithmeticDomain = errors.New("gf256: inverse of zero is undefined")

// Add returns a + b in GF(2^8). Addition in a characteristic-2 field is XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b in GF(2^8). Subtraction is identical to addition.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b in GF(2^8).
//
// The implementation is the carry-less "peasant" multiplication with the
// branches replaced by masks, so it runs in constant time for all inputs.
func Mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		// Add a into the product iff the low bit of b is set.
		p ^= (byte(0) - (b & 1)) & a

		// Multiply a by x, reducing by 0x1B iff the high bit falls off.
		carry := byte(0) - (a >> 7)
		a = (a << 1) ^ (carry & 0x1b)
		b >>= 1
	}
	return p
}

// Inverse returns the multiplicative inverse of a in GF(2^8), computed as
// a^254 via a fixed square-and-multiply chain. The chain is the same for
// every input, so the operation is constant-time.
//
// The inverse of zero does not exist; requesting it fails with
// ErrArithmeticDomain.
func Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrArithmeticDomain
	}

	b := Mul(a, a) // a^2
	c := Mul(a, b) // a^3
	b = Mul(c, c)  // a^6
	b = Mul(b, b)  // a^12
	c = Mul(b, c)  // a^15
	b = Mul(b, b)  // a^24
	b = Mul(b, b)  // a^48
	b = Mul(b, c)  // a^63
	b = Mul(b, b)  // a^126
	b = Mul(a, b)  // a^127
	return Mul(b, b), nil
}

// Div returns a / b in GF(2^8), failing with ErrArithmeticDomain when b is
// zero. Division by a non-zero b is multiplication by b's inverse, so
// 0 / b = 0 for every non-zero b.
func Div(a, b byte) (byte, error) {
	inv, err := Inverse(b)
	if err != nil {
		return 0, err
	}
	return Mul(a, inv), nil
}
