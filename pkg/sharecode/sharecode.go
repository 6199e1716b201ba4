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

// Package sharecode encodes secret shares as checksum-protected tokens
// suitable for manual transcription.
//
// A token looks like
//
//	share1q9zsy2vf3xgcrv93xqunfwfjkzar9wgcrqvpsgfrnxvpsxvu7qh2
//
// and carries, in order: the fixed "share1" prefix, the share's group
// parameters (threshold, total) and index, the share value, and a 6-symbol
// checksum. Symbols are drawn from a 32-character alphabet chosen to avoid
// easily confused characters. The checksum is the BCH code used by BIP-0173:
// any single-symbol substitution anywhere in the token is always detected,
// and any error touching up to 4 symbols is detected in tokens up to 89
// symbols long. Checksum failures are reported distinctly from structural
// damage so callers can tell a transcription slip from a truncated or
// garbled token.
package sharecode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-quorum/pkg/shamir"
)

var (
	// ErrMalformedToken is returned when a token's structure is invalid:
	// missing prefix, symbols outside the alphabet, impossible length, or
	// group parameters that contradict each other.
	ErrMalformedToken = errors.New("sharecode: malformed token")

	// ErrChecksumMismatch is returned when a structurally valid token fails
	// checksum verification. This signals a transcription or corruption
	// error; the holder should re-read the token from its original copy.
	ErrChecksumMismatch = errors.New("sharecode: checksum mismatch")
)

// Prefix is the human-readable part every token starts with. It doubles as
// the customization string mixed into the checksum, so a token of a
// different scheme never verifies here.
const Prefix = "share"

const (
	separator         = "1"
	checksumSymbols   = 6
	headerBytes       = 3 // threshold, total, index
	minPayloadSymbols = 7 // ceil((headerBytes+1)*8 / 5)
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var charsetRev = func() [128]int8 {
	var rev [128]int8
	for i := range rev {
		rev[i] = -1
	}
	for i, c := range charset {
		rev[c] = int8(i)
	}
	return rev
}()

// Encode serializes a share into a transcribable token. The encoding is
// injective: distinct shares produce distinct tokens, and Decode inverts it
// exactly.
func Encode(share shamir.Share) (string, error) {
	if err := share.Validate(); err != nil {
		return "", fmt.Errorf("sharecode: cannot encode invalid share: %w", err)
	}

	payload := make([]byte, 0, headerBytes+len(share.Value))
	payload = append(payload, byte(share.Threshold), byte(share.Total), share.Index)
	payload = append(payload, share.Value...)

	data := convertToSymbols(payload)
	data = append(data, createChecksum(data)...)

	var b strings.Builder
	b.Grow(len(Prefix) + 1 + len(data))
	b.WriteString(Prefix)
	b.WriteString(separator)
	for _, v := range data {
		b.WriteByte(charset[v])
	}
	return b.String(), nil
}

// Decode parses and verifies a token, returning the share it carries.
// Structural problems fail with ErrMalformedToken; transcription errors in
// an otherwise well-formed token fail with ErrChecksumMismatch.
func Decode(token string) (shamir.Share, error) {
	var share shamir.Share

	if lower := strings.ToLower(token); lower != token {
		if strings.ToUpper(token) != token {
			return share, fmt.Errorf("%w: mixed-case token", ErrMalformedToken)
		}
		token = lower
	}

	if !strings.HasPrefix(token, Prefix+separator) {
		return share, fmt.Errorf("%w: missing %q prefix", ErrMalformedToken, Prefix+separator)
	}

	body := token[len(Prefix)+1:]
	if len(body) < minPayloadSymbols+checksumSymbols {
		return share, fmt.Errorf("%w: token too short (%d symbols)", ErrMalformedToken, len(body))
	}

	data := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c >= 128 || charsetRev[c] < 0 {
			return share, fmt.Errorf("%w: invalid symbol %q at position %d", ErrMalformedToken, c, i)
		}
		data[i] = byte(charsetRev[c])
	}

	if !verifyChecksum(data) {
		return share, ErrChecksumMismatch
	}

	payload, err := convertFromSymbols(data[:len(data)-checksumSymbols])
	if err != nil {
		return share, err
	}
	if len(payload) < headerBytes+1 {
		return share, fmt.Errorf("%w: payload too short", ErrMalformedToken)
	}

	share = shamir.Share{
		Threshold: int(payload[0]),
		Total:     int(payload[1]),
		Index:     payload[2],
		Value:     payload[headerBytes:],
	}
	if err := share.Validate(); err != nil {
		return shamir.Share{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return share, nil
}

// polymod is the BIP-0173 BCH checksum polynomial over 5-bit symbols.
func polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 != 0 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

// prefixExpand mixes the token prefix into the checksum so that tokens from
// unrelated schemes sharing the alphabet never cross-verify.
func prefixExpand() []byte {
	expanded := make([]byte, 0, 2*len(Prefix)+1)
	for i := 0; i < len(Prefix); i++ {
		expanded = append(expanded, Prefix[i]>>5)
	}
	expanded = append(expanded, 0)
	for i := 0; i < len(Prefix); i++ {
		expanded = append(expanded, Prefix[i]&31)
	}
	return expanded
}

func createChecksum(data []byte) []byte {
	values := append(prefixExpand(), data...)
	values = append(values, make([]byte, checksumSymbols)...)
	mod := polymod(values) ^ 1
	checksum := make([]byte, checksumSymbols)
	for i := 0; i < checksumSymbols; i++ {
		checksum[i] = byte(mod >> uint(5*(checksumSymbols-1-i)) & 31)
	}
	return checksum
}

func verifyChecksum(data []byte) bool {
	return polymod(append(prefixExpand(), data...)) == 1
}

// convertToSymbols regroups 8-bit bytes into 5-bit symbols, padding the
// final symbol with zero bits.
func convertToSymbols(payload []byte) []byte {
	out := make([]byte, 0, (len(payload)*8+4)/5)
	var acc uint32
	bits := 0
	for _, b := range payload {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out = append(out, byte(acc>>uint(bits)&31))
		}
	}
	if bits > 0 {
		out = append(out, byte(acc<<uint(5-bits)&31))
	}
	return out
}

// convertFromSymbols regroups 5-bit symbols back into bytes, rejecting
// tokens whose padding is too long or non-zero since those cannot have been
// produced by Encode.
func convertFromSymbols(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)*5/8)
	var acc uint32
	bits := 0
	for _, v := range data {
		acc = acc<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>uint(bits)&0xff))
		}
	}
	if bits >= 5 {
		return nil, fmt.Errorf("%w: excess padding", ErrMalformedToken)
	}
	if acc<<uint(8-bits)&0xff != 0 {
		return nil, fmt.Errorf("%w: non-zero padding", ErrMalformedToken)
	}
	return out, nil
}
