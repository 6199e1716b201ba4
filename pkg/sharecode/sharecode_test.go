// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package sharecode

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/jeremyhahn/go-quorum/pkg/shamir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShare(t *testing.T, secretLen, threshold, total int) []shamir.Share {
	t.Helper()
	secret := make([]byte, secretLen)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	shares, err := shamir.Split(secret, threshold, total)
	require.NoError(t, err)
	return shares
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		secretLen int
		threshold int
		total     int
	}{
		{"16 byte secret 3 of 5", 16, 3, 5},
		{"single byte secret", 1, 2, 2},
		{"32 byte secret 4 of 4", 32, 4, 4},
		{"threshold of one", 8, 1, 3},
		{"wide group", 24, 5, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, share := range testShare(t, tt.secretLen, tt.threshold, tt.total) {
				token, err := Encode(share)
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(token, "share1"))

				decoded, err := Decode(token)
				require.NoError(t, err)
				assert.True(t, share.Equal(decoded), "decode(encode(s)) != s for %s", share)
			}
		})
	}
}

func TestEncode_InvalidShare(t *testing.T) {
	_, err := Encode(shamir.Share{Index: 0, Threshold: 2, Total: 3, Value: []byte{1}})
	require.Error(t, err)

	_, err = Encode(shamir.Share{Index: 1, Threshold: 3, Total: 2, Value: []byte{1}})
	require.Error(t, err)
}

func TestDecode_UppercaseAccepted(t *testing.T) {
	share := testShare(t, 16, 2, 3)[0]
	token, err := Encode(share)
	require.NoError(t, err)

	decoded, err := Decode(strings.ToUpper(token))
	require.NoError(t, err)
	assert.True(t, share.Equal(decoded))
}

func TestDecode_MixedCaseRejected(t *testing.T) {
	share := testShare(t, 16, 2, 3)[0]
	token, err := Encode(share)
	require.NoError(t, err)

	mixed := strings.ToUpper(token[:8]) + token[8:]
	_, err = Decode(mixed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

// TestDecode_EverySingleSymbolSubstitution exercises the checksum guarantee:
// replacing any one symbol of the token body with any other alphabet symbol
// must always be caught, and as a checksum mismatch rather than a structural
// error.
func TestDecode_EverySingleSymbolSubstitution(t *testing.T) {
	share := testShare(t, 16, 3, 4)[1]
	token, err := Encode(share)
	require.NoError(t, err)

	body := len(Prefix) + 1
	for pos := body; pos < len(token); pos++ {
		for _, c := range charset {
			if byte(c) == token[pos] {
				continue
			}
			mutated := token[:pos] + string(c) + token[pos+1:]
			_, err := Decode(mutated)
			require.Error(t, err, "substitution at %d accepted", pos)
			assert.ErrorIs(t, err, ErrChecksumMismatch,
				"substitution at %d reported as %v", pos, err)
		}
	}
}

func TestDecode_StructuralDamage(t *testing.T) {
	share := testShare(t, 16, 2, 3)[0]
	token, err := Encode(share)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"prefix only", "share1"},
		{"wrong prefix", "stake1" + token[6:]},
		{"no separator", "share" + token[6:]},
		{"truncated", token[:10]},
		{"symbol outside alphabet", token[:len(token)-3] + "b" + token[len(token)-2:]},
		{"embedded space", token[:12] + " " + token[13:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestDecode_TruncatedBodyFailsChecksum(t *testing.T) {
	share := testShare(t, 32, 2, 3)[0]
	token, err := Encode(share)
	require.NoError(t, err)

	// Long enough to pass the length check, but the checksum no longer
	// covers the right data.
	_, err = Decode(token[:len(token)-5])
	require.Error(t, err)
}

func TestEncode_Injective(t *testing.T) {
	seen := make(map[string]shamir.Share)
	for _, share := range testShare(t, 16, 3, 10) {
		token, err := Encode(share)
		require.NoError(t, err)
		prev, dup := seen[token]
		require.False(t, dup, "shares %s and %s encode identically", prev, share)
		seen[token] = share
	}
}

func BenchmarkEncode(b *testing.B) {
	secret := make([]byte, 16)
	_, _ = rand.Read(secret)
	shares, _ := shamir.Split(secret, 3, 5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(shares[0])
	}
}

func BenchmarkDecode(b *testing.B) {
	secret := make([]byte, 16)
	_, _ = rand.Read(secret)
	shares, _ := shamir.Split(secret, 3, 5)
	token, _ := Encode(shares[0])
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(token)
	}
}
