// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package ballot

import (
	"encoding/json"
	"testing"

	"github.com/jeremyhahn/go-quorum/pkg/aead"
	"github.com/jeremyhahn/go-quorum/pkg/shamir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBox(t *testing.T) (*Box, []byte) {
	t.Helper()
	key, err := aead.GenerateKey(16)
	require.NoError(t, err)
	cipher, err := aead.New(key, aead.AESGCM)
	require.NoError(t, err)
	return NewBox(cipher), key
}

func TestBox_CastAndUnseal(t *testing.T) {
	box, key := newBox(t)

	require.NoError(t, box.Cast("Tim", []byte("Red")))
	require.NoError(t, box.Cast("Tom", []byte("Blue")))
	require.NoError(t, box.Cast("Ben", []byte("Red")))
	assert.Equal(t, 3, box.Count())
	assert.Equal(t, []string{"Ben", "Tim", "Tom"}, box.Participants())

	// Unseal with an independent cipher built from the same key, the way
	// a reconstruction produces one.
	cipher, err := aead.New(key, aead.AESGCM)
	require.NoError(t, err)
	votes, err := box.Unseal(cipher)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Tim": "Red",
		"Tom": "Blue",
		"Ben": "Red",
	}, votes)
}

func TestBox_OneVotePerParticipant(t *testing.T) {
	box, _ := newBox(t)
	require.NoError(t, box.Cast("Tim", []byte("Red")))

	err := box.Cast("Tim", []byte("Blue"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, box.Count())
}

func TestBox_EnvelopeLookup(t *testing.T) {
	box, _ := newBox(t)
	require.NoError(t, box.Cast("Tim", []byte("Red")))

	envelope, err := box.Envelope("Tim")
	require.NoError(t, err)
	assert.NotEmpty(t, envelope.Ciphertext)

	_, err = box.Envelope("George")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoVote)
}

func TestBox_EnvelopesBoundToIdentity(t *testing.T) {
	box, key := newBox(t)
	require.NoError(t, box.Cast("Tim", []byte("Red")))

	// The envelope authenticates Tim's identity; opening it as Tom fails.
	envelope, err := box.Envelope("Tim")
	require.NoError(t, err)
	cipher, err := aead.New(key, aead.AESGCM)
	require.NoError(t, err)

	_, err = cipher.Open(envelope, []byte("Tom"))
	require.Error(t, err)
	assert.ErrorIs(t, err, aead.ErrAuthenticationFailure)
}

func TestBox_UnsealWrongKey(t *testing.T) {
	box, _ := newBox(t)
	require.NoError(t, box.Cast("Tim", []byte("Red")))

	wrongKey, err := aead.GenerateKey(16)
	require.NoError(t, err)
	cipher, err := aead.New(wrongKey, aead.AESGCM)
	require.NoError(t, err)

	_, err = box.Unseal(cipher)
	require.Error(t, err)
	assert.ErrorIs(t, err, aead.ErrAuthenticationFailure)
}

func TestBox_Transcript(t *testing.T) {
	box, _ := newBox(t)
	require.NoError(t, box.Cast("Tim", []byte("Red")))
	require.NoError(t, box.Cast("Tom", []byte("Blue")))

	transcript, err := box.Transcript()
	require.NoError(t, err)

	var decoded map[string]map[string]string
	require.NoError(t, json.Unmarshal(transcript, &decoded))
	require.Contains(t, decoded, "Tim")
	require.Contains(t, decoded, "Tom")
	for _, fields := range decoded {
		assert.Contains(t, fields, "iv")
		assert.Contains(t, fields, "ciphertext")
		assert.Contains(t, fields, "auth_tag")
	}
}

// TestBox_FullCeremony covers the original flow end to end: split the key,
// seal votes, reconstruct the key from the distributed shares, unseal.
func TestBox_FullCeremony(t *testing.T) {
	key, err := aead.GenerateKey(16)
	require.NoError(t, err)
	cipher, err := aead.New(key, aead.AESGCM)
	require.NoError(t, err)

	voters := []string{"Tim", "Tom", "Ben", "George"}
	shares, err := shamir.Split(key, len(voters), len(voters))
	require.NoError(t, err)

	box := NewBox(cipher)
	for i, voter := range voters {
		choice := "Red"
		if i%2 == 1 {
			choice = "Blue"
		}
		require.NoError(t, box.Cast(voter, []byte(choice)))
	}

	reconstructed, err := shamir.Combine(shares)
	require.NoError(t, err)
	assert.Equal(t, key, reconstructed)

	tallyCipher, err := aead.New(reconstructed, aead.AESGCM)
	require.NoError(t, err)
	votes, err := box.Unseal(tallyCipher)
	require.NoError(t, err)
	assert.Equal(t, "Red", votes["Tim"])
	assert.Equal(t, "Blue", votes["Tom"])
	assert.Len(t, votes, 4)
}
