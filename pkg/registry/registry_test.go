// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_AssignAndLookup(t *testing.T) {
	r := NewInMemory()

	require.NoError(t, r.Assign("Tim", "share1aaaa"))
	require.NoError(t, r.Assign("Tom", "share1bbbb"))

	token, err := r.Token("Tim")
	require.NoError(t, err)
	assert.Equal(t, "share1aaaa", token)

	_, err = r.Token("Ben")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemory_SingleHolderInvariant(t *testing.T) {
	r := NewInMemory()
	require.NoError(t, r.Assign("Tim", "share1aaaa"))

	err := r.Assign("Tim", "share1cccc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	// Reassignment requires an explicit revoke.
	require.NoError(t, r.Revoke("Tim"))
	require.NoError(t, r.Assign("Tim", "share1cccc"))

	token, err := r.Token("Tim")
	require.NoError(t, err)
	assert.Equal(t, "share1cccc", token)
}

func TestInMemory_Participants(t *testing.T) {
	r := NewInMemory()
	for _, name := range []string{"Tom", "Ben", "George", "Tim"} {
		require.NoError(t, r.Assign(name, "share1"+name))
	}

	participants, err := r.Participants()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ben", "George", "Tim", "Tom"}, participants)
}

func TestInMemory_RevokeUnknown(t *testing.T) {
	r := NewInMemory()
	err := r.Revoke("nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemory_Close(t *testing.T) {
	r := NewInMemory()
	require.NoError(t, r.Assign("Tim", "share1aaaa"))
	require.NoError(t, r.Close())

	assert.ErrorIs(t, r.Assign("Tom", "x"), ErrClosed)
	_, err := r.Token("Tim")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = r.Participants()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Revoke("Tim"), ErrClosed)
	assert.ErrorIs(t, r.Close(), ErrClosed)
}
