// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package aead

import (
	"crypto/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceTracker_CheckAndRecord(t *testing.T) {
	tracker := NewNonceTracker()

	nonce := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	require.NoError(t, tracker.CheckAndRecord(nonce))

	err := tracker.CheckAndRecord(nonce)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonceReuse)

	assert.True(t, tracker.Contains(nonce))
	assert.False(t, tracker.Contains([]byte{0xff}))
	assert.Equal(t, 1, tracker.Count())
}

func TestNonceTracker_Reset(t *testing.T) {
	tracker := NewNonceTracker()
	nonce := []byte{1, 2, 3}
	require.NoError(t, tracker.CheckAndRecord(nonce))

	tracker.Reset()
	assert.Equal(t, 0, tracker.Count())
	require.NoError(t, tracker.CheckAndRecord(nonce))
}

func TestNonceTracker_ConcurrentUse(t *testing.T) {
	tracker := NewNonceTracker()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				nonce := make([]byte, 12)
				_, err := rand.Read(nonce)
				require.NoError(t, err)
				require.NoError(t, tracker.CheckAndRecord(nonce))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, tracker.Count())
}
