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

package aead

import (
	"encoding/hex"
	"sync"
)

// NonceTracker records every nonce used under one key and refuses repeats.
// Random 96-bit nonces make a collision astronomically unlikely; if one
// does occur, Seal fails with ErrNonceReuse instead of proceeding.
//
// Memory grows by one map entry per sealed envelope. Rotate the key (and
// start a new Cipher) rather than letting a single tracker grow unbounded.
type NonceTracker struct {
	mu     sync.RWMutex
	nonces map[string]struct{}
}

// NewNonceTracker creates an empty tracker.
func NewNonceTracker() *NonceTracker {
	return &NonceTracker{
		nonces: make(map[string]struct{}),
	}
}

// CheckAndRecord atomically checks whether the nonce was used before and
// records it. Returns ErrNonceReuse if it was.
func (nt *NonceTracker) CheckAndRecord(nonce []byte) error {
	key := hex.EncodeToString(nonce)

	nt.mu.Lock()
	defer nt.mu.Unlock()

	if _, exists := nt.nonces[key]; exists {
		return ErrNonceReuse
	}
	nt.nonces[key] = struct{}{}
	return nil
}

// Contains reports whether the nonce has been recorded, without recording it.
func (nt *NonceTracker) Contains(nonce []byte) bool {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	_, exists := nt.nonces[hex.EncodeToString(nonce)]
	return exists
}

// Count returns the number of nonces recorded.
func (nt *NonceTracker) Count() int {
	nt.mu.RLock()
	defer nt.mu.RUnlock()

	return len(nt.nonces)
}

// Reset forgets all recorded nonces. Only call when the key is being
// retired; resetting under a live key reintroduces the reuse risk.
func (nt *NonceTracker) Reset() {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	nt.nonces = make(map[string]struct{})
}
