// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

// Package ballot keeps per-participant sealed votes. Each vote is an AEAD
// envelope bound to the participant's identity through the associated-data
// slot, so envelopes cannot be swapped between participants without
// detection. The box itself never sees a plaintext vote after Cast returns.
package ballot

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jeremyhahn/go-quorum/pkg/aead"
)

var (
	// ErrAlreadyVoted is returned when a participant casts twice.
	ErrAlreadyVoted = errors.New("ballot: participant has already voted")

	// ErrNoVote is returned when a participant has no sealed vote.
	ErrNoVote = errors.New("ballot: no vote for participant")
)

// Box collects sealed votes for one election. Safe for concurrent use.
type Box struct {
	mu     sync.Mutex
	cipher *aead.Cipher
	sealed map[string]*aead.Envelope
}

// NewBox creates a ballot box that seals votes with the given cipher. The
// cipher, and with it the master key, stays owned by the caller.
func NewBox(cipher *aead.Cipher) *Box {
	return &Box{
		cipher: cipher,
		sealed: make(map[string]*aead.Envelope),
	}
}

// Cast seals a participant's vote. Each participant may vote once.
func (b *Box) Cast(participant string, choice []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, voted := b.sealed[participant]; voted {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, participant)
	}

	envelope, err := b.cipher.Seal(choice, []byte(participant))
	if err != nil {
		return fmt.Errorf("ballot: failed to seal vote for %s: %w", participant, err)
	}

	b.sealed[participant] = envelope
	return nil
}

// Envelope returns the sealed vote of a participant.
func (b *Box) Envelope(participant string) (*aead.Envelope, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	envelope, ok := b.sealed[participant]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoVote, participant)
	}
	return envelope, nil
}

// Count returns the number of sealed votes.
func (b *Box) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sealed)
}

// Participants returns everyone who has voted, in sorted order.
func (b *Box) Participants() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.sealed))
	for participant := range b.sealed {
		out = append(out, participant)
	}
	sort.Strings(out)
	return out
}

// Transcript returns the sealed votes as an indented JSON document keyed by
// participant, with hex iv/ciphertext/auth_tag fields per envelope. The
// transcript reveals voter identities and vote lengths, nothing else.
func (b *Box) Transcript() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return json.MarshalIndent(b.sealed, "", "  ")
}

// Unseal decrypts every vote with the supplied cipher, typically created
// from a freshly reconstructed master key. Returns participant -> choice.
// A single envelope failing authentication fails the whole unseal; a
// partially decrypted tally is worse than none.
func (b *Box) Unseal(cipher *aead.Cipher) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	votes := make(map[string]string, len(b.sealed))
	for participant, envelope := range b.sealed {
		choice, err := cipher.Open(envelope, []byte(participant))
		if err != nil {
			return nil, fmt.Errorf("ballot: vote of %s: %w", participant, err)
		}
		votes[participant] = string(choice)
	}
	return votes, nil
}
