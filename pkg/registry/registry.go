// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

// Package registry binds distributed share tokens to participant
// identities. The binding is pure bookkeeping: the cryptographic core never
// learns who holds which share, and the registry never learns what a token
// decodes to.
package registry

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrNotFound is returned when a participant has no assigned token.
	ErrNotFound = errors.New("registry: participant not found")

	// ErrAlreadyAssigned is returned when a participant already holds a
	// token. Shares are held by exactly one party; reassignment must be an
	// explicit Revoke followed by Assign.
	ErrAlreadyAssigned = errors.New("registry: participant already has a share")

	// ErrClosed is returned when using a closed registry.
	ErrClosed = errors.New("registry: closed")
)

// Registry is a participant-to-token store.
type Registry interface {
	// Assign gives a token to a participant. Each participant holds at
	// most one token.
	Assign(participant, token string) error

	// Token returns the token held by a participant.
	Token(participant string) (string, error)

	// Revoke removes a participant's token.
	Revoke(participant string) error

	// Participants returns all registered participants in sorted order.
	Participants() ([]string, error)

	// Close releases the registry. Further calls fail with ErrClosed.
	Close() error
}

// InMemory is a Registry backed by a map. Thread-safe using a read-write
// mutex; suitable for tests and single-process ceremonies.
type InMemory struct {
	mu     sync.RWMutex
	tokens map[string]string
	closed bool
}

// NewInMemory creates an empty in-memory registry.
func NewInMemory() *InMemory {
	return &InMemory{
		tokens: make(map[string]string),
	}
}

// Assign gives a token to a participant.
func (r *InMemory) Assign(participant, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if _, exists := r.tokens[participant]; exists {
		return ErrAlreadyAssigned
	}
	r.tokens[participant] = token
	return nil
}

// Token returns the token held by a participant.
func (r *InMemory) Token(participant string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return "", ErrClosed
	}
	token, exists := r.tokens[participant]
	if !exists {
		return "", ErrNotFound
	}
	return token, nil
}

// Revoke removes a participant's token.
func (r *InMemory) Revoke(participant string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if _, exists := r.tokens[participant]; !exists {
		return ErrNotFound
	}
	delete(r.tokens, participant)
	return nil
}

// Participants returns all registered participants in sorted order.
func (r *InMemory) Participants() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrClosed
	}
	out := make([]string, 0, len(r.tokens))
	for participant := range r.tokens {
		out = append(out, participant)
	}
	sort.Strings(out)
	return out, nil
}

// Close empties and closes the registry.
func (r *InMemory) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.tokens = nil
	r.closed = true
	return nil
}
