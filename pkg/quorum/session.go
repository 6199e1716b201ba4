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

// Package quorum coordinates the collection of encoded share tokens and the
// reconstruction of the secret they protect.
//
// A Session moves through the states Collecting -> Reconstructing ->
// {Reconstructed, Failed}. Tokens are accepted one at a time; a bad token
// (malformed, checksum failure, inconsistent group) is reported to the
// caller without aborting the session, so the holder can be asked to
// re-transcribe it. Once at least the threshold number of distinct,
// mutually consistent shares is present the session can reconstruct, after
// which the secret is available until it is explicitly wiped.
package quorum

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jeremyhahn/go-quorum/pkg/logging"
	"github.com/jeremyhahn/go-quorum/pkg/shamir"
	"github.com/jeremyhahn/go-quorum/pkg/sharecode"
)

// State is the lifecycle phase of a reconstruction session.
type State int

const (
	// Collecting accepts tokens until a quorum is present.
	Collecting State = iota

	// Reconstructing is the transient phase while interpolation runs.
	Reconstructing

	// Reconstructed holds the recovered secret until Wipe is called.
	Reconstructed

	// Failed is terminal; the collected shares were mutually inconsistent.
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Reconstructing:
		return "reconstructing"
	case Reconstructed:
		return "reconstructed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Session collects share tokens for one secret and reconstructs it. All
// methods are safe for concurrent use; a single mutex serializes access to
// the token set, which is the session's only shared mutable resource.
type Session struct {
	id     uuid.UUID
	logger *logging.Logger

	mu        sync.Mutex
	state     State
	shares    []shamir.Share
	positions map[byte]int
	secret    []byte
	failure   error
}

// NewSession creates a session in the Collecting state. A nil logger falls
// back to the default logger.
func NewSession(logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	s := &Session{
		id:        uuid.New(),
		logger:    logger,
		state:     Collecting,
		positions: make(map[byte]int),
	}
	s.logger.Debug("reconstruction session created", "session", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Collected returns the number of distinct shares gathered so far.
func (s *Session) Collected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shares)
}

// Ready reports whether enough distinct shares are present to reconstruct.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready()
}

func (s *Session) ready() bool {
	return len(s.shares) > 0 && len(s.shares) >= s.shares[0].Threshold
}

// AddToken decodes an encoded share token and adds it to the session.
// Decoding errors (sharecode.ErrMalformedToken, sharecode.ErrChecksumMismatch)
// and consistency errors (shamir.ErrInconsistentShares) are returned to the
// caller; the session remains in Collecting and other shares are unaffected.
func (s *Session) AddToken(token string) error {
	share, err := sharecode.Decode(token)
	if err != nil {
		s.logger.Warn("rejected share token", "session", s.id, "error", err)
		return err
	}
	return s.AddShare(share)
}

// AddShare adds an already-decoded share to the session. Re-submitting an
// identical share is a no-op; a share that collides with a collected index
// but differs in value fails with shamir.ErrInconsistentShares.
func (s *Session) AddShare(share shamir.Share) error {
	if err := share.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Collecting {
		return fmt.Errorf("%w: state is %s", ErrSessionClosed, s.state)
	}

	if len(s.shares) > 0 {
		first := s.shares[0]
		if share.Threshold != first.Threshold || share.Total != first.Total {
			return fmt.Errorf("%w: token has group %d/%d, session expects %d/%d",
				shamir.ErrInconsistentShares, share.Threshold, share.Total, first.Threshold, first.Total)
		}
		if len(share.Value) != len(first.Value) {
			return fmt.Errorf("%w: token has value length %d, session expects %d",
				shamir.ErrInconsistentShares, len(share.Value), len(first.Value))
		}
	}

	if pos, dup := s.positions[share.Index]; dup {
		if !share.Equal(s.shares[pos]) {
			return fmt.Errorf("%w: index %d already collected with a different value",
				shamir.ErrInconsistentShares, share.Index)
		}
		s.logger.Debug("duplicate share ignored", "session", s.id, "index", share.Index)
		return nil
	}

	s.positions[share.Index] = len(s.shares)
	s.shares = append(s.shares, share)

	s.logger.Info("share collected",
		"session", s.id,
		"index", share.Index,
		"have", len(s.shares),
		"need", share.Threshold)
	return nil
}

// Reconstruct interpolates the collected shares back into the secret. With
// fewer than threshold shares it fails with shamir.ErrInsufficientShares
// and the session keeps collecting. An interpolation inconsistency moves
// the session to Failed permanently. On success the session moves to
// Reconstructed and returns a copy of the secret; repeated calls return
// fresh copies.
func (s *Session) Reconstruct() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Reconstructed:
		return s.secretCopy()
	case Failed:
		return nil, s.failure
	case Reconstructing:
		// Unreachable from outside; Reconstructing only exists while the
		// lock is held.
		return nil, fmt.Errorf("%w: reconstruction in progress", ErrSessionClosed)
	}

	if !s.ready() {
		need := 0
		if len(s.shares) > 0 {
			need = s.shares[0].Threshold
		}
		return nil, fmt.Errorf("%w: have %d shares, need %d",
			shamir.ErrInsufficientShares, len(s.shares), need)
	}

	s.state = Reconstructing
	s.logger.Info("reconstructing secret", "session", s.id, "shares", len(s.shares))

	secret, err := shamir.Combine(s.shares)
	if err != nil {
		s.state = Failed
		s.failure = err
		s.logger.Errorf("reconstruction failed: %v", err)
		return nil, err
	}

	s.state = Reconstructed
	s.secret = secret
	s.logger.Info("secret reconstructed", "session", s.id, "bytes", len(secret))
	return s.secretCopy()
}

// Secret returns a copy of the reconstructed secret. Fails with ErrNoSecret
// before reconstruction or after Wipe.
func (s *Session) Secret() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Reconstructed {
		return nil, fmt.Errorf("%w: state is %s", ErrNoSecret, s.state)
	}
	return s.secretCopy()
}

func (s *Session) secretCopy() ([]byte, error) {
	if s.secret == nil {
		return nil, ErrNoSecret
	}
	out := make([]byte, len(s.secret))
	copy(out, s.secret)
	return out, nil
}

// Wipe zeroes the reconstructed secret and every collected share value.
// The session cannot be used afterwards. Callers hold the only other
// copies; they are responsible for wiping those themselves.
func (s *Session) Wipe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.secret {
		s.secret[i] = 0
	}
	s.secret = nil

	for _, share := range s.shares {
		for i := range share.Value {
			share.Value[i] = 0
		}
	}
	s.shares = nil
	s.positions = nil

	if s.state != Failed {
		s.state = Failed
		s.failure = fmt.Errorf("%w: session wiped", ErrSessionClosed)
	}
	s.logger.Debug("session wiped", "session", s.id)
}
