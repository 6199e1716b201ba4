// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package shamir

import (
	"encoding/hex"
	"fmt"
)

// Share is one fragment of a split secret. A share is only meaningful in
// combination with at least Threshold-1 other shares from the same session.
//
// Index is the public x-coordinate the share polynomial was evaluated at;
// it is never zero, since x=0 holds the secret itself. Value has one field
// element per byte of the original secret.
type Share struct {
	// Index is the share number (1 to Total).
	Index byte `json:"index"`

	// Threshold is the minimum number of shares required to reconstruct.
	Threshold int `json:"threshold"`

	// Total is the total number of shares created for the session.
	Total int `json:"total"`

	// Value holds the per-byte polynomial evaluations at x=Index.
	Value []byte `json:"value"`
}

// Validate checks the share's structural invariants.
func (s Share) Validate() error {
	if s.Index < 1 {
		return fmt.Errorf("%w: share index must be >= 1", ErrInconsistentShares)
	}
	if s.Threshold < 1 {
		return fmt.Errorf("%w: threshold %d must be >= 1", ErrInvalidThreshold, s.Threshold)
	}
	if s.Total < s.Threshold {
		return fmt.Errorf("%w: total %d must be >= threshold %d", ErrInvalidThreshold, s.Total, s.Threshold)
	}
	if int(s.Index) > s.Total {
		return fmt.Errorf("%w: share index %d exceeds total %d", ErrInconsistentShares, s.Index, s.Total)
	}
	if len(s.Value) == 0 {
		return fmt.Errorf("%w: share value is empty", ErrInconsistentShares)
	}
	return nil
}

// Equal reports whether two shares are identical in metadata and value.
func (s Share) Equal(o Share) bool {
	if s.Index != o.Index || s.Threshold != o.Threshold || s.Total != o.Total {
		return false
	}
	if len(s.Value) != len(o.Value) {
		return false
	}
	for i := range s.Value {
		if s.Value[i] != o.Value[i] {
			return false
		}
	}
	return true
}

// String returns a debugging representation. The value is truncated so that
// accidentally logging a share does not reveal the full fragment.
func (s Share) String() string {
	preview := hex.EncodeToString(s.Value)
	if len(preview) > 8 {
		preview = preview[:8] + "..."
	}
	return fmt.Sprintf("Share{Index: %d, Group: %d/%d, Value: %s}",
		s.Index, s.Threshold, s.Total, preview)
}
