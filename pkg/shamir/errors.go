// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package shamir

import "errors"

var (
	// ErrInvalidThreshold is returned by Split when the (threshold, total)
	// pair is unusable. This is a configuration error; the caller must fix
	// the group parameters before retrying.
	ErrInvalidThreshold = errors.New("shamir: invalid threshold/total configuration")

	// ErrEmptySecret is returned by Split when there is nothing to split.
	ErrEmptySecret = errors.New("shamir: secret cannot be empty")

	// ErrInsufficientShares is returned by Combine when fewer shares than
	// the group threshold are supplied. Recoverable: collect more shares.
	ErrInsufficientShares = errors.New("shamir: insufficient shares to reconstruct")

	// ErrInconsistentShares is returned by Combine when the supplied shares
	// do not belong to a single sharing session: mismatched group
	// parameters, mismatched value lengths, or colliding indices with
	// different values.
	ErrInconsistentShares = errors.New("shamir: shares are inconsistent")
)
