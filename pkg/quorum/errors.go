// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package quorum

import "errors"

var (
	// ErrSessionClosed is returned when tokens are offered to a session
	// that has already reconstructed its secret or permanently failed.
	ErrSessionClosed = errors.New("quorum: session is closed")

	// ErrNoSecret is returned when the secret is requested before a
	// successful reconstruction, or after it has been wiped.
	ErrNoSecret = errors.New("quorum: secret not available")
)
