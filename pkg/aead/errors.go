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

import "errors"

var (
	// ErrAuthenticationFailure is returned by Open when the authentication
	// tag does not verify. The cause may be a tampered envelope, a wrong
	// key, wrong associated data, or a wrong nonce; the cipher cannot and
	// must not distinguish them. No plaintext is ever returned alongside
	// this error, and callers must never downgrade it to a format error.
	ErrAuthenticationFailure = errors.New("aead: authentication failure")

	// ErrNonceReuse is returned when a nonce is about to be reused with the
	// same key. Nonce reuse breaks both confidentiality and authentication
	// for AES-GCM and ChaCha20-Poly1305; the seal operation is refused.
	ErrNonceReuse = errors.New("aead: nonce reuse detected, encryption rejected")
)
