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
	"encoding/json"
	"fmt"
)

// Envelope is a self-contained sealed payload: nonce, ciphertext, and
// authentication tag. Envelopes are immutable once produced and safe to
// store or transmit; without the key they reveal only the payload length.
//
// The JSON encoding uses hex strings with the field names iv, ciphertext
// and auth_tag so transcripts stay readable and diffable.
type Envelope struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte

	// Algorithm records which cipher produced the envelope. Informational;
	// Open verifies against the cipher it is called on, not this field.
	Algorithm string
}

type envelopeJSON struct {
	Nonce      string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	Tag        string `json:"auth_tag"`
	Algorithm  string `json:"algorithm,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopeJSON{
		Nonce:      hex.EncodeToString(e.Nonce),
		Ciphertext: hex.EncodeToString(e.Ciphertext),
		Tag:        hex.EncodeToString(e.Tag),
		Algorithm:  e.Algorithm,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw envelopeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	nonce, err := hex.DecodeString(raw.Nonce)
	if err != nil {
		return fmt.Errorf("aead: invalid iv encoding: %w", err)
	}
	ciphertext, err := hex.DecodeString(raw.Ciphertext)
	if err != nil {
		return fmt.Errorf("aead: invalid ciphertext encoding: %w", err)
	}
	tag, err := hex.DecodeString(raw.Tag)
	if err != nil {
		return fmt.Errorf("aead: invalid auth_tag encoding: %w", err)
	}

	e.Nonce = nonce
	e.Ciphertext = ciphertext
	e.Tag = tag
	e.Algorithm = raw.Algorithm
	return nil
}
