// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jeremyhahn/go-quorum/pkg/aead"
	"github.com/spf13/cobra"
)

// openCmd decrypts a sealed envelope
var openCmd = &cobra.Command{
	Use:   "open [envelope-json]",
	Short: "Open a sealed envelope",
	Long: `Verify and decrypt a sealed envelope under the given key. The
envelope is read from the argument, or from stdin when omitted.
Authentication failures are reported as such; a tampered envelope never
yields plaintext.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyHex, _ := cmd.Flags().GetString("key")
		associated, _ := cmd.Flags().GetString("ad")

		key, err := hex.DecodeString(keyHex)
		if err != nil {
			handleError(fmt.Errorf("invalid key hex: %w", err))
			return
		}

		var raw []byte
		if len(args) == 1 {
			raw = []byte(args[0])
		} else {
			raw, err = io.ReadAll(os.Stdin)
			if err != nil {
				handleError(fmt.Errorf("failed to read envelope from stdin: %w", err))
				return
			}
		}

		var envelope aead.Envelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			handleError(fmt.Errorf("invalid envelope: %w", err))
			return
		}

		cipher, err := aead.New(key, getConfig().Algorithm())
		if err != nil {
			handleError(err)
			return
		}

		var ad []byte
		if associated != "" {
			ad = []byte(associated)
		}

		plaintext, err := cipher.Open(&envelope, ad)
		if err != nil {
			handleError(err)
			return
		}

		fmt.Println(string(plaintext))
	},
}

func init() {
	openCmd.Flags().StringP("key", "k", "", "key as hex (required)")
	openCmd.Flags().String("ad", "", "associated data the payload was bound to (optional)")
	_ = openCmd.MarkFlagRequired("key")
}
