// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jeremyhahn/go-quorum/pkg/aead"
	"github.com/spf13/cobra"
)

// sealCmd encrypts a payload under a key
var sealCmd = &cobra.Command{
	Use:   "seal <payload>",
	Short: "Seal a payload under a key",
	Long: `Encrypt and authenticate a payload under the given key, printing a
self-contained envelope of nonce, ciphertext and authentication tag.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		keyHex, _ := cmd.Flags().GetString("key")
		associated, _ := cmd.Flags().GetString("ad")

		key, err := hex.DecodeString(keyHex)
		if err != nil {
			handleError(fmt.Errorf("invalid key hex: %w", err))
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

		envelope, err := cipher.Seal([]byte(args[0]), ad)
		if err != nil {
			handleError(err)
			return
		}

		if err := printer.PrintEnvelope(envelope); err != nil {
			handleError(err)
		}
	},
}

func init() {
	sealCmd.Flags().StringP("key", "k", "", "key as hex (required)")
	sealCmd.Flags().String("ad", "", "associated data to bind the payload to (optional)")
	_ = sealCmd.MarkFlagRequired("key")
}
