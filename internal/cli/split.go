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
	"github.com/jeremyhahn/go-quorum/pkg/shamir"
	"github.com/jeremyhahn/go-quorum/pkg/sharecode"
	"github.com/spf13/cobra"
)

// splitCmd splits a master secret into share tokens
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a master secret into share tokens",
	Long: `Split a master secret into N checksum-protected share tokens, any
T of which reconstruct it. Without --secret a fresh random secret is
generated and printed alongside the tokens.`,
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		threshold, _ := cmd.Flags().GetInt("threshold")
		total, _ := cmd.Flags().GetInt("shares")
		secretHex, _ := cmd.Flags().GetString("secret")

		var secret []byte
		var err error
		if secretHex != "" {
			secret, err = hex.DecodeString(secretHex)
			if err != nil {
				handleError(fmt.Errorf("invalid secret hex: %w", err))
				return
			}
		} else {
			secret, err = aead.GenerateKey(getConfig().KeySize)
			if err != nil {
				handleError(err)
				return
			}
			if err := printer.PrintSecret("Secret Key", hex.EncodeToString(secret)); err != nil {
				handleError(err)
				return
			}
		}

		printVerbose("Splitting %d byte secret into %d shares, threshold %d",
			len(secret), total, threshold)

		shares, err := shamir.Split(secret, threshold, total)
		if err != nil {
			handleError(err)
			return
		}

		tokens := make([]string, len(shares))
		for i, share := range shares {
			tokens[i], err = sharecode.Encode(share)
			if err != nil {
				handleError(err)
				return
			}
		}

		// The local copy is no longer needed once the tokens exist.
		for i := range secret {
			secret[i] = 0
		}

		if err := printer.PrintShareTokens(tokens, threshold); err != nil {
			handleError(err)
		}
	},
}

func init() {
	splitCmd.Flags().IntP("threshold", "t", 3, "minimum shares required to reconstruct")
	splitCmd.Flags().IntP("shares", "n", 5, "total shares to create")
	splitCmd.Flags().String("secret", "", "secret to split as hex (random if omitted)")
}
