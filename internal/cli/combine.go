// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package cli

import (
	"encoding/hex"
	"os"

	"github.com/jeremyhahn/go-quorum/pkg/quorum"
	"github.com/spf13/cobra"
)

// combineCmd reconstructs a secret from share tokens
var combineCmd = &cobra.Command{
	Use:   "combine <token> [token...]",
	Short: "Reconstruct a secret from share tokens",
	Long: `Reconstruct a master secret from a quorum of share tokens. Tokens
are validated individually; a mistyped token is reported with its
position so the holder can re-read it.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		session := quorum.NewSession(getLogger())
		for i, token := range args {
			if err := session.AddToken(token); err != nil {
				printVerbose("Token %d rejected: %v", i+1, err)
				handleError(err)
				return
			}
		}

		secret, err := session.Reconstruct()
		if err != nil {
			handleError(err)
			return
		}
		defer session.Wipe()

		if err := printer.PrintSecret("Reconstructed Secret Key", hex.EncodeToString(secret)); err != nil {
			handleError(err)
		}
	},
}
