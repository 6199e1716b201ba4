// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jeremyhahn/go-quorum/pkg/aead"
	"github.com/jeremyhahn/go-quorum/pkg/ballot"
	"github.com/jeremyhahn/go-quorum/pkg/quorum"
	"github.com/jeremyhahn/go-quorum/pkg/registry"
	"github.com/jeremyhahn/go-quorum/pkg/shamir"
	"github.com/jeremyhahn/go-quorum/pkg/sharecode"
	"github.com/spf13/cobra"
)

// demoCmd runs the full sealed-ballot ceremony end to end
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sealed-ballot ceremony end to end",
	Long: `Run the complete ceremony with the configured voters: generate a
master key, split it so that every voter must be present to reconstruct
it, seal a random vote per voter, then collect every share, reconstruct
the key and decrypt all votes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDemo(); err != nil {
			handleError(err)
		}
	},
}

func runDemo() error {
	cfg := getConfig()
	voters := cfg.Voters

	// Generation of the master key.
	key, err := aead.GenerateKey(cfg.KeySize)
	if err != nil {
		return err
	}
	fmt.Printf("Secret Key: %s\n", hex.EncodeToString(key))

	// Split the key so every voter holds one share and all are required.
	shares, err := shamir.Split(key, len(voters), len(voters))
	if err != nil {
		return err
	}

	// Associate the voters with their shares.
	reg := registry.NewInMemory()
	defer func() { _ = reg.Close() }()

	fmt.Println("\nDistributed Shares:")
	for i, voter := range voters {
		token, err := sharecode.Encode(shares[i])
		if err != nil {
			return err
		}
		if err := reg.Assign(voter, token); err != nil {
			return err
		}
		fmt.Printf("\t%s: %s\n", voter, token)
	}

	// Every voter seals a vote under the master key.
	cipher, err := aead.New(key, cfg.Algorithm())
	if err != nil {
		return err
	}
	box := ballot.NewBox(cipher)

	for _, voter := range voters {
		choice, err := randomChoice()
		if err != nil {
			return err
		}
		if err := box.Cast(voter, []byte(choice)); err != nil {
			return err
		}
		fmt.Printf("%s has voted\n", voter)
	}

	transcript, err := box.Transcript()
	if err != nil {
		return err
	}
	fmt.Printf("\nEncrypted Votes:\n%s\n", transcript)

	// Collect every share and reconstruct the key.
	session := quorum.NewSession(getLogger())
	defer session.Wipe()
	for _, voter := range voters {
		token, err := reg.Token(voter)
		if err != nil {
			return err
		}
		if err := session.AddToken(token); err != nil {
			return err
		}
	}

	reconstructed, err := session.Reconstruct()
	if err != nil {
		return fmt.Errorf("key reconstruction failed: %w", err)
	}
	fmt.Println("\nSuccessfully Reconstructed Secret Key")

	// Decrypt every vote with the reconstructed key.
	tallyCipher, err := aead.New(reconstructed, cfg.Algorithm())
	if err != nil {
		return err
	}
	votes, err := box.Unseal(tallyCipher)
	if err != nil {
		return err
	}

	fmt.Println("\nDecrypted Votes:")
	printer := NewPrinter(cfg.OutputFormat, os.Stdout)
	return printer.PrintVotes(votes, voters)
}

// randomChoice picks Red or Blue with a coin flip.
func randomChoice() (string, error) {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	if b[0]%2 == 0 {
		return "Red", nil
	}
	return "Blue", nil
}
