// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-quorum/pkg/aead"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintShareTokens prints the tokens produced by a split
func (p *Printer) PrintShareTokens(tokens []string, threshold int) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"threshold": threshold,
			"total":     len(tokens),
			"tokens":    tokens,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Distributed shares (%d of %d required):\n", threshold, len(tokens))
		for i, token := range tokens {
			fmt.Fprintf(p.writer, "  %d: %s\n", i+1, token)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints a recovered or generated secret as hex
func (p *Printer) PrintSecret(label string, secretHex string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"secret": secretHex,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "%s: %s\n", label, secretHex)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintEnvelope prints a sealed envelope
func (p *Printer) PrintEnvelope(envelope *aead.Envelope) error {
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(p.writer, string(data))
	return nil
}

// PrintVotes prints decrypted votes per participant
func (p *Printer) PrintVotes(votes map[string]string, order []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(votes)
	case OutputFormatText:
		for _, participant := range order {
			fmt.Fprintf(p.writer, "%s voted for: %s\n", participant, votes[participant])
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"error": err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

// printJSON marshals and prints a value as indented JSON
func (p *Printer) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(p.writer, string(data))
	return nil
}
