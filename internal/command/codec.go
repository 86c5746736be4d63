package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/gmtstudio/gmt-terminal/internal/codec"
)

// DecodeCommand exposes the terminal decoders outside the terminal.
type DecodeCommand struct {
	*BaseCommand
}

// NewDecodeCommand creates a new decode command.
func NewDecodeCommand() *DecodeCommand {
	return &DecodeCommand{
		BaseCommand: NewBaseCommand(
			"decode",
			"Decode binary octets or a Vigenère ciphertext",
			"decode binary <octet>... | decode vigenere <ciphertext> <key>",
		),
	}
}

// Execute decodes and prints the result.
func (c *DecodeCommand) Execute(ctx context.Context, args []string, s Streams) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	switch args[0] {
	case "binary":
		text, err := codec.DecodeBinary(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.Stdout, text)
		return err
	case "vigenere":
		if len(args) != 3 {
			return fmt.Errorf("usage: decode vigenere <ciphertext> <key>")
		}
		_, err := fmt.Fprintln(s.Stdout, codec.DecryptVigenere(args[1], args[2]))
		return err
	default:
		return fmt.Errorf("unknown decoder: %s", args[0])
	}
}

// EncodeCommand produces puzzle inputs for the decoders.
type EncodeCommand struct {
	*BaseCommand
}

// NewEncodeCommand creates a new encode command.
func NewEncodeCommand() *EncodeCommand {
	return &EncodeCommand{
		BaseCommand: NewBaseCommand(
			"encode",
			"Encode text as binary octets or a Vigenère ciphertext",
			"encode binary <text>... | encode vigenere <plaintext> <key>",
		),
	}
}

// Execute encodes and prints the result.
func (c *EncodeCommand) Execute(ctx context.Context, args []string, s Streams) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	switch args[0] {
	case "binary":
		if len(args) < 2 {
			return fmt.Errorf("usage: encode binary <text>...")
		}
		octets, err := codec.EncodeBinary(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.Stdout, octets)
		return err
	case "vigenere":
		if len(args) != 3 {
			return fmt.Errorf("usage: encode vigenere <plaintext> <key>")
		}
		_, err := fmt.Fprintln(s.Stdout, codec.EncryptVigenere(args[1], args[2]))
		return err
	default:
		return fmt.Errorf("unknown encoder: %s", args[0])
	}
}
