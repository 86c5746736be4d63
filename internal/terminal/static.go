package terminal

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// BootSequence is shown one message per boot tick after power-on.
var BootSequence = []string{
	"GMT-BIOS v2.5.0 (c) GMTStudio",
	"Memory check: 65536K OK",
	"Loading kernel modules... done",
	"Mounting /dev/innovation... done",
	"Starting secure shell daemon... done",
	"System ready. Authentication required.",
}

// The credential puzzle. PuzzleCipher is Password enciphered with
// PuzzleKey; it is an Easter egg, not a secret.
const (
	PuzzleCipher = "OZGUHTZUHT"
	PuzzleKey    = "GMT"
	Password     = "INNOVATION"
)

// Static display text.
const (
	PuzzlePrompt = "Access code (Vigenère): " + PuzzleCipher
	PuzzleHint   = "Hint: the key is the studio's initials."
	WelcomeText  = "Welcome to GMTStudio Terminal. Type 'help' to see available commands."
	AboutText    = "GMTStudio Terminal v1.0 - Where Innovation Meets Excellence"
)

type commandSpec struct {
	usage   string
	summary string
}

var commandTable = []commandSpec{
	{"help", "Show this help"},
	{"clear", "Clear the terminal"},
	{"about", "About this terminal"},
	{"cd <directory>", "Change directory (try: cd hero)"},
	{"encode", "Show an encoded message"},
	{"decode", "Show decoder usage"},
	{"decode_binary <octets>", "Decode space-separated 8-bit binary"},
	{"decode_vigenere <ciphertext> <key>", "Decrypt a Vigenère ciphertext"},
}

// HelpText lists every command the interpreter understands.
var HelpText = "Available commands:\n" + strings.Join(lo.Map(commandTable, func(c commandSpec, _ int) string {
	return fmt.Sprintf("  %-36s %s", c.usage, c.summary)
}), "\n")

const (
	encodeText = "Encoded message: 01000111 01001101 01010100\n" +
		"Tip: feed those octets to decode_binary."
	decodeText = "Available decoders:\n" +
		"  decode_vigenere <ciphertext> <key>\n" +
		"  decode_binary <octets>"

	cdMissingText     = "cd: missing directory argument. Usage: cd <directory>"
	cdNoSuchDirFormat = "cd: no such directory: %s"
	navigatingFormat  = "Navigating to %s..."
	binaryUsageText   = "Usage: decode_binary <binary octets>"
	binaryInvalidText = "Invalid binary format"
	vigenereUsageText = "Usage: decode_vigenere <ciphertext> <key>"
	notFoundFormat    = "Command not found: %s"
)

// View names accepted by the Navigator.
const (
	ViewTerminal = "terminal"
	ViewHero     = "hero"
)

// HeroCard is one feature card on the hero view.
type HeroCard struct {
	Title   string
	Tagline string
	Detail  string
}

// Hero view content.
const (
	HeroTitle   = "GMTStudio"
	HeroTagline = "Where Innovation Meets Excellence"
	HeroBadge   = "A stylish Tech company"
	HeroBlurb   = "At GMTStudio, we are more than just a tech company; we are a team of passionate " +
		"individuals dedicated to pushing the boundaries of innovation."
)

// HeroCards are shown beneath the hero title.
var HeroCards = []HeroCard{
	{"Fast Performance", "Lightning quick responses", "Our platform is optimized for speed, ensuring you get the best performance."},
	{"Secure Platform", "Enterprise-grade security", "We prioritize your security with the latest encryption and security protocols."},
}

// HeroBanner renders the hero view as plain text.
func HeroBanner() string {
	lines := []string{HeroTitle, HeroTagline, "", HeroBadge, HeroBlurb, ""}
	for _, c := range HeroCards {
		lines = append(lines, fmt.Sprintf("[%s] %s", c.Title, c.Tagline))
	}
	return strings.Join(lines, "\n")
}
