package utils

import (
	"regexp"
	"slices"
	"strings"

	"github.com/fatih/color"
)

// Instruction signature highlighting colors
var (
	// Instruction names
	sigMnemonicColor = color.New(color.FgYellow, color.Bold)
	// Access prefixes (R:, W:, X[7:0]:)
	sigAccessColor = color.New(color.FgMagenta)
	// Immediates and literals
	sigImmediateColor = color.New(color.FgCyan)
	// Memory operands
	sigMemoryColor = color.New(color.FgGreen)
	// Decorators ({kz}, {er}, /b32)
	sigDecoratorColor = color.New(color.FgBlue)
	// Implicit operands
	sigImplicitColor = color.New(color.FgHiBlack)
	// Separators
	sigPunctColor = color.New(color.FgWhite)
)

var (
	sigMnemonicPattern  = regexp.MustCompile(`^\s*[A-Za-z_][A-Za-z0-9_.]*`)
	sigAccessPattern    = regexp.MustCompile(`\b[RWX](?:\[\d+:\d+\])?:`)
	sigImplicitPattern  = regexp.MustCompile(`<[^<>]*>`)
	sigDecoratorPattern = regexp.MustCompile(`\{(?:k|z|kz|er|sae)\}|/b\d+`)
	sigMemoryPattern    = regexp.MustCompile(`\[[^\]]*\]!?|\b(?:m\d+(?:fp|int|bcd|dec)?|moff\d+|vm\d+[xyz]|mem|mib)\b`)
	sigImmediatePattern = regexp.MustCompile(`#[A-Za-z0-9_+\-]*|\b(?:[iu](?:b|w|d|q|4)|rel\d+|imm\d+)\b|\b(?:0x[0-9A-Fa-f]+|\d+)\b`)
	sigPunctPattern     = regexp.MustCompile(`[,/{}!]`)
)

// token represents a syntax-highlighted token
type token struct {
	text  string
	color *color.Color
	start int
	end   int
}

// Applies syntax highlighting to an instruction signature (as printed by
// instruction records) and returns the colored string
func HighlightSignature(signature string) string {
	if signature == "" {
		return ""
	}

	var tokens []token

	add := func(pattern *regexp.Regexp, c *color.Color) {
		for _, match := range pattern.FindAllStringIndex(signature, -1) {
			if !overlapsAny(match[0], match[1], tokens) {
				tokens = append(tokens, token{
					text:  signature[match[0]:match[1]],
					color: c,
					start: match[0],
					end:   match[1],
				})
			}
		}
	}

	// Earlier patterns win, nothing inside an implicit operand gets another color
	add(sigMnemonicPattern, sigMnemonicColor)
	add(sigImplicitPattern, sigImplicitColor)
	add(sigAccessPattern, sigAccessColor)
	add(sigDecoratorPattern, sigDecoratorColor)
	add(sigMemoryPattern, sigMemoryColor)
	add(sigImmediatePattern, sigImmediateColor)
	add(sigPunctPattern, sigPunctColor)

	return buildHighlightedString(signature, tokens)
}

// overlapsAny checks if a range overlaps with any existing token
func overlapsAny(start, end int, tokens []token) bool {
	for _, t := range tokens {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// buildHighlightedString constructs the final string with color codes
func buildHighlightedString(text string, tokens []token) string {
	if len(tokens) == 0 {
		return text
	}

	slices.SortFunc(tokens, func(a, b token) int {
		return a.start - b.start
	})

	var result strings.Builder
	pos := 0

	for _, t := range tokens {
		if t.start > pos {
			result.WriteString(text[pos:t.start])
		}
		result.WriteString(t.color.Sprint(t.text))
		pos = t.end
	}

	if pos < len(text) {
		result.WriteString(text[pos:])
	}

	return result.String()
}
