// Package components implements the opcode grammar of variable length
// instruction sets: a whitespace separated list of prefix, escape, opcode,
// ModRM, immediate and displacement tokens.
package components

import (
	"regexp"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/samber/lo"
)

var (
	vectorPrefix = regexp.MustCompile(`^(VEX|XOP|EVEX)\.`)
	opcodeByte   = regexp.MustCompile(`^([0-9A-F]{2})(\+[ri])?$`)
	modrm        = regexp.MustCompile(`^/([r0-7])$`)
)

var immediateSizes = map[string]int{
	"ib":   8,
	"iw":   16,
	"id":   32,
	"iq":   64,
	"is4":  8,
	"/is4": 8,
}

var displacementSizes = map[string]int{
	"cb": 8,
	"cw": 16,
	"cd": 32,
}

var vectorLengths = map[string]VectorLength{
	"LIG": VectorLength_Ignored,
	"128": VectorLength_128,
	"L0":  VectorLength_128,
	"LZ":  VectorLength_128,
	"256": VectorLength_256,
	"L1":  VectorLength_256,
	"512": VectorLength_512,
}

var widths = map[string]Width{
	"WIG": Width_Ignored,
	"W0":  Width_W0,
	"W1":  Width_W1,
}

var vectorOperands = map[string]VectorOperand{
	"NDS": VectorOperand_NDS,
	"NDD": VectorOperand_NDD,
	"DDS": VectorOperand_DDS,
}

var vectorEscapeMaps = []string{"0F", "0F38", "0F3A", "M8", "M9", "MAP5", "MAP6"}

var mandatoryPrefixes = []string{"66", "F2", "F3"}

// Returns the set of prefix bytes that select a legacy escape map
func legacyEscapeMaps() []string {
	return []string{"0F", "0F38", "0F3A"}
}

// Scanning state shared by the legacy rules while parsing one opcode
type State struct {
	Opcode *Opcode
	Tokens []string
	// Index of the token being classified
	Index int
	diag  *diagnostics.Diagnostics
}

// Returns the token preceding the current one, empty for the first token
func (s *State) Previous() string {
	if s.Index == 0 {
		return ""
	}

	return s.Tokens[s.Index-1]
}

// Returns true if the current token is the last one
func (s *State) Last() bool {
	return s.Index == len(s.Tokens)-1
}

// Classification rule for one opcode token. Rules are evaluated in order and
// the first one whose Match returns true consumes the token.
type LegacyRule struct {
	Name  string
	Match func(s *State, token string) bool
	Apply func(s *State, token string)
}

// Ordered token classification rules. Order matters: several token shapes
// (0F, 01, 66) have different meanings depending on what came before.
var LegacyRules = []LegacyRule{
	{
		Name: "fwait",
		Match: func(s *State, token string) bool {
			return token == "9B" && s.Index == 0 && !s.Last()
		},
		Apply: func(s *State, token string) {
			s.Opcode.FWait = true
			s.Opcode.Prefix = PrefixClass_FPU
		},
	},
	{
		Name: "width",
		Match: func(s *State, token string) bool {
			return token == "REX.W"
		},
		Apply: func(s *State, token string) {
			s.Opcode.Width = Width_W1
		},
	},
	{
		Name: "mandatory-prefix",
		Match: func(s *State, token string) bool {
			return lo.Contains(mandatoryPrefixes, token) && s.Opcode.EscapeMap == "" && !s.Opcode.HasOpcode()
		},
		Apply: func(s *State, token string) {
			if s.Opcode.MandatoryPrefix != "" {
				s.diag.Reportf("opcode '%v' has more than one mandatory prefix (%v, %v)", s.Opcode.Text, s.Opcode.MandatoryPrefix, token)
			}
			s.Opcode.MandatoryPrefix = token
		},
	},
	{
		Name: "3dnow",
		Match: func(s *State, token string) bool {
			return token == "0F" && s.Previous() == "0F" && s.Opcode.EscapeMap == "0F"
		},
		Apply: func(s *State, token string) {
			s.Opcode.Prefix = PrefixClass_3DNow
			s.Opcode.EscapeMap = "0F0F"
		},
	},
	{
		Name: "escape-map",
		Match: func(s *State, token string) bool {
			if s.Opcode.HasOpcode() {
				return false
			}

			if s.Opcode.EscapeMap == "" {
				return lo.Contains(legacyEscapeMaps(), token)
			}

			return s.Opcode.EscapeMap == "0F" && s.Previous() == "0F" && lo.Contains([]string{"38", "3A", "01"}, token)
		},
		Apply: func(s *State, token string) {
			s.Opcode.EscapeMap += token
		},
	},
	{
		Name: "opcode",
		Match: func(s *State, token string) bool {
			return opcodeByte.MatchString(token)
		},
		Apply: func(s *State, token string) {
			match := opcodeByte.FindStringSubmatch(token)
			opcode := s.Opcode

			switch {
			case !opcode.HasOpcode():
				opcode.Byte = match[1]
			case match[1] == "67" && !opcode.AddressOverride:
				opcode.AddressOverride = true
				return
			case opcode.Byte == "67" && !opcode.AddressOverride:
				opcode.AddressOverride = true
				opcode.Byte = match[1]
			default:
				s.diag.Reportf("opcode '%v' has a second opcode byte '%v'", opcode.Text, token)
				return
			}

			opcode.EmbedsRegister = match[2] != ""

			if opcode.Prefix == PrefixClass_None && opcode.EscapeMap == "" && opcode.Byte >= "D8" && opcode.Byte <= "DF" {
				opcode.Prefix = PrefixClass_FPU
			}
		},
	},
	{
		Name: "modrm",
		Match: func(s *State, token string) bool {
			return modrm.MatchString(token)
		},
		Apply: func(s *State, token string) {
			if s.Opcode.ModRM != "" {
				s.diag.Reportf("opcode '%v' has more than one ModRM marker", s.Opcode.Text)
			}
			s.Opcode.ModRM = token[1:]
		},
	},
	{
		Name: "immediate",
		Match: func(s *State, token string) bool {
			_, isImmediate := immediateSizes[token]
			return isImmediate
		},
		Apply: func(s *State, token string) {
			s.Opcode.ImmediateBits += immediateSizes[token]
			s.Opcode.Is4 = s.Opcode.Is4 || strings.HasSuffix(token, "is4")
		},
	},
	{
		Name: "displacement",
		Match: func(s *State, token string) bool {
			_, isDisplacement := displacementSizes[token]
			return isDisplacement
		},
		Apply: func(s *State, token string) {
			s.Opcode.DisplacementBits += displacementSizes[token]
		},
	},
}

// Parses an opcode string. Unknown tokens and a missing opcode byte are
// reported to diag.
func Parse(text string, diag *diagnostics.Diagnostics) *Opcode {
	state := &State{
		Opcode: &Opcode{Text: text},
		Tokens: strings.Fields(text),
		diag:   diag,
	}

	if len(state.Tokens) > 0 && vectorPrefix.MatchString(state.Tokens[0]) {
		parseVectorPrefix(state.Opcode, state.Tokens[0], diag)
		state.Index = 1
	}

	for ; state.Index < len(state.Tokens); state.Index++ {
		token := state.Tokens[state.Index]

		rule, found := lo.Find(LegacyRules, func(rule LegacyRule) bool {
			return rule.Match(state, token)
		})

		if found {
			rule.Apply(state, token)
		} else {
			diag.Reportf("unknown token '%v' in opcode '%v'", token, text)
		}
	}

	opcode := state.Opcode

	if !opcode.HasOpcode() && strings.HasSuffix(opcode.EscapeMap, "0F01") {
		opcode.Byte = "01"
		opcode.EscapeMap = strings.TrimSuffix(opcode.EscapeMap, "01")
	}

	if !opcode.HasOpcode() {
		diag.Reportf("opcode '%v' has no opcode byte", text)
	}

	return opcode
}

// Dissects a VEX.*, XOP.* or EVEX.* token
func parseVectorPrefix(opcode *Opcode, token string, diag *diagnostics.Diagnostics) {
	parts := strings.Split(token, ".")

	switch parts[0] {
	case "VEX":
		opcode.Prefix = PrefixClass_VEX
	case "XOP":
		opcode.Prefix = PrefixClass_XOP
	case "EVEX":
		opcode.Prefix = PrefixClass_EVEX
	}

	for _, part := range parts[1:] {
		if vectorOperand, ok := vectorOperands[part]; ok {
			opcode.VectorOperand = vectorOperand
		} else if length, ok := vectorLengths[part]; ok {
			opcode.VectorLength = length
		} else if width, ok := widths[part]; ok {
			opcode.Width = width
		} else if lo.Contains(mandatoryPrefixes, part) {
			opcode.MandatoryPrefix = part
		} else if lo.Contains(vectorEscapeMaps, part) {
			opcode.EscapeMap = part
		} else if part != "P0" && part != "NP" {
			diag.Reportf("unknown %v field '%v' in opcode '%v'", parts[0], part, opcode.Text)
		}
	}
}
