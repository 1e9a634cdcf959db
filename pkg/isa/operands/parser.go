// Package operands implements the operand grammar of the instruction tables:
// one operand token becomes one Operand with all its alternative forms.
package operands

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/tokenizer"
)

var (
	accessPrefix = regexp.MustCompile(`^(R|W|X)(?:\[(\d+):(\d+)\])?:(.*)$`)
	broadcast    = regexp.MustCompile(`^(.*)/b(\d+)$`)
	literal      = regexp.MustCompile(`^-?(?:0x[0-9A-Fa-f]+|\d+)$`)

	x86Relative  = regexp.MustCompile(`^rel(8|16|32)$`)
	x86Immediate = regexp.MustCompile(`^([iu])(b|w|d|q|4)$`)
	x86Memory    = regexp.MustCompile(`^m(8|16|32|48|64|80|128|256|384|512)(fp|int|bcd|dec)?$`)
	x86Offset    = regexp.MustCompile(`^moff(8|16|32|64)$`)
	x86Vector    = regexp.MustCompile(`^vm(32|64)([xyz])$`)
	x86Segment   = regexp.MustCompile(`^(es|cs|ss|ds|fs|gs):(.+)$`)

	armRelative  = regexp.MustCompile(`^#Rel[A-Za-z]*(\d*)$`)
	armImmediate = regexp.MustCompile(`^#([A-Za-z][A-Za-z0-9]*)$`)
	armRegister  = regexp.MustCompile(`^([RSDQVXW])([a-z][A-Za-z0-9]*)((?:!=[A-Za-z0-9]+)*)(\.[A-Za-z0-9]+)?(\[[^\]]*\])?$`)
	armMemory    = regexp.MustCompile(`^\[(.*)\](\{!\}|!)?$`)
)

var immediateSizes = map[string]int{
	"b": 8,
	"w": 16,
	"d": 32,
	"q": 64,
	"4": 4,
}

var vectorSizes = map[string]int{
	"x": 128,
	"y": 256,
	"z": 512,
}

type armRegisterFile struct {
	kind dictionary.RegisterKind
	bits int
}

var armRegisterFiles = map[string]armRegisterFile{
	"R": {dictionary.RegisterKind_GP, 32},
	"W": {dictionary.RegisterKind_GP, 32},
	"X": {dictionary.RegisterKind_GP, 64},
	"S": {dictionary.RegisterKind_FP, 32},
	"D": {dictionary.RegisterKind_FP, 64},
	"Q": {dictionary.RegisterKind_Vector, 128},
	"V": {dictionary.RegisterKind_Vector, 128},
}

var decorators = map[string]func(*Operand){
	"{k}":   func(o *Operand) { o.Mask = true },
	"{z}":   func(o *Operand) { o.Zeroing = true },
	"{kz}":  func(o *Operand) { o.Mask, o.Zeroing = true, true },
	"{er}":  func(o *Operand) { o.Rounding = true },
	"{sae}": func(o *Operand) { o.SAE = true },
}

// Parses one operand token. Problems with the operand contents are reported
// to diag. If none of the alternatives of the operand could be classified the
// operand is dropped and nil is returned. The returned error is only set for
// malformed bracket syntax.
func Parse(cfg *dictionary.Config, token string, diag *diagnostics.Diagnostics) (*Operand, error) {
	token = strings.TrimSpace(token)
	operand := &Operand{Spelling: token}
	body := token

	if match := accessPrefix.FindStringSubmatch(body); match != nil {
		operand.Access = parseAccess(match[1], match[2], match[3])
		body = match[4]
	}

	fields, err := tokenizer.Fields(body)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		diag.Reportf("operand '%v' has no forms", token)
		return nil, nil
	}

	body = fields[0]
	for _, decorator := range fields[1:] {
		if apply, known := decorators[decorator]; known {
			apply(operand)
		} else {
			diag.Reportf("unknown decorator '%v' in operand '%v'", decorator, token)
		}
	}

	if match := broadcast.FindStringSubmatch(body); match != nil {
		operand.Broadcast, _ = strconv.Atoi(match[2])
		body = match[1]
	}

	if unwrapped, ok := unwrap(body, '<'); ok {
		operand.Implicit = true
		body = unwrapped
	} else if unwrapped, ok := unwrap(body, '{'); ok {
		operand.Optional = true
		body = unwrapped
	}

	alternatives, err := tokenizer.SplitOutside(body, '/')
	if err != nil {
		return nil, err
	}

	for _, alternative := range alternatives {
		alternative = strings.TrimSpace(alternative)

		if alternative == "" {
			diag.Reportf("empty alternative in operand '%v'", token)
			continue
		}

		form := classify(cfg, alternative, diag)
		if form == nil {
			diag.Reportf("unknown operand form '%v' in '%v'", alternative, token)
			continue
		}

		operand.forms = append(operand.forms, form)
	}

	if len(operand.forms) == 0 {
		diag.Reportf("operand '%v' dropped, no known forms", token)
		return nil, nil
	}

	checkImplicit(operand, diag)
	return operand, nil
}

// Parses a comma separated operand list. Operands that could not be
// classified are dropped (see Parse). The returned error is only set for
// malformed list syntax.
func ParseList(cfg *dictionary.Config, text string, diag *diagnostics.Diagnostics) ([]*Operand, error) {
	tokens, err := tokenizer.SplitTopLevel(text)
	if err != nil {
		return nil, err
	}

	result := make([]*Operand, 0, len(tokens))

	for _, token := range tokens {
		operand, err := Parse(cfg, token, diag)
		if err != nil {
			return nil, err
		}

		if operand != nil {
			result = append(result, operand)
		}
	}

	return result, nil
}

func parseAccess(mode, hi, lo string) Access {
	access := Access{}

	switch mode {
	case "R":
		access.Mode = AccessMode_Read
	case "W":
		access.Mode = AccessMode_Write
	case "X":
		access.Mode = AccessMode_ReadWrite
	}

	if hi != "" {
		h, _ := strconv.Atoi(hi)
		l, _ := strconv.Atoi(lo)
		access.Range = &BitRange{Hi: h, Lo: l}
	}

	return access
}

// Returns the contents of s if s is entirely wrapped by the given delimiter pair
func unwrap(s string, open byte) (string, bool) {
	if len(s) < 2 || s[0] != open {
		return s, false
	}

	if tokenizer.MatchClosingChar(s, 0) != len(s)-1 {
		return s, false
	}

	return s[1 : len(s)-1], true
}

func checkImplicit(operand *Operand, diag *diagnostics.Diagnostics) {
	if operand.isLiteral() {
		operand.Implicit = true
		return
	}

	if !operand.Implicit {
		return
	}

	for _, f := range operand.forms {
		switch f := f.(type) {
		case *MemoryForm:
			diag.Reportf("implicit operand '%v' has memory form '%v'", operand.Spelling, f.Spelling)
		case *ImmediateForm:
			if !f.IsLiteral() {
				diag.Reportf("implicit operand '%v' has immediate form '%v'", operand.Spelling, f.Spelling)
			}
		}
	}
}

func classify(cfg *dictionary.Config, alternative string, diag *diagnostics.Diagnostics) Form {
	if literal.MatchString(alternative) {
		return parseLiteral(alternative, alternative)
	}

	if register, known := cfg.Register(alternative); known {
		return &RegisterForm{
			Spelling: alternative,
			Class:    register.Kind,
			Bits:     register.Bits,
			Fixed:    register.Fixed,
		}
	}

	switch cfg.Architecture() {
	case dictionary.Architecture_X86:
		return classifyX86(cfg, alternative, diag)
	case dictionary.Architecture_ARM:
		return classifyARM(cfg, alternative, diag)
	}

	panic("unreachable")
}

func parseLiteral(spelling, value string) Form {
	parsed, err := strconv.ParseInt(value, 0, 64)
	if err != nil {
		return nil
	}

	return &ImmediateForm{
		Spelling: spelling,
		Value:    &parsed,
	}
}

func classifyX86(cfg *dictionary.Config, alternative string, diag *diagnostics.Diagnostics) Form {
	if match := x86Relative.FindStringSubmatch(alternative); match != nil {
		bits, _ := strconv.Atoi(match[1])
		return &RelativeForm{Spelling: alternative, Bits: bits}
	}

	if match := x86Immediate.FindStringSubmatch(alternative); match != nil {
		return &ImmediateForm{
			Spelling: alternative,
			Bits:     immediateSizes[match[2]],
			Signed:   match[1] == "i",
		}
	}

	if match := x86Memory.FindStringSubmatch(alternative); match != nil {
		bits, _ := strconv.Atoi(match[1])
		return &MemoryForm{Spelling: alternative, Bits: bits, Type: match[2]}
	}

	if match := x86Offset.FindStringSubmatch(alternative); match != nil {
		bits, _ := strconv.Atoi(match[1])
		return &MemoryForm{Spelling: alternative, Bits: bits, Offset: true}
	}

	if match := x86Vector.FindStringSubmatch(alternative); match != nil {
		elementBits, _ := strconv.Atoi(match[1])
		return &MemoryForm{
			Spelling: alternative,
			Vector: &VectorIndex{
				Register:    match[2] + "mm",
				Bits:        vectorSizes[match[2]],
				ElementBits: elementBits,
			},
		}
	}

	if alternative == "mem" || alternative == "mib" {
		return &MemoryForm{Spelling: alternative}
	}

	if match := x86Segment.FindStringSubmatch(alternative); match != nil {
		switch inner := classify(cfg, match[2], diag).(type) {
		case *MemoryForm:
			inner.Spelling = alternative
			inner.Segment = match[1]
			return inner
		case *RegisterForm:
			// es:zdi style string operands address memory through the register
			return &MemoryForm{Spelling: alternative, Segment: match[1], Base: inner}
		}

		return nil
	}

	if inner, ok := unwrap(alternative, '['); ok {
		// A nil *MemoryForm must not leak out as a non-nil Form
		if memory := parseBracketedMemory(cfg, alternative, inner, diag); memory != nil {
			return memory
		}
	}

	return nil
}

func classifyARM(cfg *dictionary.Config, alternative string, diag *diagnostics.Diagnostics) Form {
	if match := armRelative.FindStringSubmatch(alternative); match != nil {
		bits, _ := strconv.Atoi(match[1])
		return &RelativeForm{Spelling: alternative, Bits: bits}
	}

	if strings.HasPrefix(alternative, "#") && literal.MatchString(alternative[1:]) {
		return parseLiteral(alternative, alternative[1:])
	}

	if match := armImmediate.FindStringSubmatch(alternative); match != nil {
		return &ImmediateForm{Spelling: alternative, Name: match[1]}
	}

	if match := armMemory.FindStringSubmatch(alternative); match != nil {
		memory := parseBracketedMemory(cfg, alternative, match[1], diag)
		if memory == nil {
			return nil
		}

		memory.Writeback = match[2] == "!"
		memory.WritebackOptional = match[2] == "{!}"
		return memory
	}

	if match := armRegister.FindStringSubmatch(alternative); match != nil {
		file := armRegisterFiles[match[1]]
		register := &RegisterForm{
			Spelling: alternative,
			Class:    file.kind,
			Bits:     file.bits,
			Element:  strings.TrimPrefix(match[4], "."),
		}

		if match[3] != "" {
			register.Exclude = strings.Split(strings.TrimPrefix(match[3], "!="), "!=")
		}
		if match[5] != "" {
			register.Lane = match[5][1 : len(match[5])-1]
		}

		return register
	}

	return nil
}

// Parses the contents of a bracketed memory operand: a base register followed
// by offset components
func parseBracketedMemory(cfg *dictionary.Config, spelling, inner string, diag *diagnostics.Diagnostics) *MemoryForm {
	components, err := tokenizer.SplitTopLevel(inner)
	if err != nil || len(components) == 0 {
		diag.Reportf("malformed memory operand '%v'", spelling)
		return nil
	}

	base, isRegister := classify(cfg, components[0], diag).(*RegisterForm)
	if !isRegister {
		diag.Reportf("memory operand '%v' has no base register", spelling)
		return nil
	}

	memory := &MemoryForm{Spelling: spelling, Base: base}

	for _, component := range components[1:] {
		// Offset sign is chosen at assembly time
		component = strings.TrimLeft(strings.TrimPrefix(component, "+/-"), "+-")

		form := classify(cfg, component, diag)
		if form == nil {
			diag.Reportf("unknown offset '%v' in memory operand '%v'", component, spelling)
			continue
		}

		memory.Components = append(memory.Components, form)
	}

	return memory
}
