package components

import (
	"fmt"
	"strings"
)

// Encoding family of a variable length instruction
type PrefixClass uint

const (
	PrefixClass_None PrefixClass = iota
	// 0F 0F escape, the opcode byte follows the operands
	PrefixClass_3DNow
	PrefixClass_VEX
	PrefixClass_XOP
	PrefixClass_EVEX
	// x87 escape opcodes D8-DF, optionally preceded by a 9B wait
	PrefixClass_FPU
	TOTAL_PREFIX_CLASSES
)

func (p PrefixClass) String() string {
	switch p {
	case PrefixClass_None:
		return "none"
	case PrefixClass_3DNow:
		return "3DNow"
	case PrefixClass_VEX:
		return "VEX"
	case PrefixClass_XOP:
		return "XOP"
	case PrefixClass_EVEX:
		return "EVEX"
	case PrefixClass_FPU:
		return "FPU"
	}

	panic("unreachable")
}

type VectorLength uint

const (
	VectorLength_None VectorLength = iota
	// LIG, the instruction ignores VEX.L
	VectorLength_Ignored
	VectorLength_128
	VectorLength_256
	VectorLength_512
)

func (l VectorLength) String() string {
	switch l {
	case VectorLength_None:
		return ""
	case VectorLength_Ignored:
		return "LIG"
	case VectorLength_128:
		return "128"
	case VectorLength_256:
		return "256"
	case VectorLength_512:
		return "512"
	}

	panic("unreachable")
}

// Operand size promotion (REX.W / VEX.W)
type Width uint

const (
	Width_None Width = iota
	// WIG, the instruction ignores W
	Width_Ignored
	Width_W0
	Width_W1
)

func (w Width) String() string {
	switch w {
	case Width_None:
		return ""
	case Width_Ignored:
		return "WIG"
	case Width_W0:
		return "W0"
	case Width_W1:
		return "W1"
	}

	panic("unreachable")
}

// Role of the operand encoded in VEX.vvvv
type VectorOperand uint

const (
	VectorOperand_None VectorOperand = iota
	// Non destructive source
	VectorOperand_NDS
	// Non destructive destination
	VectorOperand_NDD
	// Destination and second source
	VectorOperand_DDS
)

func (v VectorOperand) String() string {
	switch v {
	case VectorOperand_None:
		return ""
	case VectorOperand_NDS:
		return "NDS"
	case VectorOperand_NDD:
		return "NDD"
	case VectorOperand_DDS:
		return "DDS"
	}

	panic("unreachable")
}

// Parsed opcode of a variable length instruction
type Opcode struct {
	// Opcode as written in the table
	Text            string
	Prefix          PrefixClass
	VectorLength    VectorLength
	Width           Width
	VectorOperand   VectorOperand
	MandatoryPrefix string
	EscapeMap       string
	// Opcode byte as two uppercase hex digits, empty if none was found
	Byte string
	// The low 3 bits of the opcode byte encode a register (+r, +i)
	EmbedsRegister bool
	// "r" if ModRM.reg holds a register operand, the digit of the opcode extension otherwise. Empty if there is no ModRM byte.
	ModRM string
	// Sum of the sizes of all the immediates, in bits
	ImmediateBits int
	// Size of the displacement, in bits
	DisplacementBits int
	// A 67 byte precedes the opcode
	AddressOverride bool
	// A 9B wait precedes the instruction
	FWait bool
	// The last immediate encodes a register in its upper 4 bits
	Is4 bool
}

// Returns true if an opcode byte was found
func (o *Opcode) HasOpcode() bool {
	return o.Byte != ""
}

// Returns a canonical, space separated rendering of the opcode
func (o *Opcode) String() string {
	var parts []string

	switch o.Prefix {
	case PrefixClass_VEX, PrefixClass_XOP, PrefixClass_EVEX:
		head := []string{o.Prefix.String()}
		for _, part := range []string{o.VectorOperand.String(), o.VectorLength.String(), o.MandatoryPrefix, o.EscapeMap, o.Width.String()} {
			if part != "" {
				head = append(head, part)
			}
		}
		parts = append(parts, strings.Join(head, "."))
	default:
		if o.FWait {
			parts = append(parts, "9B")
		}
		if o.AddressOverride {
			parts = append(parts, "67")
		}
		if o.MandatoryPrefix != "" {
			parts = append(parts, o.MandatoryPrefix)
		}
		if o.Width == Width_W1 {
			parts = append(parts, "REX.W")
		}
		if o.EscapeMap != "" {
			parts = append(parts, o.EscapeMap)
		}
	}

	if o.Byte != "" && o.Prefix != PrefixClass_3DNow {
		parts = append(parts, o.opcodeByte())
	}
	if o.ModRM != "" {
		parts = append(parts, "/"+o.ModRM)
	}
	if o.Prefix == PrefixClass_3DNow && o.Byte != "" {
		parts = append(parts, o.opcodeByte())
	}
	if o.ImmediateBits != 0 {
		parts = append(parts, fmt.Sprintf("imm%v", o.ImmediateBits))
	}
	if o.DisplacementBits != 0 {
		parts = append(parts, fmt.Sprintf("disp%v", o.DisplacementBits))
	}

	return strings.Join(parts, " ")
}

func (o *Opcode) opcodeByte() string {
	if o.EmbedsRegister {
		return o.Byte + "+r"
	}

	return o.Byte
}
