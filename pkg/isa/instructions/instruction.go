// Package instructions turns fixture entries into instruction records, one
// record per alias of the entry.
package instructions

import (
	"fmt"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/metadata"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/bitfields"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/components"
	"github.com/Manu343726/isadb/pkg/isa/operands"
)

// Parsed opcode of an instruction. Either a *bitfields.Template or a *components.Opcode.
type Opcode interface {
	String() string
}

// Compiled instruction variant. Records created from the same fixture entry
// share operands, opcode and metadata, which must be treated as read only.
type Instruction struct {
	Name         string
	Architecture dictionary.Architecture
	Encoding     string
	// Operand list as written in the fixture
	OperandsText string
	// Opcode as written in the fixture
	OpcodeText string
	Operands   []*operands.Operand
	// Nil if the fixture has no opcode
	Opcode   Opcode
	Metadata *metadata.Metadata

	diagnostics *diagnostics.Diagnostics
}

// Returns the bit template of fixed width instructions, nil otherwise
func (i *Instruction) Template() *bitfields.Template {
	template, _ := i.Opcode.(*bitfields.Template)
	return template
}

// Returns the opcode components of variable length instructions, nil otherwise
func (i *Instruction) Components() *components.Opcode {
	opcode, _ := i.Opcode.(*components.Opcode)
	return opcode
}

// Returns the prefix class of the instruction encoding, PrefixClass_None for fixed width instructions
func (i *Instruction) PrefixClass() components.PrefixClass {
	if opcode := i.Components(); opcode != nil {
		return opcode.Prefix
	}

	return components.PrefixClass_None
}

func (i *Instruction) Extensions() []string {
	return i.Metadata.Extensions
}

func (i *Instruction) Attribute(id dictionary.AttributeID) (metadata.AttributeValue, bool) {
	return i.Metadata.Attribute(id)
}

func (i *Instruction) SpecialRegisters() map[string]string {
	return i.Metadata.SpecialRegisters
}

// Returns true if the table marks the instruction semantics as undocumented
func (i *Instruction) Unspecified() bool {
	return i.Metadata.Unspecified
}

// Records a diagnostic against the instruction
func (i *Instruction) Reportf(format string, args ...any) {
	i.diagnostics.Reportf(format, args...)
}

// Number of diagnostics recorded against the instruction
func (i *Instruction) DiagnosticCount() int {
	return i.diagnostics.Count()
}

// Returns the diagnostics recorded against the instruction, in report order
func (i *Instruction) Diagnostics() *diagnostics.Diagnostics {
	return i.diagnostics
}

// Returns true if no diagnostics were recorded against the instruction
func (i *Instruction) Valid() bool {
	return i.DiagnosticCount() == 0
}

// Returns the instruction name followed by its operands
func (i *Instruction) Signature() string {
	if len(i.Operands) == 0 {
		return i.Name
	}

	spellings := make([]string, len(i.Operands))
	for j, operand := range i.Operands {
		spellings[j] = operand.String()
	}

	return i.Name + " " + strings.Join(spellings, ", ")
}

func (i *Instruction) String() string {
	return fmt.Sprintf("%v [%v] %v", i.Signature(), i.Encoding, i.OpcodeText)
}
