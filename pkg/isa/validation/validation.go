// Package validation cross checks the parts of an instruction record against
// each other. Every inconsistency is recorded as a diagnostic of the record.
package validation

import (
	"slices"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/instructions"
	"github.com/Manu343726/isadb/pkg/isa/operands"
	"github.com/samber/lo"
)

// Marks one encoded immediate in an encoding tag (MI, II, RVMI)
const ImmediateMarker = "I"

// Opcode tokens declaring an immediate of the operand list. is4 immediates
// encode a register operand and are not counted.
var immediateTokens = []string{"ib", "iw", "id", "iq"}

// Instruction word size of each fixed width encoding
var WordSizes = map[string]int{
	"A32": 32,
	"T32": 32,
	"A64": 32,
	"T16": 16,
}

// Consistency check applied to instruction records
type Rule struct {
	Name string
	// Architectures the rule applies to, all if empty
	Architectures []dictionary.Architecture
	Check         func(i *instructions.Instruction)
}

func (r *Rule) AppliesTo(arch dictionary.Architecture) bool {
	return len(r.Architectures) == 0 || slices.Contains(r.Architectures, arch)
}

// Validation rules, in evaluation order
var Rules = []Rule{
	{
		Name:  "opcode",
		Check: checkOpcode,
	},
	{
		Name:          "immediates",
		Architectures: []dictionary.Architecture{dictionary.Architecture_X86},
		Check:         checkImmediates,
	},
	{
		Name:          "word-size",
		Architectures: []dictionary.Architecture{dictionary.Architecture_ARM},
		Check:         checkWordSize,
	},
	{
		Name:  "vector-memory",
		Check: checkVectorMemory,
	},
}

// Runs all the rules applying to the instruction. Returns the number of
// diagnostics added to the instruction.
func Validate(i *instructions.Instruction) int {
	before := i.DiagnosticCount()

	for _, rule := range Rules {
		if rule.AppliesTo(i.Architecture) {
			rule.Check(i)
		}
	}

	return i.DiagnosticCount() - before
}

// Returns the number of immediate operands that are encoded in the instruction
func EncodedImmediates(i *instructions.Instruction) int {
	return lo.CountBy(i.Operands, (*operands.Operand).IsEncodedImmediate)
}

func checkOpcode(i *instructions.Instruction) {
	if i.Opcode == nil {
		i.Reportf("'%v' has no opcode", i.Name)
	}
}

func checkImmediates(i *instructions.Instruction) {
	immediates := EncodedImmediates(i)

	if !strings.Contains(i.Encoding, strings.Repeat(ImmediateMarker, immediates)) {
		i.Reportf("'%v' has %v immediate operands but encoding '%v' has no %v", i.Name, immediates, i.Encoding, strings.Repeat(ImmediateMarker, immediates))
	}

	tokens := lo.CountBy(strings.Fields(i.OpcodeText), func(token string) bool {
		return slices.Contains(immediateTokens, token)
	})

	if tokens != immediates {
		i.Reportf("'%v' has %v immediate operands but opcode '%v' declares %v immediates", i.Name, immediates, i.OpcodeText, tokens)
	}
}

func checkWordSize(i *instructions.Instruction) {
	template := i.Template()
	if template == nil {
		return
	}

	expected, known := WordSizes[i.Encoding]
	if !known {
		i.Reportf("'%v' has unknown encoding '%v'", i.Name, i.Encoding)
		return
	}

	if width := template.Width(); width != expected {
		i.Reportf("'%v' opcode '%v' is %v bits wide, %v encodings are %v bits", i.Name, i.OpcodeText, width, i.Encoding, expected)
	}
}

func checkVectorMemory(i *instructions.Instruction) {
	if count := lo.CountBy(i.Operands, (*operands.Operand).HasVectorMemory); count > 1 {
		i.Reportf("'%v' has %v vector memory operands", i.Name, count)
	}
}
