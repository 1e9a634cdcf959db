package instructions

import (
	"fmt"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/metadata"
	"github.com/Manu343726/isadb/pkg/utils"
)

// Returns a human readable description of the instruction record, including
// the bit layout of fixed width opcodes
func (i *Instruction) Documentation(leftpad int) (string, error) {
	var builder strings.Builder
	leftpad_str := strings.Repeat(" ", leftpad)

	builder.WriteString(leftpad_str)
	builder.WriteString(fmt.Sprintf("%v\n\n", i.Signature()))

	leftpad_str += "  "
	leftpad += 2

	writeLine := func(label string, value any) {
		builder.WriteString(fmt.Sprintf("%v%v: %v\n", leftpad_str, label, value))
	}

	writeLine("Encoding", i.Encoding)
	writeLine("Opcode", i.OpcodeText)

	if len(i.Extensions()) > 0 {
		writeLine("Extensions", strings.Join(i.Extensions(), ", "))
	}

	for _, pair := range utils.ZipMap(utils.MapMap(i.Metadata.Attributes, func(id dictionary.AttributeID, value metadata.AttributeValue) (string, string) {
		return id.String(), value.String()
	})) {
		writeLine(pair.First, pair.Second)
	}

	if len(i.SpecialRegisters()) > 0 {
		flags := utils.Map(utils.ZipMap(i.SpecialRegisters()), func(pair utils.Pair[string, string]) string {
			return pair.First + "=" + pair.Second
		})
		writeLine("Flags", strings.Join(flags, " "))
	}

	if i.Unspecified() {
		writeLine("Semantics", "unspecified")
	}

	if len(i.Operands) > 0 {
		builder.WriteString(fmt.Sprintf("\n%vOperands:\n\n", leftpad_str))

		for j, operand := range i.Operands {
			builder.WriteString(fmt.Sprintf("%v - [%v] %v %v\n", leftpad_str, j, operand, operand.Describe()))
		}
	}

	if template := i.Template(); template != nil && len(template.Fields) > 0 {
		builder.WriteString(fmt.Sprintf("\n%vBit layout:\n\n", leftpad_str))

		builder.WriteString(template.Diagram(leftpad + 2))
	}

	if opcode := i.Components(); opcode != nil {
		writeLine("Prefix class", opcode.Prefix)
		writeLine("Canonical opcode", opcode)
	}

	if messages := i.diagnostics.Messages(); len(messages) > 0 {
		builder.WriteString(fmt.Sprintf("\n%vDiagnostics:\n\n", leftpad_str))

		for _, message := range messages {
			builder.WriteString(fmt.Sprintf("%v - %v\n", leftpad_str, message))
		}
	}

	return builder.String(), nil
}
