package instructions

import (
	"errors"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/Manu343726/isadb/pkg/isa/metadata"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/bitfields"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/components"
	"github.com/Manu343726/isadb/pkg/isa/operands"
	"github.com/Manu343726/isadb/pkg/utils"
)

var ErrInvalidName = errors.New("invalid instruction name")

// Parses a fixture entry into one instruction per alias. Content problems are
// recorded as diagnostics of the returned instructions, errors are only
// returned for malformed entry syntax.
func Parse(cfg *dictionary.Config, entry fixtures.Entry) ([]*Instruction, error) {
	aliases := entry.Aliases()

	if len(aliases) == 0 {
		return nil, utils.MakeError(ErrInvalidName, "entry has no name")
	}
	for _, alias := range aliases {
		if alias == "" {
			return nil, utils.MakeError(ErrInvalidName, "empty alias in '%v'", entry.Name())
		}
	}

	diag := diagnostics.New(entry.Name())

	parsedOperands, err := operands.ParseList(cfg, entry.Operands(), diag)
	if err != nil {
		return nil, utils.MakeError(err, "operands of '%v'", entry.Name())
	}

	opcode := parseOpcode(cfg.Architecture(), entry.Opcode(), diag)
	resolved := metadata.Resolve(cfg, entry.Metadata(), diag)

	result := make([]*Instruction, len(aliases))

	for i, alias := range aliases {
		result[i] = &Instruction{
			Name:         alias,
			Architecture: cfg.Architecture(),
			Encoding:     strings.TrimSpace(entry.Encoding()),
			OperandsText: entry.Operands(),
			OpcodeText:   entry.Opcode(),
			Operands:     parsedOperands,
			Opcode:       opcode,
			Metadata:     resolved,
			diagnostics:  diag.Fork(alias),
		}
	}

	return result, nil
}

func parseOpcode(arch dictionary.Architecture, text string, diag *diagnostics.Diagnostics) Opcode {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	switch arch {
	case dictionary.Architecture_ARM:
		return bitfields.Parse(text, diag)
	case dictionary.Architecture_X86:
		return components.Parse(text, diag)
	}

	panic("unreachable")
}
