package validation

import (
	"testing"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/Manu343726/isadb/pkg/isa/instructions"
	"github.com/Manu343726/isadb/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, arch dictionary.Architecture, entry fixtures.Entry) *instructions.Instruction {
	cfg, err := fixtures.Builtin(arch).Config()
	require.NoError(t, err)

	records, err := instructions.Parse(cfg, entry)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.True(t, records[0].Valid(), records[0].Diagnostics().Messages())

	return records[0]
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		arch        dictionary.Architecture
		entry       fixtures.Entry
		diagnostics int
	}{
		{"immediate markers", dictionary.Architecture_X86, fixtures.Entry{"adc", "X:r8/m8, ib", "MI", "80 /2 ib", ""}, 0},
		{"two immediates", dictionary.Architecture_X86, fixtures.Entry{"enter", "iw, ib", "II", "C8 iw ib", ""}, 0},
		{"two immediates without markers", dictionary.Architecture_X86, fixtures.Entry{"enter", "iw, ib", "NONE", "C8 iw ib", ""}, 1},
		{"missing immediate token", dictionary.Architecture_X86, fixtures.Entry{"adc", "X:r8/m8, ib", "MI", "80 /2", ""}, 1},
		{"extra immediate token", dictionary.Architecture_X86, fixtures.Entry{"adc", "X:r8/m8, r8", "MR", "10 /r ib", ""}, 1},
		{"implicit literal immediate", dictionary.Architecture_X86, fixtures.Entry{"shl", "X:r8/m8, 1", "M1", "D0 /4", ""}, 0},
		{"is4 register", dictionary.Architecture_X86, fixtures.Entry{"vpcmov", "W:xmm, xmm, xmm/m128, xmm", "RVMR", "XOP.L0.P0.M8.W0 A2 /r /is4", ""}, 0},
		{"two vector memory operands", dictionary.Architecture_X86, fixtures.Entry{"bogus", "vm32x, vm32y", "RM", "01 /r", ""}, 1},
		{"missing opcode", dictionary.Architecture_X86, fixtures.Entry{"bogus", "", "NONE", "", ""}, 1},
		{"word size", dictionary.Architecture_ARM, fixtures.Entry{"adcS", "Rdn, Rm", "T16", "0100000101|Rm:3|Rdn:3", ""}, 0},
		{"wrong word size", dictionary.Architecture_ARM, fixtures.Entry{"adcS", "Rdn, Rm", "T16", "0100000101|Rm:3|Rdn:4", ""}, 1},
		{"unknown encoding", dictionary.Architecture_ARM, fixtures.Entry{"adcS", "Rdn, Rm", "A16", "0100000101|Rm:3|Rdn:3", ""}, 1},
		{"immediates are not checked on fixed width encodings", dictionary.Architecture_ARM, fixtures.Entry{"b", "#RelA", "A32", "cond:4|1010|imm:24", ""}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			record := parse(t, c.arch, c.entry)

			assert.Equal(t, c.diagnostics, Validate(record), record.Diagnostics().Messages())
			assert.Equal(t, c.diagnostics, record.DiagnosticCount())
		})
	}
}

func TestValidate_Builtin(t *testing.T) {
	for arch := dictionary.Architecture(0); arch < dictionary.TOTAL_ARCHITECTURES; arch++ {
		set := fixtures.Builtin(arch)
		cfg, err := set.Config()
		require.NoError(t, err)

		for _, entry := range set.Entries {
			records, err := instructions.Parse(cfg, entry)
			require.NoError(t, err)

			for _, record := range records {
				Validate(record)
				assert.True(t, record.Valid(), "%v: %v", entry, record.Diagnostics().Messages())
			}
		}
	}
}

func TestEncodedImmediates(t *testing.T) {
	assert.Equal(t, 2, EncodedImmediates(parse(t, dictionary.Architecture_X86, fixtures.Entry{"enter", "iw, ib", "II", "C8 iw ib", ""})))
	assert.Equal(t, 0, EncodedImmediates(parse(t, dictionary.Architecture_X86, fixtures.Entry{"shl", "X:r8/m8, 1", "M1", "D0 /4", ""})))
}

func TestRules_Order(t *testing.T) {
	assert.Equal(t, []string{"opcode", "immediates", "word-size", "vector-memory"}, utils.Map(Rules, func(r Rule) string { return r.Name }))
}
