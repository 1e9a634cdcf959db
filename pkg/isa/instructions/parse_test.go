package instructions

import (
	"testing"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/components"
	"github.com/Manu343726/isadb/pkg/isa/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func config(t *testing.T, arch dictionary.Architecture) *dictionary.Config {
	cfg, err := fixtures.Builtin(arch).Config()
	require.NoError(t, err)
	return cfg
}

func TestParse_Aliases(t *testing.T) {
	cfg := config(t, dictionary.Architecture_ARM)
	entry := fixtures.Entry{"adc/adcS", "Rd!=PC, Rn!=PC, #ImmA", "A32", "cond:4|0010101|S|Rn:4|Rd:4|imm:12", "ARMv4+ APSR.NZCV=X"}

	records, err := Parse(cfg, entry)
	require.NoError(t, err)
	require.Len(t, records, 2)

	adc, adcS := records[0], records[1]
	assert.Equal(t, "adc", adc.Name)
	assert.Equal(t, "adcS", adcS.Name)
	assert.Same(t, adc.Metadata, adcS.Metadata)
	assert.Same(t, adc.Template(), adcS.Template())
	assert.Equal(t, adc.Operands, adcS.Operands)
	assert.Nil(t, adc.Components())

	assert.Equal(t, "A32", adc.Encoding)
	assert.Equal(t, 32, adc.Template().Width())
	assert.Equal(t, []string{"ARMv4+"}, adc.Extensions())
	assert.Len(t, adc.SpecialRegisters(), 4)
	assert.Equal(t, "adc Rd!=PC, Rn!=PC, #ImmA", adc.Signature())
	assert.True(t, adc.Valid())
}

func TestParse_DiagnosticsAreForkedPerAlias(t *testing.T) {
	cfg := config(t, dictionary.Architecture_ARM)
	entry := fixtures.Entry{"adc/adcS", "Rd, Rn", "A32", "cond:4|0000101|S|Rn:4|Rd:4|imm:12", "ARMv4+ Bogus"}

	records, err := Parse(cfg, entry)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].DiagnosticCount())
	assert.Equal(t, 1, records[1].DiagnosticCount())

	records[0].Reportf("more")
	assert.Equal(t, 2, records[0].DiagnosticCount())
	assert.Equal(t, 1, records[1].DiagnosticCount())
	assert.Equal(t, "adcS", records[1].Diagnostics().Subject)
}

func TestParse_X86(t *testing.T) {
	cfg := config(t, dictionary.Architecture_X86)

	records, err := Parse(cfg, fixtures.Entry{"vaddps", "W:xmm, xmm, xmm/m128", "RVM", "VEX.NDS.128.0F.WIG 58 /r", "X86 X64 AVX"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	vaddps := records[0]
	assert.True(t, vaddps.Valid(), vaddps.Diagnostics().Messages())
	assert.Equal(t, components.PrefixClass_VEX, vaddps.PrefixClass())
	assert.Equal(t, "58", vaddps.Components().Byte)
	assert.Len(t, vaddps.Operands, 3)
	assert.True(t, vaddps.Operands[2].HasMemory())
}

func TestParse_Unspecified(t *testing.T) {
	records, err := Parse(config(t, dictionary.Architecture_X86), fixtures.Entry{"ud1", "r32, r32/m32", "RM", "0F B9 /r", "X86 X64 ?"})
	require.NoError(t, err)

	assert.True(t, records[0].Unspecified())
	assert.True(t, records[0].Valid())
}

func TestParse_MissingOpcode(t *testing.T) {
	records, err := Parse(config(t, dictionary.Architecture_X86), fixtures.Entry{"nop", "", "NONE", "", ""})
	require.NoError(t, err)

	assert.Nil(t, records[0].Opcode)
	assert.Equal(t, components.PrefixClass_None, records[0].PrefixClass())
}

func TestParse_IsIdempotent(t *testing.T) {
	cfg := config(t, dictionary.Architecture_X86)
	entry := fixtures.Entry{"adc", "X:r8/m8, ib", "MI", "80 /2 ib", "X86 X64 Lock OSZAPC=W"}

	first, err := Parse(cfg, entry)
	require.NoError(t, err)
	second, err := Parse(cfg, entry)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first[0], second[0])
}

func TestParse_Errors(t *testing.T) {
	cfg := config(t, dictionary.Architecture_ARM)

	cases := []struct {
		entry    fixtures.Entry
		expected error
	}{
		{fixtures.Entry{"adc", "Rd,,Rn", "A32", "0", ""}, tokenizer.ErrEmptySegment},
		{fixtures.Entry{"ldr", "Rt, [Rn", "A32", "0", ""}, tokenizer.ErrUnbalanced},
		{fixtures.Entry{"", "Rd", "A32", "0", ""}, ErrInvalidName},
		{fixtures.Entry{"adc//adcS", "Rd", "A32", "0", ""}, ErrInvalidName},
	}

	for _, c := range cases {
		t.Run(c.entry.String(), func(t *testing.T) {
			_, err := Parse(cfg, c.entry)
			assert.ErrorIs(t, err, c.expected)
		})
	}
}

func TestInstruction_Documentation(t *testing.T) {
	records, err := Parse(config(t, dictionary.Architecture_ARM), fixtures.Entry{"adcS", "Rdn, Rm", "T16", "0100000101|Rm:3|Rdn:3", "ARMv4T+ IT=OUT APSR.NZCV=X"})
	require.NoError(t, err)

	docs, err := records[0].Documentation(0)
	require.NoError(t, err)

	assert.Contains(t, docs, "adcS Rdn, Rm\n")
	assert.Contains(t, docs, "  Extensions: ARMv4T+\n")
	assert.Contains(t, docs, "  IT: OUT\n")
	assert.Contains(t, docs, "  Flags: APSR.C=X APSR.N=X APSR.V=X APSR.Z=X\n")
	assert.Contains(t, docs, "Bit layout:")
	assert.Contains(t, docs, "  | 0100000101 |  Rm   |  Rdn  |\n")
	assert.NotContains(t, docs, "Diagnostics:")
}
