package operands

import (
	"testing"

	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func x86Config(t *testing.T) *dictionary.Config {
	c, err := dictionary.New(dictionary.Architecture_X86, dictionary.Tables{
		Registers: []dictionary.RegisterClass{
			{Name: "r8", Kind: dictionary.RegisterKind_GP, Bits: 8},
			{Name: "r32", Kind: dictionary.RegisterKind_GP, Bits: 32},
			{Name: "eax", Kind: dictionary.RegisterKind_GP, Bits: 32, Fixed: true},
			{Name: "zdi", Kind: dictionary.RegisterKind_GP, Fixed: true},
			{Name: "xmm", Kind: dictionary.RegisterKind_Vector, Bits: 128},
			{Name: "k", Kind: dictionary.RegisterKind_Mask, Bits: 64},
		},
	})
	require.NoError(t, err)
	return c
}

func armConfig(t *testing.T) *dictionary.Config {
	c, err := dictionary.New(dictionary.Architecture_ARM, dictionary.Tables{
		Registers: []dictionary.RegisterClass{
			{Name: "SP", Kind: dictionary.RegisterKind_GP, Bits: 32, Fixed: true},
			{Name: "APSR", Kind: dictionary.RegisterKind_Special, Bits: 32, Fixed: true},
		},
	})
	require.NoError(t, err)
	return c
}

func mustParse(t *testing.T, cfg *dictionary.Config, token string) (*Operand, *diagnostics.Diagnostics) {
	diag := diagnostics.New(token)
	operand, err := Parse(cfg, token, diag)
	require.NoError(t, err)
	return operand, diag
}

func TestParse_X86(t *testing.T) {
	cfg := x86Config(t)

	cases := []struct {
		token    string
		describe string
		check    func(t *testing.T, o *Operand)
	}{
		{"W:r32/m32", "reg(gp)/mem(32)", func(t *testing.T, o *Operand) {
			assert.Equal(t, AccessMode_Write, o.Access.Mode)
			assert.Nil(t, o.Access.Range)
			assert.Equal(t, 32, o.Register().Bits)
			assert.Equal(t, 32, o.Memory().Bits)
		}},
		{"X[7:0]:r32", "reg(gp)", func(t *testing.T, o *Operand) {
			assert.Equal(t, AccessMode_ReadWrite, o.Access.Mode)
			assert.Equal(t, &BitRange{Hi: 7, Lo: 0}, o.Access.Range)
		}},
		{"xmm/m128/b32 {er}", "reg(vec)/mem(128)", func(t *testing.T, o *Operand) {
			assert.Equal(t, 32, o.Broadcast)
			assert.True(t, o.Rounding)
			assert.False(t, o.Mask)
		}},
		{"xmm {kz}", "reg(vec)", func(t *testing.T, o *Operand) {
			assert.True(t, o.Mask)
			assert.True(t, o.Zeroing)
		}},
		{"<eax>", "reg(gp)", func(t *testing.T, o *Operand) {
			assert.True(t, o.Implicit)
			assert.True(t, o.Register().Fixed)
		}},
		{"1", "imm(0)", func(t *testing.T, o *Operand) {
			assert.True(t, o.Implicit)
			require.NotNil(t, o.Immediate().Value)
			assert.EqualValues(t, 1, *o.Immediate().Value)
			assert.False(t, o.IsEncodedImmediate())
		}},
		{"ib", "imm(8)", func(t *testing.T, o *Operand) {
			assert.True(t, o.Immediate().Signed)
			assert.True(t, o.IsEncodedImmediate())
		}},
		{"uw", "imm(16)", func(t *testing.T, o *Operand) {
			assert.False(t, o.Immediate().Signed)
		}},
		{"rel32", "rel(32)", func(t *testing.T, o *Operand) {
			assert.True(t, o.HasRelative())
		}},
		{"moff8", "mem(8)", func(t *testing.T, o *Operand) {
			assert.True(t, o.Memory().Offset)
		}},
		{"m80fp", "mem(80)", func(t *testing.T, o *Operand) {
			assert.Equal(t, "fp", o.Memory().Type)
		}},
		{"vm32x", "mem(0)", func(t *testing.T, o *Operand) {
			assert.True(t, o.HasVectorMemory())
			assert.Equal(t, &VectorIndex{Register: "xmm", Bits: 128, ElementBits: 32}, o.Memory().Vector)
		}},
		{"W:es:[zdi]", "mem(0)", func(t *testing.T, o *Operand) {
			assert.Equal(t, "es", o.Memory().Segment)
			assert.Equal(t, "zdi", o.Memory().Base.Spelling)
		}},
		{"{k}", "reg(k)", func(t *testing.T, o *Operand) {
			assert.True(t, o.Optional)
		}},
	}

	for _, c := range cases {
		t.Run(c.token, func(t *testing.T) {
			o, diag := mustParse(t, cfg, c.token)
			require.NotNil(t, o)
			assert.Zero(t, diag.Count(), diag.Messages())
			assert.Equal(t, c.describe, o.Describe())
			c.check(t, o)
		})
	}
}

func TestParse_ARM(t *testing.T) {
	cfg := armConfig(t)

	cases := []struct {
		token    string
		describe string
		check    func(t *testing.T, o *Operand)
	}{
		{"Rd!=PC", "reg(gp)", func(t *testing.T, o *Operand) {
			assert.Equal(t, []string{"PC"}, o.Register().Exclude)
			assert.True(t, o.Register().Excludes("PC"))
			assert.False(t, o.Register().Excludes("SP"))
		}},
		{"SP", "reg(gp)", func(t *testing.T, o *Operand) {
			assert.True(t, o.Register().Fixed)
		}},
		{"Dd", "reg(fp)", func(t *testing.T, o *Operand) {
			assert.Equal(t, 64, o.Register().Bits)
		}},
		{"Vd.T", "reg(vec)", func(t *testing.T, o *Operand) {
			assert.Equal(t, "T", o.Register().Element)
		}},
		{"Dm[x]", "reg(fp)", func(t *testing.T, o *Operand) {
			assert.Equal(t, "x", o.Register().Lane)
		}},
		{"#ImmA", "imm(0)", func(t *testing.T, o *Operand) {
			assert.Equal(t, "ImmA", o.Immediate().Name)
			assert.False(t, o.Implicit)
		}},
		{"#0", "imm(0)", func(t *testing.T, o *Operand) {
			require.NotNil(t, o.Immediate().Value)
			assert.EqualValues(t, 0, *o.Immediate().Value)
		}},
		{"#RelA", "rel(0)", func(t *testing.T, o *Operand) {
			assert.True(t, o.HasRelative())
		}},
		{"[Rn!=PC, #ImmZ]{!}", "mem(0)", func(t *testing.T, o *Operand) {
			m := o.Memory()
			assert.Equal(t, "Rn!=PC", m.Base.Spelling)
			assert.Equal(t, []string{"PC"}, m.Base.Exclude)
			require.Len(t, m.Components, 1)
			assert.Equal(t, "ImmZ", m.Components[0].(*ImmediateForm).Name)
			assert.True(t, m.WritebackOptional)
			assert.False(t, m.Writeback)
		}},
		{"[Rn, +/-Rm]!", "mem(0)", func(t *testing.T, o *Operand) {
			m := o.Memory()
			require.Len(t, m.Components, 1)
			assert.Equal(t, "Rm", m.Components[0].String())
			assert.True(t, m.Writeback)
		}},
		{"R:APSR", "reg(special)", func(t *testing.T, o *Operand) {
			assert.Equal(t, AccessMode_Read, o.Access.Mode)
		}},
	}

	for _, c := range cases {
		t.Run(c.token, func(t *testing.T) {
			o, diag := mustParse(t, cfg, c.token)
			require.NotNil(t, o)
			assert.Zero(t, diag.Count(), diag.Messages())
			assert.Equal(t, c.describe, o.Describe())
			c.check(t, o)
		})
	}
}

func TestParse_Diagnostics(t *testing.T) {
	cfg := x86Config(t)

	cases := []struct {
		token       string
		dropped     bool
		diagnostics int
	}{
		{"foo", true, 2},
		{"r32/foo", false, 1},
		{"r32//m32", false, 1},
		{"<m32>", false, 1},
		{"<ib>", false, 1},
		{"xmm {bogus}", false, 1},
		{"[foo]", true, 3},
		{"ds:[foo]", true, 3},
		{"[zsi, , x]", true, 3},
		{"r32/[foo]", false, 2},
		{"ds:[zdi]", false, 0},
	}

	for _, c := range cases {
		t.Run(c.token, func(t *testing.T) {
			o, diag := mustParse(t, cfg, c.token)
			assert.Equal(t, c.dropped, o == nil)
			assert.Equal(t, c.diagnostics, diag.Count(), diag.Messages())

			if o != nil {
				for _, form := range o.Forms() {
					assert.NotNil(t, form)
				}
				assert.NotPanics(t, func() {
					_ = o.String()
					_ = o.Describe()
					_ = o.HasVectorMemory()
				})
			}
		})
	}
}

func TestParse_MalformedSyntaxIsFatal(t *testing.T) {
	_, err := Parse(armConfig(t), "[Rn, #ImmZ", diagnostics.New("test"))
	assert.ErrorIs(t, err, tokenizer.ErrUnbalanced)

	_, err = ParseList(armConfig(t), "Rd,,Rn", diagnostics.New("test"))
	assert.ErrorIs(t, err, tokenizer.ErrEmptySegment)
}

func TestParseList(t *testing.T) {
	cfg := armConfig(t)
	diag := diagnostics.New("ldr")

	list, err := ParseList(cfg, "Rt, [Rn!=PC, #ImmZ]{!}", diag)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Zero(t, diag.Count())
	assert.True(t, list[0].HasRegister())
	assert.True(t, list[1].HasMemory())

	list, err = ParseList(cfg, "", diag)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestParse_IsDeterministic(t *testing.T) {
	cfg := x86Config(t)

	first, _ := mustParse(t, cfg, "W:xmm/m128/b32 {kz}")
	second, _ := mustParse(t, cfg, "W:xmm/m128/b32 {kz}")
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestOperand_String(t *testing.T) {
	cfg := x86Config(t)

	for token, expected := range map[string]string{
		"W:r32/m32":         "W:r32/m32",
		"xmm/m128/b32 {er}": "xmm/m128/b32 {er}",
		"<eax>":             "<eax>",
		"1":                 "1",
		"xmm {kz}":          "xmm {kz}",
	} {
		o, _ := mustParse(t, cfg, token)
		assert.Equal(t, expected, o.String())
	}
}

func TestNewOperand(t *testing.T) {
	o := NewOperand(&RegisterForm{Spelling: "r8"}, &MemoryForm{Spelling: "m8", Bits: 8})
	assert.Len(t, o.Forms(), 2)
	assert.True(t, o.HasRegister())
	assert.True(t, o.HasMemory())
	assert.False(t, o.HasImmediate())
}
