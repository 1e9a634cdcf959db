package fixtures

import "github.com/Manu343726/isadb/pkg/isa/dictionary"

func gp(name string, bits int, fixed bool) dictionary.RegisterClass {
	return dictionary.RegisterClass{Name: name, Kind: dictionary.RegisterKind_GP, Bits: bits, Fixed: fixed}
}

var x86Tables = dictionary.Tables{
	Extensions: []dictionary.Extension{
		{Name: "I486"},
		{Name: "FPU", Description: "x87 floating point unit"},
		{Name: "MMX"},
		{Name: "3DNOW"},
		{Name: "SSE2"},
		{Name: "SSSE3"},
		{Name: "SSE4_2"},
		{Name: "AVX"},
		{Name: "AVX2"},
		{Name: "AVX512_F"},
		{Name: "XOP"},
		{Name: "LZCNT"},
		{Name: "XSAVE"},
	},
	SpecialRegisters: []dictionary.SpecialRegister{
		{Name: "OF", Group: "EFLAGS"},
		{Name: "SF", Group: "EFLAGS"},
		{Name: "ZF", Group: "EFLAGS"},
		{Name: "AF", Group: "EFLAGS"},
		{Name: "PF", Group: "EFLAGS"},
		{Name: "CF", Group: "EFLAGS"},
		{Name: "DF", Group: "EFLAGS"},
		{Name: "IF", Group: "EFLAGS"},
	},
	Shortcuts: []dictionary.Shortcut{
		{Name: "OSZAPC", Expansion: "OF|SZAPC"},
		{Name: "SZAPC", Expansion: "SF|ZF|AF|PF|CF"},
	},
	Registers: []dictionary.RegisterClass{
		gp("r8", 8, false),
		gp("r16", 16, false),
		gp("r32", 32, false),
		gp("r64", 64, false),
		gp("al", 8, true),
		gp("cl", 8, true),
		gp("ax", 16, true),
		gp("eax", 32, true),
		gp("ecx", 32, true),
		gp("edx", 32, true),
		gp("rax", 64, true),
		gp("zax", 0, true),
		gp("zcx", 0, true),
		gp("zsi", 0, true),
		gp("zdi", 0, true),
		{Name: "sreg", Kind: dictionary.RegisterKind_Segment, Bits: 16},
		{Name: "creg", Kind: dictionary.RegisterKind_Control},
		{Name: "dreg", Kind: dictionary.RegisterKind_Debug},
		{Name: "st", Kind: dictionary.RegisterKind_FPU, Bits: 80},
		{Name: "st(0)", Kind: dictionary.RegisterKind_FPU, Bits: 80, Fixed: true},
		{Name: "mm", Kind: dictionary.RegisterKind_MMX, Bits: 64},
		{Name: "xmm", Kind: dictionary.RegisterKind_Vector, Bits: 128},
		{Name: "xmm0", Kind: dictionary.RegisterKind_Vector, Bits: 128, Fixed: true},
		{Name: "ymm", Kind: dictionary.RegisterKind_Vector, Bits: 256},
		{Name: "zmm", Kind: dictionary.RegisterKind_Vector, Bits: 512},
		{Name: "k", Kind: dictionary.RegisterKind_Mask, Bits: 64},
		{Name: "bnd", Kind: dictionary.RegisterKind_Bound, Bits: 128},
	},
}

var x86Entries = []Entry{
	{"adc", "X:al, ib", "I", "14 ib", "X86 X64 OSZAPC=W CF=R"},
	{"adc", "X:r8/m8, ib", "MI", "80 /2 ib", "X86 X64 Lock OSZAPC=W"},
	{"adc", "X:r32/m32, id", "MI", "81 /2 id", "X86 X64 Lock OSZAPC=W"},
	{"adc", "X:r64/m64, id", "MI", "REX.W 81 /2 id", "X64 Lock OSZAPC=W"},
	{"adc", "X:r32, r32/m32", "RM", "13 /r", "X86 X64 OSZAPC=W"},
	{"add", "X:r32/m32, r32", "MR", "01 /r", "X86 X64 Lock XAcquire XRelease OSZAPC=W"},
	{"add", "X:r64/m64, ib", "MI", "REX.W 83 /0 ib", "X64 Lock OSZAPC=W"},
	{"add", "X:ax, iw", "I", "66 05 iw", "X86 X64 OSZAPC=W"},
	{"mov", "W:r32, id", "OI", "B8+r id", "X86 X64"},
	{"mov", "W:r64, iq", "OI", "REX.W B8+r iq", "X64"},
	{"mov", "W:r32/m32, r32", "MR", "89 /r", "X86 X64 XRelease"},
	{"mov", "W:al, moff8", "FD", "A0", "X86 X64"},
	{"movs/movsb", "W:es:[zdi], R:ds:[zsi]", "NONE", "A4", "X86 X64 REP DF=R"},
	{"shl", "X:r8/m8, 1", "M1", "D0 /4", "X86 X64 OSZAPC=W AF=U"},
	{"shl", "X:r32/m32, cl", "MC", "D3 /4", "X86 X64 OSZAPC=W AF=U"},
	{"shl", "X:r32/m32, ib", "MI", "C1 /4 ib", "X86 X64 OSZAPC=W AF=U"},
	{"bswap", "X:r32", "O", "0F C8+r", "X86 X64 I486"},
	{"crc32", "X:r32, r8/m8", "RM", "F2 0F 38 F0 /r", "X86 X64 SSE4_2"},
	{"lzcnt", "W:r32, r32/m32", "RM", "F3 0F BD /r", "X86 X64 LZCNT OF=U SF=U ZF=W AF=U PF=U CF=W"},
	{"pshufb", "X:xmm, xmm/m128", "RM", "66 0F 38 00 /r", "X86 X64 SSSE3"},
	{"pause", "", "NONE", "F3 90", "X86 X64 SSE2 Volatile"},
	{"vaddps", "W:xmm, xmm, xmm/m128", "RVM", "VEX.NDS.128.0F.WIG 58 /r", "X86 X64 AVX"},
	{"vaddps", "W:ymm, ymm, ymm/m256", "RVM", "VEX.NDS.256.0F.WIG 58 /r", "X86 X64 AVX"},
	{"vaddps", "W:zmm {kz}, zmm, zmm/m512/b32 {er}", "RVM", "EVEX.NDS.512.0F.W0 58 /r", "X86 X64 AVX512_F"},
	{"vpgatherdd", "X:xmm, vm32x, X:xmm", "RMV", "VEX.DDS.128.66.0F38.W0 90 /r", "X86 X64 AVX2"},
	{"vpcmov", "W:xmm, xmm, xmm/m128, xmm", "RVMR", "XOP.L0.P0.M8.W0 A2 /r /is4", "X86 X64 XOP"},
	{"pfadd", "X:mm, mm/m64", "RM", "0F 0F /r 9E", "X86 X64 3DNOW"},
	{"fld", "R:m32fp", "M", "D9 /0", "X86 X64 FPU FPU_TOP=push"},
	{"fld", "R:m64fp", "M", "DD /0", "X86 X64 FPU FPU_TOP=push"},
	{"fld", "R:m80fp", "M", "DB /5", "X86 X64 FPU FPU_TOP=push"},
	{"fstsw", "W:m16", "M", "9B DD /7", "X86 X64 FPU"},
	{"invlpg", "R:mem", "M", "0F 01 /7", "X86 X64 PRIVILEGE=L0 Volatile"},
	{"xgetbv", "W:<edx>, W:<eax>, R:<ecx>", "NONE", "0F 01 D0", "X86 X64 XSAVE Volatile"},
	{"jecxz", "R:<ecx>, rel8", "D", "67 E3 cb", "X86 X64 Control=Branch"},
	{"jmp", "rel32", "D", "E9 cd", "X86 X64 Control=Jump BND"},
	{"call", "rel32", "D", "E8 cd", "X86 X64 Control=Call BND"},
	{"enter", "iw, ib", "II", "C8 iw ib", "X86 X64 Volatile"},
	{"int", "ib", "I", "CD ib", "X86 X64 Volatile Control=Call"},
	{"ud1", "r32, r32/m32", "RM", "0F B9 /r", "X86 X64 ?"},
}
