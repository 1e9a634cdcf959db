package fixtures

import "github.com/Manu343726/isadb/pkg/isa/dictionary"

var armTables = dictionary.Tables{
	Extensions: []dictionary.Extension{
		{Name: "ARMv4+", Description: "ARMv4 and later"},
		{Name: "ARMv4T+", Description: "ARMv4T and later, Thumb state"},
		{Name: "ARMv5T+", Description: "ARMv5T and later"},
		{Name: "ARMv6T2+", Description: "ARMv6T2 and later, Thumb-2"},
		{Name: "ARMv7+", Description: "ARMv7 and later"},
		{Name: "ARMv8+", Description: "ARMv8 and later, AArch64"},
		{Name: "ASIMD", Description: "Advanced SIMD"},
		{Name: "VFPv2", Description: "Vector floating point v2"},
		{Name: "IDIVA", Description: "integer divide in ARM state"},
	},
	SpecialRegisters: []dictionary.SpecialRegister{
		{Name: "APSR.N", Group: "APSR"},
		{Name: "APSR.Z", Group: "APSR"},
		{Name: "APSR.C", Group: "APSR"},
		{Name: "APSR.V", Group: "APSR"},
		{Name: "APSR.Q", Group: "APSR"},
		{Name: "APSR.GE", Group: "APSR"},
	},
	Shortcuts: []dictionary.Shortcut{
		{Name: "NZCV", Base: "APSR", Expansion: "N|Z|C|V"},
		{Name: "NZCVQ", Base: "APSR", Expansion: "NZCV|Q"},
		{Name: "ALL", Base: "APSR", Expansion: "NZCVQ|GE"},
	},
	Registers: []dictionary.RegisterClass{
		{Name: "SP", Kind: dictionary.RegisterKind_GP, Bits: 32, Fixed: true},
		{Name: "LR", Kind: dictionary.RegisterKind_GP, Bits: 32, Fixed: true},
		{Name: "PC", Kind: dictionary.RegisterKind_GP, Bits: 32, Fixed: true},
		{Name: "APSR", Kind: dictionary.RegisterKind_Special, Bits: 32, Fixed: true},
		{Name: "RegList", Kind: dictionary.RegisterKind_List},
	},
}

var armEntries = []Entry{
	{"adc/adcS", "Rd!=PC, Rn!=PC, #ImmA", "A32", "cond:4|0010101|S|Rn:4|Rd:4|imm:12", "ARMv4+ APSR.NZCV=X"},
	{"adc/adcS", "Rd!=PC, Rn!=PC, Rm!=PC", "A32", "cond:4|0000101|S|Rn:4|Rd:4|imm:5|type:2|0|Rm:4", "ARMv4+ APSR.NZCV=X"},
	{"adc/adcS", "Rd!=SP!=PC, Rn!=SP!=PC, #ImmT", "T32", "11110|i|0|1010|S|Rn:4|0|imm3:3|Rd:4|imm8:8", "ARMv6T2+ APSR.NZCV=X"},
	{"adcS", "Rdn, Rm", "T16", "0100000101|Rm:3|Rdn:3", "ARMv4T+ IT=OUT APSR.NZCV=X"},
	{"add/addS", "Rd!=PC, Rn, #ImmA", "A32", "cond:4|0010100|S|Rn:4|Rd:4|imm:12", "ARMv4+ APSR.NZCV=W"},
	{"addS", "Rd, Rn, #ImmZ", "T16", "0001110|imm:3|Rn:3|Rd:3", "ARMv4T+ IT=OUT APSR.NZCV=W"},
	{"add", "Xd, Xn, #ImmA", "A64", "sf|0|0|100010|sh|imm:12|Rn:5|Rd:5", "ARMv8+"},
	{"movS", "Rd, #ImmZ", "T16", "00100|Rd:3|imm:8", "ARMv4T+ IT=OUT APSR.N|Z=W"},
	{"ldr", "Rt, [Rn!=PC, #ImmZ]{!}", "A32", "cond:4|010|P|U|0|W|1|Rn:4|Rt:4|imm:12", "ARMv4+"},
	{"ldr", "Rt, [Rn, #ImmZ]", "T16", "01101|imm:5|Rn:3|Rt:3", "ARMv4T+"},
	{"ldr", "Rt, [Rn!=PC, +/-Rm]{!}", "A32", "cond:4|011|P|U|0|W|1|Rn:4|Rt:4|imm:5|type:2|0|Rm:4", "ARMv4+"},
	{"str", "Rt, [Rn!=PC, #ImmZ]{!}", "A32", "cond:4|010|P|U|0|W|0|Rn:4|Rt:4|imm:12", "ARMv4+"},
	{"str", "Rt, [Rn, #ImmZ]", "T16", "01100|imm:5|Rn:3|Rt:3", "ARMv4T+"},
	{"push", "RegList", "T16", "1011010|M|register_list:8", "ARMv4T+"},
	{"b", "#RelA", "A32", "cond:4|1010|imm:24", "ARMv4+ Control=Jump"},
	{"b", "#RelA", "T16", "11100|imm:11", "ARMv4T+ IT=OUT|LAST Control=Jump"},
	{"bl", "#RelA", "A32", "cond:4|1011|imm:24", "ARMv4+ Control=Call"},
	{"svc", "#ImmZ", "A32", "cond:4|1111|imm:24", "ARMv4+ Control=Call Volatile"},
	{"mrs", "Rd!=PC, R:APSR", "A32", "cond:4|00010000|1111|Rd:4|000000000000", "ARMv4+ APSR.NZCVQ=R"},
	{"sdiv", "Rd!=PC, Rn!=PC, Rm!=PC", "A32", "cond:4|01110001|Rd:4|1111|Rm:4|0001|Rn:4", "IDIVA"},
	{"vadd.f32", "Dd, Dn, Dm", "A32", "111100100|D|0|0|Vn:4|Vd:4|1101|N|0|M|0|Vm:4", "ASIMD ARM"},
	{"vadd.f32", "Qd, Qn, Qm", "A32", "111100100|D|0|0|Vn:4|Vd:4|1101|N|1|M|0|Vm:4", "ASIMD ARM"},
	{"vadd.f64", "Dd, Dn, Dm", "A32", "cond:4|11100|D|11|Vn:4|Vd:4|101|1|N|0|M|0|Vm:4", "VFPv2"},
	{"nop", "", "T32", "11110011101011111000000000000000", "ARMv6T2+"},
	{"udf", "#ImmZ", "A32", "111001111111|imm:12|1111|imm4:4", "ARMv4+ ?"},
}
