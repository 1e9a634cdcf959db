package dictionary

import "slices"

// Governs how the value assigned to a typed attribute is coerced
type ValueKind uint

const (
	// Boolean attribute, set by just naming it
	ValueKind_Flag ValueKind = iota
	// Single string value
	ValueKind_String
	// Pipe separated list of strings
	ValueKind_StringList
)

func (k ValueKind) String() string {
	switch k {
	case ValueKind_Flag:
		return "flag"
	case ValueKind_String:
		return "string"
	case ValueKind_StringList:
		return "string-list"
	}

	panic("unreachable")
}

// Typed attributes known by the compiler. This is a closed set, metadata keys
// not matching any of these (nor any other dictionary) are classified as unknown.
type AttributeID uint

const (
	Attribute_Unknown AttributeID = iota

	// Valid in 32-bit mode
	Attribute_X86
	// Valid in 64-bit mode
	Attribute_X64
	// Accepts the LOCK prefix
	Attribute_Lock
	// Accepts the XACQUIRE prefix
	Attribute_XAcquire
	// Accepts the XRELEASE prefix
	Attribute_XRelease
	// Accepts the REP/REPE prefix
	Attribute_Rep
	// Accepts the REPNE prefix
	Attribute_Repne
	// Accepts the BND prefix
	Attribute_Bnd
	// Control flow class (Jump, Branch, Call, Return)
	Attribute_Control
	// Has side effects that cannot be modeled, never reorder
	Attribute_Volatile
	// Privilege level required (L0, L3)
	Attribute_Privilege
	// x87 stack top adjustment (push, pop, pop2)
	Attribute_FpuTop
	// Alternative encoding of another variant, skipped by encoders
	Attribute_AltForm

	// Interaction with IT blocks (IN, OUT, LAST, DEF)
	Attribute_IT
	// Instruction only available in ARM (not Thumb) state
	Attribute_ARMOnly
	// Instruction only available in Thumb state
	Attribute_ThumbOnly
	// Unpredictable if executed with the given conditions
	Attribute_Unpredictable

	TOTAL_ATTRIBUTES
)

// Declares a typed attribute
type Attribute struct {
	ID            AttributeID
	Name          string
	Kind          ValueKind
	Architectures []Architecture
	Description   string
}

// Returns true if the attribute can be used in tables of the given architecture
func (a *Attribute) AppliesTo(arch Architecture) bool {
	return slices.Contains(a.Architectures, arch)
}

func (id AttributeID) String() string {
	if id == Attribute_Unknown {
		return "Unknown"
	}

	for i := range Attributes {
		if Attributes[i].ID == id {
			return Attributes[i].Name
		}
	}

	panic("unreachable")
}

var x86Only = []Architecture{Architecture_X86}
var armOnly = []Architecture{Architecture_ARM}

// All typed attributes
var Attributes = []Attribute{
	{ID: Attribute_X86, Name: "X86", Kind: ValueKind_Flag, Architectures: x86Only, Description: "valid in 32-bit mode"},
	{ID: Attribute_X64, Name: "X64", Kind: ValueKind_Flag, Architectures: x86Only, Description: "valid in 64-bit mode"},
	{ID: Attribute_Lock, Name: "Lock", Kind: ValueKind_Flag, Architectures: x86Only, Description: "LOCK prefix allowed"},
	{ID: Attribute_XAcquire, Name: "XAcquire", Kind: ValueKind_Flag, Architectures: x86Only, Description: "XACQUIRE prefix allowed"},
	{ID: Attribute_XRelease, Name: "XRelease", Kind: ValueKind_Flag, Architectures: x86Only, Description: "XRELEASE prefix allowed"},
	{ID: Attribute_Rep, Name: "REP", Kind: ValueKind_Flag, Architectures: x86Only, Description: "REP/REPE prefix allowed"},
	{ID: Attribute_Repne, Name: "REPNE", Kind: ValueKind_Flag, Architectures: x86Only, Description: "REPNE prefix allowed"},
	{ID: Attribute_Bnd, Name: "BND", Kind: ValueKind_Flag, Architectures: x86Only, Description: "BND prefix allowed"},
	{ID: Attribute_Control, Name: "Control", Kind: ValueKind_String, Architectures: []Architecture{Architecture_X86, Architecture_ARM}, Description: "control flow class"},
	{ID: Attribute_Volatile, Name: "Volatile", Kind: ValueKind_Flag, Architectures: []Architecture{Architecture_X86, Architecture_ARM}, Description: "has side effects, never reorder"},
	{ID: Attribute_Privilege, Name: "PRIVILEGE", Kind: ValueKind_String, Architectures: x86Only, Description: "required privilege level"},
	{ID: Attribute_FpuTop, Name: "FPU_TOP", Kind: ValueKind_String, Architectures: x86Only, Description: "x87 stack top adjustment"},
	{ID: Attribute_AltForm, Name: "AltForm", Kind: ValueKind_Flag, Architectures: x86Only, Description: "alternative encoding of another variant"},
	{ID: Attribute_IT, Name: "IT", Kind: ValueKind_StringList, Architectures: armOnly, Description: "interaction with IT blocks"},
	{ID: Attribute_ARMOnly, Name: "ARM", Kind: ValueKind_Flag, Architectures: armOnly, Description: "only available in ARM state"},
	{ID: Attribute_ThumbOnly, Name: "THUMB", Kind: ValueKind_Flag, Architectures: armOnly, Description: "only available in Thumb state"},
	{ID: Attribute_Unpredictable, Name: "UNPRED", Kind: ValueKind_StringList, Architectures: armOnly, Description: "unpredictable under the listed conditions"},
}
