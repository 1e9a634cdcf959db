package operands

import (
	"fmt"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
)

// Identifies the variant of an operand form
type FormKind uint

const (
	FormKind_Register FormKind = iota
	FormKind_Memory
	FormKind_Immediate
	FormKind_Relative
)

func (k FormKind) String() string {
	switch k {
	case FormKind_Register:
		return "Register"
	case FormKind_Memory:
		return "Memory"
	case FormKind_Immediate:
		return "Immediate"
	case FormKind_Relative:
		return "Relative"
	}

	panic("unreachable")
}

// One of the mutually exclusive shapes an operand may take. Implemented only
// by *RegisterForm, *MemoryForm, *ImmediateForm and *RelativeForm.
type Form interface {
	Kind() FormKind
	String() string
	form()
}

// Register operand
type RegisterForm struct {
	// Spelling in the operand list (r32, xmm, Rn, SP)
	Spelling string
	Class    dictionary.RegisterKind
	// Register size in bits, zero if not meaningful
	Bits int
	// True if a specific register is required instead of any of the class
	Fixed bool
	// Registers the operand cannot be (Rn!=PC)
	Exclude []string
	// Vector element arrangement suffix (Vd.T), if any
	Element string
	// Vector lane selector (Dm[x]), if any
	Lane string
}

func (*RegisterForm) form()            {}
func (*RegisterForm) Kind() FormKind   { return FormKind_Register }
func (r *RegisterForm) String() string { return r.Spelling }

// Returns true if the register form rejects the given register
func (r *RegisterForm) Excludes(register string) bool {
	for _, excluded := range r.Exclude {
		if excluded == register {
			return true
		}
	}

	return false
}

// Index register of a vector SIB memory operand (vm32x, vm64z)
type VectorIndex struct {
	// xmm, ymm or zmm
	Register string
	// Size of the index register in bits
	Bits int
	// Size of each index element in bits
	ElementBits int
}

// Memory operand
type MemoryForm struct {
	Spelling string
	// Size of the accessed memory in bits, zero if unsized
	Bits int
	// Memory type suffix for typed x87 operands (fp, int, bcd, dec)
	Type string
	// Absolute offset addressing (moffs), no ModRM byte
	Offset bool
	// Required segment, if any
	Segment string
	// Vector SIB addressing, if any
	Vector *VectorIndex
	// Base register of bracketed forms ([zsi], [Rn!=PC, #ImmZ])
	Base *RegisterForm
	// Offset components following the base register
	Components []Form
	// Base register writeback ("!" suffix)
	Writeback bool
	// Base register writeback is allowed but not required ("{!}" suffix)
	WritebackOptional bool
}

func (*MemoryForm) form()            {}
func (*MemoryForm) Kind() FormKind   { return FormKind_Memory }
func (m *MemoryForm) String() string { return m.Spelling }

// Immediate operand
type ImmediateForm struct {
	Spelling string
	// Immediate size in bits, zero if not fixed by the spelling
	Bits int
	// Signed (i*) vs unsigned (u*) immediates
	Signed bool
	// Symbolic name (#ImmA), if any
	Name string
	// Fixed literal value, if the operand is a literal
	Value *int64
}

func (*ImmediateForm) form()            {}
func (*ImmediateForm) Kind() FormKind   { return FormKind_Immediate }
func (i *ImmediateForm) String() string { return i.Spelling }

// Returns true if the immediate is a literal value instead of a field
func (i *ImmediateForm) IsLiteral() bool {
	return i.Value != nil
}

// PC relative displacement operand
type RelativeForm struct {
	Spelling string
	// Displacement size in bits, zero if not fixed by the spelling
	Bits int
}

func (*RelativeForm) form()            {}
func (*RelativeForm) Kind() FormKind   { return FormKind_Relative }
func (r *RelativeForm) String() string { return r.Spelling }

func joinForms(forms []Form, separator string) string {
	spellings := make([]string, len(forms))

	for i, f := range forms {
		spellings[i] = f.String()
	}

	return strings.Join(spellings, separator)
}

func describeForm(f Form) string {
	switch f := f.(type) {
	case *RegisterForm:
		return fmt.Sprintf("reg(%v)", f.Class)
	case *MemoryForm:
		return fmt.Sprintf("mem(%v)", f.Bits)
	case *ImmediateForm:
		return fmt.Sprintf("imm(%v)", f.Bits)
	case *RelativeForm:
		return fmt.Sprintf("rel(%v)", f.Bits)
	}

	panic("unreachable")
}
