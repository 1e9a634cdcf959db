package operands

import (
	"fmt"
	"strings"
)

// How an instruction accesses an operand
type AccessMode uint

const (
	// Not specified by the table
	AccessMode_None AccessMode = iota
	AccessMode_Read
	AccessMode_Write
	AccessMode_ReadWrite
)

func (m AccessMode) String() string {
	switch m {
	case AccessMode_None:
		return ""
	case AccessMode_Read:
		return "R"
	case AccessMode_Write:
		return "W"
	case AccessMode_ReadWrite:
		return "X"
	}

	panic("unreachable")
}

// Inclusive range of bits [Hi:Lo]
type BitRange struct {
	Hi int
	Lo int
}

// Access mode of an operand, optionally restricted to a range of its bits
type Access struct {
	Mode  AccessMode
	Range *BitRange
}

func (a Access) String() string {
	if a.Mode == AccessMode_None {
		return ""
	}

	if a.Range != nil {
		return fmt.Sprintf("%v[%v:%v]:", a.Mode, a.Range.Hi, a.Range.Lo)
	}

	return a.Mode.String() + ":"
}

// Describes one operand of an instruction variant: all the forms it can take
// plus how the instruction uses it. An operand always has at least one form.
type Operand struct {
	// Operand as written in the table
	Spelling string
	Access   Access
	// Not encoded in the instruction (<eax>, literal 1)
	Implicit bool
	// May be omitted in assembly ({...})
	Optional bool
	// Broadcast element size in bits (/b32), zero if broadcast is not supported
	Broadcast int
	// Supports {k} opmask
	Mask bool
	// Supports {z} zeroing
	Zeroing bool
	// Supports {er} embedded rounding
	Rounding bool
	// Supports {sae} suppress all exceptions
	SAE bool

	forms []Form
}

// Creates an operand from its forms
func NewOperand(form Form, alternatives ...Form) *Operand {
	return &Operand{
		forms: append([]Form{form}, alternatives...),
	}
}

// Returns all the alternative forms of the operand, in table order
func (o *Operand) Forms() []Form {
	return append([]Form(nil), o.forms...)
}

func (o *Operand) hasKind(kind FormKind) bool {
	for _, f := range o.forms {
		if f.Kind() == kind {
			return true
		}
	}

	return false
}

func (o *Operand) HasRegister() bool  { return o.hasKind(FormKind_Register) }
func (o *Operand) HasMemory() bool    { return o.hasKind(FormKind_Memory) }
func (o *Operand) HasImmediate() bool { return o.hasKind(FormKind_Immediate) }
func (o *Operand) HasRelative() bool  { return o.hasKind(FormKind_Relative) }

// Returns true if the operand is an immediate that has to be encoded in the instruction
func (o *Operand) IsEncodedImmediate() bool {
	if o.Implicit {
		return false
	}

	for _, f := range o.forms {
		if imm, isImm := f.(*ImmediateForm); isImm && !imm.IsLiteral() {
			return true
		}
	}

	return false
}

// Returns true if any memory form of the operand uses vector SIB addressing
func (o *Operand) HasVectorMemory() bool {
	for _, f := range o.forms {
		if mem, isMem := f.(*MemoryForm); isMem && mem.Vector != nil {
			return true
		}
	}

	return false
}

// Returns the first register form of the operand, nil if none
func (o *Operand) Register() *RegisterForm {
	for _, f := range o.forms {
		if r, ok := f.(*RegisterForm); ok {
			return r
		}
	}

	return nil
}

// Returns the first memory form of the operand, nil if none
func (o *Operand) Memory() *MemoryForm {
	for _, f := range o.forms {
		if m, ok := f.(*MemoryForm); ok {
			return m
		}
	}

	return nil
}

// Returns the first immediate form of the operand, nil if none
func (o *Operand) Immediate() *ImmediateForm {
	for _, f := range o.forms {
		if i, ok := f.(*ImmediateForm); ok {
			return i
		}
	}

	return nil
}

// Returns the first relative form of the operand, nil if none
func (o *Operand) Relative() *RelativeForm {
	for _, f := range o.forms {
		if r, ok := f.(*RelativeForm); ok {
			return r
		}
	}

	return nil
}

// Returns the canonical textual representation of the operand
func (o *Operand) String() string {
	var builder strings.Builder

	builder.WriteString(o.Access.String())

	body := joinForms(o.forms, "/")
	if o.Broadcast != 0 {
		body += fmt.Sprintf("/b%v", o.Broadcast)
	}

	switch {
	case o.Implicit && !o.isLiteral():
		body = "<" + body + ">"
	case o.Optional:
		body = "{" + body + "}"
	}

	builder.WriteString(body)

	if o.Mask && o.Zeroing {
		builder.WriteString(" {kz}")
	} else if o.Mask {
		builder.WriteString(" {k}")
	} else if o.Zeroing {
		builder.WriteString(" {z}")
	}
	if o.Rounding {
		builder.WriteString(" {er}")
	}
	if o.SAE {
		builder.WriteString(" {sae}")
	}

	return builder.String()
}

// Returns a short description of the forms of the operand (reg(gp)/mem(32))
func (o *Operand) Describe() string {
	descriptions := make([]string, len(o.forms))

	for i, f := range o.forms {
		descriptions[i] = describeForm(f)
	}

	return strings.Join(descriptions, "/")
}

func (o *Operand) isLiteral() bool {
	if len(o.forms) != 1 {
		return false
	}

	imm, isImm := o.forms[0].(*ImmediateForm)
	return isImm && imm.IsLiteral()
}
