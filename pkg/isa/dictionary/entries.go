package dictionary

import (
	"strings"

	"github.com/Manu343726/isadb/pkg/utils"
	"gopkg.in/yaml.v3"
)

// CPU feature or ISA extension an instruction may require
type Extension struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Status or flag register bit (or whole register) instructions may read or write
type SpecialRegister struct {
	// Full name, including the group prefix if any (APSR.C, OF, FPSR.IOC)
	Name string `yaml:"name"`
	// Register the flag belongs to, if any
	Group string `yaml:"group,omitempty"`
}

// Named alias expanding to one or more metadata keys. The expansion may
// contain '|' separated alternatives, which are assigned independently.
type Shortcut struct {
	Name      string `yaml:"name"`
	Base      string `yaml:"base,omitempty"`
	Expansion string `yaml:"expansion"`
}

// Returns the metadata key the shortcut is triggered by
func (s *Shortcut) Key() string {
	if s.Base == "" {
		return s.Name
	}

	return s.Base + "." + s.Name
}

// Returns the key the shortcut is substituted with
func (s *Shortcut) Expand() string {
	if s.Base == "" {
		return s.Expansion
	}

	return s.Base + "." + s.Expansion
}

// Identifies the kind of a register operand
type RegisterKind uint

const (
	RegisterKind_GP RegisterKind = iota
	RegisterKind_Segment
	RegisterKind_Control
	RegisterKind_Debug
	RegisterKind_FPU
	RegisterKind_MMX
	RegisterKind_Vector
	RegisterKind_Mask
	RegisterKind_Bound
	RegisterKind_Tile
	RegisterKind_FP
	RegisterKind_Special
	RegisterKind_List

	TOTAL_REGISTER_KINDS
)

func (k RegisterKind) String() string {
	switch k {
	case RegisterKind_GP:
		return "gp"
	case RegisterKind_Segment:
		return "sreg"
	case RegisterKind_Control:
		return "creg"
	case RegisterKind_Debug:
		return "dreg"
	case RegisterKind_FPU:
		return "st"
	case RegisterKind_MMX:
		return "mm"
	case RegisterKind_Vector:
		return "vec"
	case RegisterKind_Mask:
		return "k"
	case RegisterKind_Bound:
		return "bnd"
	case RegisterKind_Tile:
		return "tmm"
	case RegisterKind_FP:
		return "fp"
	case RegisterKind_Special:
		return "special"
	case RegisterKind_List:
		return "list"
	}

	panic("unreachable")
}

// Returns the register kind with the given name (gp, vector, mask, ...)
func ParseRegisterKind(name string) (RegisterKind, error) {
	for kind := RegisterKind(0); kind < TOTAL_REGISTER_KINDS; kind++ {
		if kind.String() == strings.ToLower(strings.TrimSpace(name)) {
			return kind, nil
		}
	}

	return 0, utils.MakeError(ErrInvalidEntry, "unknown register kind '%v'", name)
}

func (k RegisterKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k *RegisterKind) UnmarshalYAML(node *yaml.Node) error {
	kind, err := ParseRegisterKind(node.Value)
	if err != nil {
		return utils.MakeError(err, "line %v", node.Line)
	}

	*k = kind
	return nil
}

// Register operand spelling known by exact name: either a register class
// (r32, xmm) or a specific register (eax, xmm0, SP)
type RegisterClass struct {
	Name string       `yaml:"name"`
	Kind RegisterKind `yaml:"kind"`
	// Register size in bits, zero if not meaningful
	Bits int `yaml:"bits,omitempty"`
	// True if the spelling names one specific register instead of a class
	Fixed bool `yaml:"fixed,omitempty"`
}
