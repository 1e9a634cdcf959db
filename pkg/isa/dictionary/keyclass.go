package dictionary

// Classification of a metadata key against the dictionaries
type KeyClass uint

const (
	// Key not found in any dictionary
	KeyClass_Unknown KeyClass = iota
	// CPU feature or ISA extension
	KeyClass_Extension
	// Typed attribute
	KeyClass_Attribute
	// Special or flag register
	KeyClass_SpecialRegister
	// The "?" marker of entries whose semantics are not documented
	KeyClass_Unspecified
)

// Metadata token marking undocumented semantics
const UnspecifiedKey = "?"

func (c KeyClass) String() string {
	switch c {
	case KeyClass_Unknown:
		return "unknown"
	case KeyClass_Extension:
		return "extension"
	case KeyClass_Attribute:
		return "attribute"
	case KeyClass_SpecialRegister:
		return "special-register"
	case KeyClass_Unspecified:
		return "unspecified"
	}

	panic("unreachable")
}
