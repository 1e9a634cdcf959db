package dictionary

import (
	"errors"
	"strings"

	"github.com/Manu343726/isadb/pkg/utils"
)

// Identifies the instruction set a table describes, and with it the grammar
// dialect used to parse its opcode strings
type Architecture uint

const (
	// Fixed width RISC encodings described with bit-field templates
	Architecture_ARM Architecture = iota
	// Variable length encodings described with opcode components
	Architecture_X86

	TOTAL_ARCHITECTURES
)

func (a Architecture) String() string {
	switch a {
	case Architecture_ARM:
		return "arm"
	case Architecture_X86:
		return "x86"
	}

	panic("unreachable")
}

var ErrUnknownArchitecture = errors.New("unknown architecture")

// Parses an architecture tag ("arm" or "x86", case insensitive)
func ParseArchitecture(tag string) (Architecture, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "arm":
		return Architecture_ARM, nil
	case "x86":
		return Architecture_X86, nil
	}

	return 0, utils.MakeError(ErrUnknownArchitecture, "'%v'", tag)
}
