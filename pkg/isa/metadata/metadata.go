// Package metadata resolves the metadata string of an instruction entry
// (space separated key[=value] tokens) against the dictionaries.
package metadata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/spf13/cast"
)

// Values special registers can be assigned: read, written, read-write,
// undefined, cleared and set
var SpecialRegisterValues = []string{"R", "W", "X", "U", "0", "1"}

// Coerced value of a typed attribute
type AttributeValue struct {
	Kind dictionary.ValueKind
	Flag bool
	Text string
	List []string
}

func (v AttributeValue) String() string {
	switch v.Kind {
	case dictionary.ValueKind_Flag:
		return fmt.Sprint(v.Flag)
	case dictionary.ValueKind_String:
		return v.Text
	case dictionary.ValueKind_StringList:
		return strings.Join(v.List, "|")
	}

	panic("unreachable")
}

// Resolved metadata of an instruction entry
type Metadata struct {
	Text string
	// Required extensions, in order of appearance
	Extensions []string
	Attributes map[dictionary.AttributeID]AttributeValue
	// Special register name to access (one of SpecialRegisterValues)
	SpecialRegisters map[string]string
	// The entry is marked with "?"
	Unspecified bool
	// Every assignment the metadata expanded to, in order
	Assignments []Assignment
}

// Returns true if the instruction requires the given extension
func (m *Metadata) HasExtension(name string) bool {
	return slices.Contains(m.Extensions, name)
}

// Returns the value of a typed attribute, if assigned
func (m *Metadata) Attribute(id dictionary.AttributeID) (AttributeValue, bool) {
	value, ok := m.Attributes[id]
	return value, ok
}

// Returns true if the given flag attribute is set
func (m *Metadata) Flag(id dictionary.AttributeID) bool {
	value, ok := m.Attributes[id]
	return ok && value.Kind == dictionary.ValueKind_Flag && value.Flag
}

// Resolves a metadata string. Unknown keys and malformed values are reported
// to diag and ignored.
func Resolve(cfg *dictionary.Config, text string, diag *diagnostics.Diagnostics) *Metadata {
	m := &Metadata{
		Text:             text,
		Attributes:       make(map[dictionary.AttributeID]AttributeValue),
		SpecialRegisters: make(map[string]string),
	}

	for _, token := range strings.Fields(text) {
		for _, assignment := range Expand(cfg, token) {
			m.Assignments = append(m.Assignments, assignment)
			m.apply(cfg, assignment, diag)
		}
	}

	return m
}

func (m *Metadata) apply(cfg *dictionary.Config, assignment Assignment, diag *diagnostics.Diagnostics) {
	switch assignment.Class {
	case dictionary.KeyClass_Unspecified:
		m.Unspecified = true

	case dictionary.KeyClass_Extension:
		if assignment.HasValue {
			diag.Reportf("extension '%v' does not take a value", assignment)
		}
		if !m.HasExtension(assignment.Key) {
			m.Extensions = append(m.Extensions, assignment.Key)
		}

	case dictionary.KeyClass_Attribute:
		attribute, _ := cfg.Attribute(assignment.Key)

		value, err := coerce(attribute, assignment)
		if err != nil {
			diag.Reportf("%v", err)
			return
		}

		if _, duplicated := m.Attributes[attribute.ID]; duplicated {
			diag.Reportf("attribute '%v' assigned more than once", attribute.Name)
		}
		m.Attributes[attribute.ID] = value

	case dictionary.KeyClass_SpecialRegister:
		if !slices.Contains(SpecialRegisterValues, assignment.Value) {
			diag.Reportf("invalid access '%v' for special register '%v', expected one of %v", assignment.Value, assignment.Key, SpecialRegisterValues)
			return
		}
		m.SpecialRegisters[assignment.Key] = assignment.Value

	default:
		diag.Reportf("unhandled flag '%v'", assignment)
	}
}

func coerce(attribute *dictionary.Attribute, assignment Assignment) (AttributeValue, error) {
	value := AttributeValue{Kind: attribute.Kind}

	switch attribute.Kind {
	case dictionary.ValueKind_Flag:
		if !assignment.HasValue {
			value.Flag = true
			return value, nil
		}

		flag, err := cast.ToBoolE(assignment.Value)
		if err != nil {
			return value, fmt.Errorf("flag attribute '%v' has non boolean value '%v'", attribute.Name, assignment.Value)
		}
		value.Flag = flag

	case dictionary.ValueKind_String:
		if assignment.Value == "" {
			return value, fmt.Errorf("attribute '%v' requires a value", attribute.Name)
		}
		value.Text = assignment.Value

	case dictionary.ValueKind_StringList:
		if assignment.Value == "" {
			return value, fmt.Errorf("attribute '%v' requires a list of values", attribute.Name)
		}
		value.List = strings.Split(assignment.Value, "|")
	}

	return value, nil
}
