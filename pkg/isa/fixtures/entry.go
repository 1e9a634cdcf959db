// Package fixtures holds the instruction tables compiled by isadb: the
// builtin tables of each architecture and YAML fixture files extending them.
package fixtures

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/utils"
	"gopkg.in/yaml.v3"
)

var ErrInvalidEntry = errors.New("invalid fixture entry")

// One line of an instruction table: name(s), operands, encoding tag, opcode
// and metadata. The name field may hold several '/' separated aliases.
type Entry [5]string

func (e Entry) Name() string     { return e[0] }
func (e Entry) Operands() string { return e[1] }
func (e Entry) Encoding() string { return e[2] }
func (e Entry) Opcode() string   { return e[3] }
func (e Entry) Metadata() string { return e[4] }

// Returns the trimmed '/' separated names of the entry, nil if the name field is blank
func (e Entry) Aliases() []string {
	if strings.TrimSpace(e.Name()) == "" {
		return nil
	}

	aliases := strings.Split(e.Name(), "/")
	for i := range aliases {
		aliases[i] = strings.TrimSpace(aliases[i])
	}

	return aliases
}

func (e Entry) String() string {
	return fmt.Sprintf("[%q, %q, %q, %q, %q]", e[0], e[1], e[2], e[3], e[4])
}

// Entries are written as a YAML sequence of exactly five strings
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	var fields []string

	if err := node.Decode(&fields); err != nil {
		return utils.MakeError(ErrInvalidEntry, "line %v: %w", node.Line, err)
	}

	if len(fields) != len(e) {
		return utils.MakeError(ErrInvalidEntry, "line %v: expected %v fields, got %v", node.Line, len(e), len(fields))
	}

	copy(e[:], fields)
	return nil
}

func (e Entry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}

	for _, field := range e {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: field, Style: yaml.DoubleQuotedStyle})
	}

	return node, nil
}

// Instruction table of one architecture together with the dictionaries it is
// resolved against
type Set struct {
	Architecture dictionary.Architecture
	Tables       dictionary.Tables
	Entries      []Entry
}

// Builds the dictionary configuration of the set
func (s *Set) Config() (*dictionary.Config, error) {
	return dictionary.New(s.Architecture, s.Tables)
}

// Returns a new set with the dictionaries and entries of both sets
func (s *Set) Merge(other *Set) (*Set, error) {
	if s.Architecture != other.Architecture {
		return nil, utils.MakeError(ErrInvalidEntry, "cannot merge %v fixtures into %v fixtures", other.Architecture, s.Architecture)
	}

	return &Set{
		Architecture: s.Architecture,
		Tables:       s.Tables.Merge(other.Tables),
		Entries:      append(append([]Entry(nil), s.Entries...), other.Entries...),
	}, nil
}

// Returns the builtin fixture set of an architecture
func Builtin(arch dictionary.Architecture) *Set {
	switch arch {
	case dictionary.Architecture_ARM:
		return &Set{Architecture: arch, Tables: armTables.Merge(dictionary.Tables{}), Entries: append([]Entry(nil), armEntries...)}
	case dictionary.Architecture_X86:
		return &Set{Architecture: arch, Tables: x86Tables.Merge(dictionary.Tables{}), Entries: append([]Entry(nil), x86Entries...)}
	}

	panic("unreachable")
}
