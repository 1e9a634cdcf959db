// Package dictionary holds the read-only lookup tables the instruction
// grammars classify names against. A Config is built once per architecture
// and passed explicitly to every parse call.
package dictionary

import (
	"errors"

	"github.com/Manu343726/isadb/pkg/utils"
)

var (
	ErrDuplicateEntry = errors.New("duplicate dictionary entry")
	ErrInvalidEntry   = errors.New("invalid dictionary entry")
)

// Raw dictionary contents, as found in fixture data
type Tables struct {
	Extensions       []Extension       `yaml:"extensions,omitempty"`
	SpecialRegisters []SpecialRegister `yaml:"specialRegisters,omitempty"`
	Shortcuts        []Shortcut        `yaml:"shortcuts,omitempty"`
	Registers        []RegisterClass   `yaml:"registers,omitempty"`
}

// Returns the concatenation of two sets of tables
func (t Tables) Merge(other Tables) Tables {
	return Tables{
		Extensions:       append(append([]Extension(nil), t.Extensions...), other.Extensions...),
		SpecialRegisters: append(append([]SpecialRegister(nil), t.SpecialRegisters...), other.SpecialRegisters...),
		Shortcuts:        append(append([]Shortcut(nil), t.Shortcuts...), other.Shortcuts...),
		Registers:        append(append([]RegisterClass(nil), t.Registers...), other.Registers...),
	}
}

// Immutable set of dictionaries for one architecture. Safe for concurrent use.
type Config struct {
	architecture     Architecture
	extensions       map[string]*Extension
	attributes       map[string]*Attribute
	specialRegisters map[string]*SpecialRegister
	shortcuts        map[string]*Shortcut
	registers        map[string]*RegisterClass
}

func indexEntries[T any](entries []T, name func(*T) string, table string) (map[string]*T, error) {
	index := make(map[string]*T, len(entries))

	for i := range entries {
		entry := &entries[i]
		key := name(entry)

		if key == "" {
			return nil, utils.MakeError(ErrInvalidEntry, "%v entry %v has no name", table, i)
		}

		if _, exists := index[key]; exists {
			return nil, utils.MakeError(ErrDuplicateEntry, "%v '%v'", table, key)
		}

		index[key] = entry
	}

	return index, nil
}

// Builds the dictionaries of an architecture. The given tables are copied,
// later changes to them do not affect the config.
func New(arch Architecture, tables Tables) (*Config, error) {
	tables = Tables{}.Merge(tables)

	c := &Config{
		architecture: arch,
		attributes:   make(map[string]*Attribute),
	}

	var err error

	if c.extensions, err = indexEntries(tables.Extensions, func(e *Extension) string { return e.Name }, "extension"); err != nil {
		return nil, err
	}
	if c.specialRegisters, err = indexEntries(tables.SpecialRegisters, func(r *SpecialRegister) string { return r.Name }, "special register"); err != nil {
		return nil, err
	}
	if c.shortcuts, err = indexEntries(tables.Shortcuts, func(s *Shortcut) string { return s.Key() }, "shortcut"); err != nil {
		return nil, err
	}
	if c.registers, err = indexEntries(tables.Registers, func(r *RegisterClass) string { return r.Name }, "register"); err != nil {
		return nil, err
	}

	for i := range Attributes {
		if Attributes[i].AppliesTo(arch) {
			c.attributes[Attributes[i].Name] = &Attributes[i]
		}
	}

	for _, shortcut := range c.shortcuts {
		if shortcut.Expansion == "" {
			return nil, utils.MakeError(ErrInvalidEntry, "shortcut '%v' has an empty expansion", shortcut.Key())
		}
	}

	return c, nil
}

func (c *Config) Architecture() Architecture {
	return c.architecture
}

func (c *Config) Extension(name string) (*Extension, bool) {
	e, ok := c.extensions[name]
	return e, ok
}

func (c *Config) Attribute(name string) (*Attribute, bool) {
	a, ok := c.attributes[name]
	return a, ok
}

func (c *Config) SpecialRegister(name string) (*SpecialRegister, bool) {
	r, ok := c.specialRegisters[name]
	return r, ok
}

// Returns the shortcut triggered by the given metadata key
func (c *Config) Shortcut(key string) (*Shortcut, bool) {
	s, ok := c.shortcuts[key]
	return s, ok
}

// Returns the register class or specific register spelled exactly as name
func (c *Config) Register(name string) (*RegisterClass, bool) {
	r, ok := c.registers[name]
	return r, ok
}

// Classifies a metadata key (after shortcut expansion) against the dictionaries
func (c *Config) Classify(key string) KeyClass {
	switch {
	case key == UnspecifiedKey:
		return KeyClass_Unspecified
	case c.extensions[key] != nil:
		return KeyClass_Extension
	case c.attributes[key] != nil:
		return KeyClass_Attribute
	case c.specialRegisters[key] != nil:
		return KeyClass_SpecialRegister
	}

	return KeyClass_Unknown
}

// Names of all the extensions known, in ascending order
func (c *Config) ExtensionNames() []string {
	return utils.SortedKeys(c.extensions)
}
