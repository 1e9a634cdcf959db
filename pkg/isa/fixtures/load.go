package fixtures

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/utils"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Layout of a YAML fixture file
type File struct {
	Architecture      string `yaml:"architecture"`
	dictionary.Tables `yaml:",inline"`
	Instructions      []Entry `yaml:"instructions"`
}

// Returns all the problems found in the file entries, combined with multierr
func (f *File) Validate() error {
	var err error

	for i, entry := range f.Instructions {
		if aliases := entry.Aliases(); len(aliases) == 0 {
			err = multierr.Append(err, utils.MakeError(ErrInvalidEntry, "instruction %v has no name", i))
		} else if slices.Contains(aliases, "") {
			err = multierr.Append(err, utils.MakeError(ErrInvalidEntry, "instruction %v '%v' has an empty alias", i, entry.Name()))
		}

		if strings.TrimSpace(entry.Opcode()) == "" {
			err = multierr.Append(err, utils.MakeError(ErrInvalidEntry, "instruction %v '%v' has no opcode", i, entry.Name()))
		}
	}

	for i, shortcut := range f.Shortcuts {
		if shortcut.Expansion == "" {
			err = multierr.Append(err, utils.MakeError(ErrInvalidEntry, "shortcut %v '%v' has no expansion", i, shortcut.Key()))
		}
	}

	for i, register := range f.Registers {
		if register.Name == "" {
			err = multierr.Append(err, utils.MakeError(ErrInvalidEntry, "register %v has no name", i))
		}
	}

	return err
}

// Reads a fixture file. Every invalid entry is reported, not just the first one.
func Load(reader io.Reader) (*Set, error) {
	var file File

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, utils.MakeError(ErrInvalidEntry, "empty fixture file")
		}
		return nil, utils.MakeError(ErrInvalidEntry, "%w", err)
	}

	arch, err := dictionary.ParseArchitecture(file.Architecture)
	if err != nil {
		return nil, err
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return &Set{
		Architecture: arch,
		Tables:       file.Tables,
		Entries:      file.Instructions,
	}, nil
}

// Reads a fixture file from disk
func LoadFile(path string) (*Set, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	set, err := Load(bytes.NewReader(contents))
	if err != nil {
		return nil, utils.MakeError(err, "%v", path)
	}

	return set, nil
}

// Writes the set as a fixture file
func Save(writer io.Writer, set *Set) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	err := encoder.Encode(&File{
		Architecture: set.Architecture.String(),
		Tables:       set.Tables,
		Instructions: set.Entries,
	})

	return multierr.Append(err, encoder.Close())
}
