// Package database groups compiled instruction records by name.
package database

import (
	"maps"
	"slices"
	"sort"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/instructions"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/components"
	"github.com/Manu343726/isadb/pkg/utils"
	"github.com/samber/lo"
)

// Aggregated counters of a database, updated on every insertion
type Stats struct {
	// Number of records
	Insts int
	// Number of distinct names
	Groups int
	// Number of records per encoding prefix class
	Prefixes map[components.PrefixClass]int
	// Number of records that had diagnostics when inserted
	Invalid int
	// Total number of diagnostics of all records when inserted
	Diagnostics int
}

// Instruction records of one architecture, grouped by name. Groups keep
// insertion order. Not safe for concurrent use.
type Database struct {
	architecture dictionary.Architecture
	groups       map[string][]*instructions.Instruction
	names        []string
	stats        Stats
}

func New(arch dictionary.Architecture) *Database {
	return &Database{
		architecture: arch,
		groups:       make(map[string][]*instructions.Instruction),
		stats: Stats{
			Prefixes: make(map[components.PrefixClass]int),
		},
	}
}

func (db *Database) Architecture() dictionary.Architecture {
	return db.architecture
}

// Appends a record to the group of its name
func (db *Database) Insert(record *instructions.Instruction) {
	group, exists := db.groups[record.Name]

	if !exists {
		db.names = nil
		db.stats.Groups++
	}

	db.groups[record.Name] = append(group, record)

	db.stats.Insts++
	db.stats.Prefixes[record.PrefixClass()]++
	db.stats.Diagnostics += record.DiagnosticCount()

	if !record.Valid() {
		db.stats.Invalid++
	}
}

// Returns all the variants of an instruction in insertion order, nil if the name is unknown
func (db *Database) Query(name string) []*instructions.Instruction {
	return slices.Clone(db.groups[name])
}

// Returns all the instruction names in lexicographical order
func (db *Database) NamesSorted() []string {
	if db.names == nil {
		db.names = utils.Keys(db.groups)
		sort.Strings(db.names)
	}

	return slices.Clone(db.names)
}

// Calls f for every group, in name order
func (db *Database) ForEachGroup(f func(name string, group []*instructions.Instruction)) {
	for _, name := range db.NamesSorted() {
		f(name, db.groups[name])
	}
}

// Calls f for every record, in name order and then insertion order
func (db *Database) ForEachRecord(f func(record *instructions.Instruction)) {
	db.ForEachGroup(func(_ string, group []*instructions.Instruction) {
		for _, record := range group {
			f(record)
		}
	})
}

// Returns all the groups as name/records pairs, in name order
func (db *Database) Groups() []utils.Pair[string, []*instructions.Instruction] {
	return utils.ZipMap(db.groups)
}

// Returns all the records with diagnostics, in name order and then insertion order
func (db *Database) Invalid() []*instructions.Instruction {
	var records []*instructions.Instruction

	db.ForEachRecord(func(record *instructions.Instruction) {
		records = append(records, record)
	})

	return lo.Filter(records, func(record *instructions.Instruction, _ int) bool {
		return !record.Valid()
	})
}

// Number of records
func (db *Database) Len() int {
	return db.stats.Insts
}

func (db *Database) Stats() Stats {
	stats := db.stats
	stats.Prefixes = maps.Clone(db.stats.Prefixes)
	return stats
}
