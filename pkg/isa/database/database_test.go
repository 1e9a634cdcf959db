package database

import (
	"math/rand"
	"testing"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/Manu343726/isadb/pkg/isa/instructions"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, arch dictionary.Architecture, entries ...fixtures.Entry) []*instructions.Instruction {
	cfg, err := fixtures.Builtin(arch).Config()
	require.NoError(t, err)

	var records []*instructions.Instruction

	for _, entry := range entries {
		parsed, err := instructions.Parse(cfg, entry)
		require.NoError(t, err)
		records = append(records, parsed...)
	}

	return records
}

var adcEntries = []fixtures.Entry{
	{"adc/adcS", "Rd!=PC, Rn!=PC, #ImmA", "A32", "cond:4|0010101|S|Rn:4|Rd:4|imm:12", "ARMv4+"},
	{"adc/adcS", "Rd!=PC, Rn!=PC, Rm!=PC", "A32", "cond:4|0000101|S|Rn:4|Rd:4|imm:5|type:2|0|Rm:4", "ARMv4+"},
	{"adc/adcS", "Rd!=SP!=PC, Rn!=SP!=PC, #ImmT", "T32", "11110|i|0|1010|S|Rn:4|0|imm3:3|Rd:4|imm8:8", "ARMv6T2+"},
}

func names(records []*instructions.Instruction) []string {
	result := make([]string, len(records))
	for i, record := range records {
		result[i] = record.Name + " " + record.Encoding
	}
	return result
}

func TestDatabase_Grouping(t *testing.T) {
	records := parseAll(t, dictionary.Architecture_ARM, adcEntries...)
	require.Len(t, records, 6)

	for _, seed := range []int64{1, 2, 3} {
		shuffled := append([]*instructions.Instruction(nil), records...)
		rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		db := New(dictionary.Architecture_ARM)
		before := db.Stats()

		for _, record := range shuffled {
			db.Insert(record)
		}

		after := db.Stats()
		assert.Equal(t, 2, after.Groups-before.Groups)
		assert.Equal(t, 6, after.Insts-before.Insts)
		assert.Equal(t, []string{"adc", "adcS"}, db.NamesSorted())
		assert.Len(t, db.Query("adc"), 3)
		assert.Len(t, db.Query("adcS"), 3)
	}
}

func TestDatabase_Ordering(t *testing.T) {
	db := New(dictionary.Architecture_ARM)
	records := parseAll(t, dictionary.Architecture_ARM, append([]fixtures.Entry{
		{"sdiv", "Rd, Rn, Rm", "A32", "cond:4|01110001|Rd:4|1111|Rm:4|0001|Rn:4", "IDIVA"},
	}, adcEntries...)...)

	for _, record := range records {
		db.Insert(record)
	}

	var visited []*instructions.Instruction
	db.ForEachRecord(func(record *instructions.Instruction) {
		visited = append(visited, record)
	})

	assert.Equal(t, []string{
		"adc A32", "adc A32", "adc T32",
		"adcS A32", "adcS A32", "adcS T32",
		"sdiv A32",
	}, names(visited))

	var groups []string
	db.ForEachGroup(func(name string, group []*instructions.Instruction) {
		groups = append(groups, name)
		assert.NotEmpty(t, group)
	})
	assert.Equal(t, []string{"adc", "adcS", "sdiv"}, groups)

	pairs := db.Groups()
	require.Len(t, pairs, 3)
	assert.Equal(t, "adc", pairs[0].First)
	assert.Len(t, pairs[0].Second, 3)
}

func TestDatabase_SortedNamesCacheIsInvalidated(t *testing.T) {
	db := New(dictionary.Architecture_ARM)
	records := parseAll(t, dictionary.Architecture_ARM, adcEntries[0])

	db.Insert(records[1])
	assert.Equal(t, []string{"adcS"}, db.NamesSorted())

	db.Insert(records[0])
	assert.Equal(t, []string{"adc", "adcS"}, db.NamesSorted())

	names := db.NamesSorted()
	names[0] = "changed"
	assert.Equal(t, []string{"adc", "adcS"}, db.NamesSorted())
}

func TestDatabase_Query(t *testing.T) {
	db := New(dictionary.Architecture_ARM)
	assert.Nil(t, db.Query("adc"))
	assert.Empty(t, db.NamesSorted())
	assert.Zero(t, db.Len())
}

func TestDatabase_Stats(t *testing.T) {
	db := New(dictionary.Architecture_X86)
	records := parseAll(t, dictionary.Architecture_X86,
		fixtures.Entry{"adc", "X:r8/m8, ib", "MI", "80 /2 ib", "X86 X64"},
		fixtures.Entry{"vaddps", "W:xmm, xmm, xmm/m128", "RVM", "VEX.NDS.128.0F.WIG 58 /r", "AVX"},
		fixtures.Entry{"fld/fld2", "R:m32fp", "M", "D9 /0", "FPU Bogus"},
	)

	for _, record := range records {
		db.Insert(record)
	}

	stats := db.Stats()
	assert.Equal(t, 4, stats.Insts)
	assert.Equal(t, 4, db.Len())
	assert.Equal(t, 4, stats.Groups)
	assert.Equal(t, map[components.PrefixClass]int{
		components.PrefixClass_None: 1,
		components.PrefixClass_VEX:  1,
		components.PrefixClass_FPU:  2,
	}, stats.Prefixes)
	assert.Equal(t, 2, stats.Invalid)
	assert.Equal(t, 2, stats.Diagnostics)
	assert.Equal(t, []string{"fld M", "fld2 M"}, names(db.Invalid()))

	stats.Prefixes[components.PrefixClass_EVEX] = 10
	assert.NotContains(t, db.Stats().Prefixes, components.PrefixClass_EVEX)
}

func TestDatabase_Documentation(t *testing.T) {
	db := New(dictionary.Architecture_ARM)
	for _, record := range parseAll(t, dictionary.Architecture_ARM, adcEntries...) {
		db.Insert(record)
	}

	docs, err := db.DocString("adc")
	require.NoError(t, err)
	assert.Contains(t, docs, "adc (arm, 3 variants)")
	assert.Contains(t, docs, "adc Rd!=PC, Rn!=PC, #ImmA")

	_, err = db.DocString("bogus")
	assert.ErrorIs(t, err, ErrUnknownInstruction)
}
