package metadata

import (
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/dictionary"
)

// Shortcut chains longer than this are not expanded further
const maxExpansionDepth = 8

// Where an assignment key comes from
type Source uint

const (
	// Written in the metadata string
	Source_Explicit Source = iota
	// Produced by expanding a shortcut
	Source_Shortcut
)

func (s Source) String() string {
	switch s {
	case Source_Explicit:
		return "explicit"
	case Source_Shortcut:
		return "shortcut"
	}

	panic("unreachable")
}

// One key=value pair of a metadata string, after shortcut and alternation expansion
type Assignment struct {
	Key      string
	Value    string
	HasValue bool
	Source   Source
	Class    dictionary.KeyClass
}

func (a Assignment) String() string {
	if a.HasValue {
		return a.Key + "=" + a.Value
	}

	return a.Key
}

type expandedKey struct {
	key    string
	source Source
}

// Expands a single metadata token (key or key=value) into the assignments it
// stands for. Shortcuts are substituted and '|' alternations are split into
// one assignment per alternative, sharing the common dotted prefix and the
// value.
func Expand(cfg *dictionary.Config, token string) []Assignment {
	key, value, hasValue := strings.Cut(token, "=")

	keys := expandKey(cfg, key, Source_Explicit, 0)
	assignments := make([]Assignment, len(keys))

	for i, expanded := range keys {
		assignments[i] = Assignment{
			Key:      expanded.key,
			Value:    value,
			HasValue: hasValue,
			Source:   expanded.source,
			Class:    cfg.Classify(expanded.key),
		}
	}

	return assignments
}

func expandKey(cfg *dictionary.Config, key string, source Source, depth int) []expandedKey {
	if depth >= maxExpansionDepth {
		return []expandedKey{{key, source}}
	}

	if shortcut, isShortcut := cfg.Shortcut(key); isShortcut {
		return expandKey(cfg, shortcut.Expand(), Source_Shortcut, depth+1)
	}

	bar := strings.IndexByte(key, '|')
	if bar < 0 {
		return []expandedKey{{key, source}}
	}

	prefix := key[:strings.LastIndexByte(key[:bar], '.')+1]

	var result []expandedKey

	for _, alternative := range strings.Split(key[len(prefix):], "|") {
		result = append(result, expandKey(cfg, prefix+alternative, source, depth+1)...)
	}

	return result
}
