// Package isa compiles instruction tables into instruction databases.
package isa

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Manu343726/isadb/pkg/isa/database"
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/Manu343726/isadb/pkg/isa/instructions"
	"github.com/Manu343726/isadb/pkg/isa/validation"
	"github.com/Manu343726/isadb/pkg/utils"
	"github.com/sourcegraph/conc/iter"
)

var (
	// A fixture entry is malformed beyond what diagnostics can describe
	ErrFixture = errors.New("malformed fixture entry")
	// Returned by strict builds when any record has diagnostics
	ErrDirtyBuild = errors.New("instruction tables have diagnostics")
)

type Options struct {
	// Number of entries parsed concurrently. Values below 2 parse sequentially.
	Workers int
	// Fail the build if any record has diagnostics
	Strict bool
	// Receives every diagnostic as a warning and a summary of the build. Discarded if nil.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}

type parseResult struct {
	records []*instructions.Instruction
	err     error
}

func parseEntry(ctx context.Context, cfg *dictionary.Config, line int, entry fixtures.Entry) parseResult {
	if err := ctx.Err(); err != nil {
		return parseResult{err: err}
	}

	records, err := instructions.Parse(cfg, entry)
	if err != nil {
		return parseResult{err: utils.MakeError(ErrFixture, "line %v %v: %w", line, entry, err)}
	}

	for _, record := range records {
		validation.Validate(record)
	}

	return parseResult{records: records}
}

// Compiles a list of fixture entries. Entries are parsed and validated
// independently, concurrently if opts.Workers > 1, and inserted into the
// database in entry order. Diagnostics of every record are emitted through
// opts.Logger. A malformed entry aborts the build with ErrFixture. A build
// with diagnostics returns the database and, if opts.Strict is set, ErrDirtyBuild.
func Build(ctx context.Context, cfg *dictionary.Config, entries []fixtures.Entry, opts Options) (*database.Database, error) {
	logger := opts.logger()

	var results []parseResult

	if opts.Workers > 1 {
		mapper := iter.Mapper[int, parseResult]{MaxGoroutines: opts.Workers}
		lines := utils.Iota(len(entries), func(i int) int { return i })

		results = mapper.Map(lines, func(line *int) parseResult {
			return parseEntry(ctx, cfg, *line, entries[*line])
		})
	} else {
		results = make([]parseResult, len(entries))

		for line, entry := range entries {
			results[line] = parseEntry(ctx, cfg, line, entry)
		}
	}

	db := database.New(cfg.Architecture())

	for line, result := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if result.err != nil {
			return nil, result.err
		}

		for _, record := range result.records {
			record.Diagnostics().Emit(ctx, logger, slog.Int("line", line), slog.String("encoding", record.Encoding))
			db.Insert(record)
		}
	}

	stats := db.Stats()

	logger.InfoContext(ctx, "instruction tables built",
		slog.String("arch", cfg.Architecture().String()),
		slog.Int("insts", stats.Insts),
		slog.Int("groups", stats.Groups),
		slog.Int("invalid", stats.Invalid),
		slog.Int("diagnostics", stats.Diagnostics),
	)

	if opts.Strict && stats.Invalid > 0 {
		return db, utils.MakeError(ErrDirtyBuild, "%v of %v records have diagnostics (%v in total)", stats.Invalid, stats.Insts, stats.Diagnostics)
	}

	return db, nil
}

// Compiles a fixture set with its own dictionaries
func BuildSet(ctx context.Context, set *fixtures.Set, opts Options) (*database.Database, error) {
	cfg, err := set.Config()
	if err != nil {
		return nil, err
	}

	return Build(ctx, cfg, set.Entries, opts)
}
