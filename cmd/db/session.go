package db

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa"
	"github.com/Manu343726/isadb/pkg/isa/database"
	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/viper"
	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

// Configuration keys, shared by flags, config file and environment
const (
	KeyArch     = "arch"
	KeyFixtures = "fixtures"
	KeyWorkers  = "workers"
	KeyStrict   = "strict"
	KeyLogLevel = "log-level"
	KeyColor    = "color"
)

// Everything a command needs to work with a compiled instruction database
type Session struct {
	Set       *fixtures.Set
	Database  *database.Database
	Collector *diagnostics.Collector
	Logger    *slog.Logger
}

// Returns the log level from the configuration. ISADB_DEBUG forces debug logging.
func LogLevel() slog.Level {
	if env.Bool("ISADB_DEBUG") {
		return slog.LevelDebug
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString(KeyLogLevel))); err != nil {
		return slog.LevelWarn
	}

	return level
}

// Enables or disables colored output. mode is one of "auto", "always" or "never".
func ConfigureColor(mode string, out *os.File) {
	switch strings.ToLower(mode) {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(out.Fd())) || env.Has("NO_COLOR")
	}
}

// Returns a logger writing to stderr and to the collector at the same time
func NewLogger(collector *diagnostics.Collector) *slog.Logger {
	terminal := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LogLevel()})
	return slog.New(slogmulti.Fanout(terminal, collector))
}

// Loads the configured fixtures and compiles them. The session is only
// returned together with an error for dirty strict builds (isa.ErrDirtyBuild).
func Open(ctx context.Context) (*Session, error) {
	ConfigureColor(viper.GetString(KeyColor), os.Stdout)

	arch, err := dictionary.ParseArchitecture(viper.GetString(KeyArch))
	if err != nil {
		return nil, err
	}

	collector := diagnostics.NewCollector()
	logger := NewLogger(collector)

	logger.DebugContext(ctx, "loading fixtures", slog.String("arch", arch.String()), slog.Any("files", viper.GetStringSlice(KeyFixtures)))

	set, err := isa.LoadFixtures(arch, viper.GetStringSlice(KeyFixtures)...)
	if err != nil {
		return nil, err
	}

	db, err := isa.BuildSet(ctx, set, isa.Options{
		Workers: viper.GetInt(KeyWorkers),
		Strict:  viper.GetBool(KeyStrict),
		Logger:  logger,
	})

	if err != nil && !errors.Is(err, isa.ErrDirtyBuild) {
		return nil, err
	}

	// Dirty strict builds still return the database
	return &Session{
		Set:       set,
		Database:  db,
		Collector: collector,
		Logger:    logger,
	}, err
}
