package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/Manu343726/isadb/cmd/db"
	"github.com/Manu343726/isadb/cmd/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xyproto/env/v2"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "isadb",
	Short: "Instruction set tables compiler",
	Long: `isadb compiles instruction tables (x86 and ARM) into a queryable
instruction database: operand grammars, opcode encodings and metadata are
parsed, validated and grouped by instruction name.

The builtin tables of each architecture can be extended with YAML fixture
files given with --fixtures.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, db.BuildCmd, db.QueryCmd, db.DumpCmd, db.StatsCmd, db.BrowseCmd)
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.isadb.yaml)")
	flags.StringP(db.KeyArch, "a", "x86", "Architecture of the instruction tables (x86, arm)")
	flags.StringSlice(db.KeyFixtures, nil, "Additional YAML fixture files, loaded in order")
	flags.IntP(db.KeyWorkers, "j", env.Int("ISADB_WORKERS", runtime.NumCPU()), "Number of instruction table entries parsed concurrently")
	flags.Bool(db.KeyStrict, false, "Fail if any instruction record has diagnostics")
	flags.String(db.KeyLogLevel, "warn", "Log level (debug, info, warn, error)")
	flags.String(db.KeyColor, "auto", "Colored output (auto, always, never)")

	for _, key := range []string{db.KeyArch, db.KeyFixtures, db.KeyWorkers, db.KeyStrict, db.KeyLogLevel, db.KeyColor} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(key)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".isadb" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".isadb")
	}

	// ISADB_LOG_LEVEL, ISADB_STRICT, ...
	viper.SetEnvPrefix("isadb")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
