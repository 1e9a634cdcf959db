package db

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/isadb/pkg/isa"
	"github.com/Manu343726/isadb/pkg/isa/database"
	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	colorHeader  = color.New(color.FgWhite, color.Bold, color.Underline)
	colorName    = color.New(color.FgYellow, color.Bold)
	colorValue   = color.New(color.FgWhite, color.Bold)
	colorSuccess = color.New(color.FgGreen)
	colorWarning = color.New(color.FgYellow)
	colorError   = color.New(color.FgRed, color.Bold)
	colorDim     = color.New(color.FgHiBlack)
)

var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the instruction tables and report diagnostics",
	Long: `Loads the builtin instruction tables of the selected architecture plus
any fixture file given with --fixtures, compiles them and prints a summary.

Non-fatal problems are printed as warnings. With --strict the command fails
if any instruction record has diagnostics.

Example:
  isadb build --arch arm
  isadb build --arch x86 --fixtures extra.yaml --strict`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session, err := Open(cmd.Context())
		if session == nil {
			cobra.CheckErr(err)
		}

		printSummary(cmd.OutOrStdout(), session.Database, session.Collector)

		if errors.Is(err, isa.ErrDirtyBuild) {
			colorError.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cobra.CheckErr(err)
	},
}

func printSummary(out io.Writer, db *database.Database, collector *diagnostics.Collector) {
	stats := db.Stats()

	colorHeader.Fprintf(out, "%v instruction tables\n", db.Architecture())
	fmt.Fprintf(out, "  instructions: %v\n", colorValue.Sprint(stats.Insts))
	fmt.Fprintf(out, "  groups:       %v\n", colorValue.Sprint(stats.Groups))

	if stats.Invalid == 0 {
		colorSuccess.Fprintln(out, "  no diagnostics")
		return
	}

	colorWarning.Fprintf(out, "  %v invalid records, %v diagnostics\n", stats.Invalid, stats.Diagnostics)

	for _, entry := range collector.Entries() {
		fmt.Fprintf(out, "    %v: %v\n", colorName.Sprint(entry.Subject), entry.Message)
	}
}
