package db

import (
	"fmt"
	"io"

	"github.com/Manu343726/isadb/pkg/isa/database"
	"github.com/Manu343726/isadb/pkg/isa/opcodes/components"
	"github.com/spf13/cobra"
)

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print instruction database statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session, err := Open(cmd.Context())
		if session == nil {
			cobra.CheckErr(err)
		}

		printStats(cmd.OutOrStdout(), session.Database)
	},
}

func printStats(out io.Writer, db *database.Database) {
	stats := db.Stats()

	colorHeader.Fprintf(out, "%v\n", db.Architecture())
	fmt.Fprintf(out, "  instructions: %v\n", stats.Insts)
	fmt.Fprintf(out, "  groups:       %v\n", stats.Groups)
	fmt.Fprintf(out, "  invalid:      %v\n", stats.Invalid)
	fmt.Fprintf(out, "  diagnostics:  %v\n", stats.Diagnostics)

	if len(stats.Prefixes) == 0 {
		return
	}

	fmt.Fprintln(out, "  prefixes:")

	for class := components.PrefixClass(0); class < components.TOTAL_PREFIX_CLASSES; class++ {
		if count, ok := stats.Prefixes[class]; ok {
			fmt.Fprintf(out, "    %-8v %v\n", class, count)
		}
	}
}
