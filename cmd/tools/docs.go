package tools

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/isadb/cmd/db"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs name...",
	Short: "Show instruction documentation",
	Long: `Dumps the documentation of the specified instructions, all their
variants included. Without arguments every instruction is documented.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.`,
	Run: func(cmd *cobra.Command, args []string) {
		session, err := db.Open(cmd.Context())
		if session == nil {
			cobra.CheckErr(err)
		}

		names := args
		if len(names) == 0 {
			names = session.Database.NamesSorted()
		}

		var out io.Writer = cmd.OutOrStdout()

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				fmt.Println("Error creating file:", err)
				os.Exit(1)
			}
			defer file.Close()
			out = file
		}

		docs := make([]string, 0, len(names))

		for _, name := range names {
			doc, err := session.Database.DocString(name)
			cobra.CheckErr(err)
			docs = append(docs, doc)
		}

		fmt.Fprintln(out, strings.Join(docs, "\n"))
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
