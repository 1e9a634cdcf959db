package db

import (
	"fmt"
	"io"

	"github.com/Manu343726/isadb/pkg/isa/instructions"
	"github.com/Manu343726/isadb/pkg/utils"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var (
	queryDocs   bool
	queryFields []string
)

var QueryCmd = &cobra.Command{
	Use:   "query <name>...",
	Short: "Show the instruction records of one or more instruction names",
	Long: `Prints every variant of the given instructions in the order they were
declared in the instruction tables.

Use --docs to print the full documentation of each variant, or --field to
print specific members of each record (for example Encoding, Extensions or
Metadata.Text).

Example:
  isadb query adc add
  isadb query vaddps --field Encoding --field Extensions`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, err := Open(cmd.Context())
		if session == nil {
			cobra.CheckErr(err)
		}

		out := cmd.OutOrStdout()

		for _, name := range args {
			if queryDocs {
				docs, err := session.Database.DocString(name)
				cobra.CheckErr(err)
				fmt.Fprintln(out, docs)
				continue
			}

			records := session.Database.Query(name)
			if len(records) == 0 {
				colorError.Fprintf(out, "%v: no such instruction\n", name)
				continue
			}

			for _, record := range records {
				cobra.CheckErr(printRecord(out, record, queryFields))
			}
		}
	},
}

func printRecord(out io.Writer, record *instructions.Instruction, fields []string) error {
	fmt.Fprintf(out, "%v %v\n", utils.HighlightSignature(record.Signature()), colorDim.Sprintf("[%v] %v", record.Encoding, record.OpcodeText))

	for _, field := range fields {
		value, err := utils.Member(field, record)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "  %v: %v\n", field, formatValue(value))
	}

	for _, message := range record.Diagnostics().Messages() {
		colorWarning.Fprintf(out, "  warning: %v\n", message)
	}

	return nil
}

func formatValue(value any) string {
	if text, err := cast.ToStringE(value); err == nil {
		return text
	}

	if values, err := cast.ToStringSliceE(value); err == nil {
		return utils.FormatSlice(values, ", ")
	}

	return fmt.Sprint(value)
}

func init() {
	QueryCmd.Flags().BoolVarP(&queryDocs, "docs", "d", false, "Print the full documentation of each variant")
	QueryCmd.Flags().StringArrayVarP(&queryFields, "field", "f", nil, "Print a member of each record (dotted paths allowed)")
}
