package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/database"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/Manu343726/isadb/pkg/isa/instructions"
	"github.com/Manu343726/isadb/pkg/utils"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

type dumpFormat struct {
	description string
	dump        func(out io.Writer, session *Session, names []string) error
}

var dumpFormats = map[string]dumpFormat{
	"text": {"instruction documentation", dumpText},
	"spew": {"Go values of the instruction records (go-spew)", dumpSpew},
	"pp":   {"Go values of the instruction records, pretty printed", dumpPretty},
	"yaml": {"fixture file with the compiled tables", dumpYAML},
}

var dumpFormatName string

var DumpCmd = &cobra.Command{
	Use:   "dump [name]...",
	Short: "Dump the instruction database",
	Long: `Dumps every instruction record of the database, or only the given
instructions, in one of the following formats:

` + strings.Join(utils.Map(utils.SortedKeys(dumpFormats), func(name string) string {
		return fmt.Sprintf("  %-5v %v", name, dumpFormats[name].description)
	}), "\n"),
	Run: func(cmd *cobra.Command, args []string) {
		format, ok := dumpFormats[dumpFormatName]
		if !ok {
			cobra.CheckErr(fmt.Errorf("unknown dump format '%v'", dumpFormatName))
		}

		session, err := Open(cmd.Context())
		if session == nil {
			cobra.CheckErr(err)
		}

		cobra.CheckErr(format.dump(cmd.OutOrStdout(), session, args))
	},
}

func selectRecords(db *database.Database, names []string) []*instructions.Instruction {
	if len(names) == 0 {
		names = db.NamesSorted()
	}

	var records []*instructions.Instruction

	for _, name := range names {
		records = append(records, db.Query(name)...)
	}

	return records
}

func dumpText(out io.Writer, session *Session, names []string) error {
	if len(names) == 0 {
		names = session.Database.NamesSorted()
	}

	for _, name := range names {
		docs, err := session.Database.DocString(name)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, docs)
	}

	return nil
}

func dumpSpew(out io.Writer, session *Session, names []string) error {
	config := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	for _, record := range selectRecords(session.Database, names) {
		config.Fdump(out, record)
	}

	return nil
}

func dumpPretty(out io.Writer, session *Session, names []string) error {
	printer := pp.New()
	printer.SetOutput(out)
	printer.SetColoringEnabled(!color.NoColor)

	for _, record := range selectRecords(session.Database, names) {
		if _, err := printer.Println(record); err != nil {
			return err
		}
	}

	return nil
}

func dumpYAML(out io.Writer, session *Session, names []string) error {
	set := session.Set

	if len(names) > 0 {
		wanted := utils.GenMap(names, func(name string) string { return name })

		filtered := *set
		filtered.Entries = utils.Filter(set.Entries, func(entry fixtures.Entry) bool {
			for _, alias := range entry.Aliases() {
				if _, ok := wanted[alias]; ok {
					return true
				}
			}
			return false
		})
		set = &filtered
	}

	return fixtures.Save(out, set)
}

func init() {
	DumpCmd.Flags().StringVarP(&dumpFormatName, "format", "F", "text", "Output format ("+strings.Join(utils.SortedKeys(dumpFormats), ", ")+")")
}
