package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/database"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var BrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the instruction database interactively",
	Long: `Opens a terminal UI listing every instruction name of the database.
Selecting a name shows the documentation of all its variants.

Keys:
  up/down, j/k  move through the list
  /             filter names
  q, esc        quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			cobra.CheckErr(fmt.Errorf("browse needs an interactive terminal, use 'isadb dump' instead"))
		}

		session, err := Open(cmd.Context())
		if session == nil {
			cobra.CheckErr(err)
		}

		cobra.CheckErr(newBrowser(session.Database).app.Run())
	},
}

type browser struct {
	db     *database.Database
	app    *tview.Application
	names  *tview.List
	docs   *tview.TextView
	filter *tview.InputField
}

func newBrowser(db *database.Database) *browser {
	b := &browser{
		db:     db,
		app:    tview.NewApplication(),
		names:  tview.NewList(),
		docs:   tview.NewTextView(),
		filter: tview.NewInputField(),
	}

	b.names.ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetBorder(true).
		SetTitle(fmt.Sprintf(" %v ", db.Architecture()))

	b.names.SetChangedFunc(func(_ int, name string, _ string, _ rune) {
		b.show(name)
	})

	b.docs.SetScrollable(true).
		SetWrap(false).
		SetBorder(true).
		SetTitle(" documentation ")

	b.filter.SetLabel("/").
		SetFieldBackgroundColor(tcell.ColorDefault).
		SetChangedFunc(b.populate).
		SetDoneFunc(func(key tcell.Key) {
			b.app.SetFocus(b.names)
		})

	layout := tview.NewFlex().
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(b.names, 0, 1, true).
			AddItem(b.filter, 1, 0, false), 24, 0, true).
		AddItem(b.docs, 0, 1, false)

	b.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if b.app.GetFocus() == b.filter {
			return event
		}

		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			b.app.Stop()
			return nil
		case event.Rune() == '/':
			b.app.SetFocus(b.filter)
			return nil
		case event.Rune() == 'j':
			return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
		case event.Rune() == 'k':
			return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
		}

		return event
	})

	b.populate("")
	b.app.SetRoot(layout, true).SetFocus(b.names)

	return b
}

// Fills the name list with the names containing the filter text
func (b *browser) populate(filter string) {
	b.names.Clear()

	for _, name := range b.db.NamesSorted() {
		if strings.Contains(name, filter) {
			b.names.AddItem(name, "", 0, nil)
		}
	}

	if b.names.GetItemCount() > 0 {
		name, _ := b.names.GetItemText(b.names.GetCurrentItem())
		b.show(name)
	} else {
		b.docs.SetText("")
	}
}

func (b *browser) show(name string) {
	docs, err := b.db.DocString(name)
	if err != nil {
		docs = err.Error()
	}

	b.docs.SetText(docs).ScrollToBeginning()
}
