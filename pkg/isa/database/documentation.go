package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/isadb/pkg/utils"
)

var ErrUnknownInstruction = errors.New("unknown instruction")

// Returns the documentation of all the variants of an instruction
func (db *Database) Documentation(name string, leftpad int) (string, error) {
	group := db.groups[name]
	if len(group) == 0 {
		return "", utils.MakeError(ErrUnknownInstruction, "'%v'", name)
	}

	var builder strings.Builder
	leftpad_str := strings.Repeat(" ", leftpad)

	builder.WriteString(fmt.Sprintf("%v%v (%v, %v variants)\n\n", leftpad_str, name, db.architecture, len(group)))

	for _, record := range group {
		docs, err := record.Documentation(leftpad + 2)
		if err != nil {
			return "", err
		}

		builder.WriteString(docs)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// Like Documentation(), but with zero leftpad
func (db *Database) DocString(name string) (string, error) {
	return db.Documentation(name, 0)
}
