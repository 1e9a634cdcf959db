package bitfields

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	cellBorder = "+"
	cellSide   = "|"
	ruleBody   = "-"
	arrowLeft  = "<-"
	arrowRight = "->"
)

// Name shown for the field in diagrams. Widths are drawn separately.
func (f *Field) label() string {
	if f.IsLiteral() {
		return f.Literal
	}

	label := f.Name

	if f.Negated {
		label = "'" + label
	}

	switch {
	case f.Slice != nil && f.Slice.Hi == f.Slice.Lo:
		label += fmt.Sprintf("[%v]", f.Slice.Hi)
	case f.Slice != nil:
		label += fmt.Sprintf("[%v:%v]", f.Slice.Hi, f.Slice.Lo)
	}

	return label
}

func center(text string, filler string, size int) string {
	left := (size - len(text)) / 2
	right := size - len(text) - left
	return strings.Repeat(filler, left) + text + strings.Repeat(filler, right)
}

// Returns an ascii diagram of the instruction word, most significant bits on
// the left:
//
//	15           5       2       0
//	+------------+-------+-------+
//	| 0100000101 |  Rm   |  Rdn  |
//	+------------+-------+-------+
//	 <--- 10 ---> <- 3 -> <- 3 ->
//
// Every row is indented by leftpad spaces. Empty templates have no diagram.
func (t *Template) Diagram(leftpad int) string {
	if len(t.Fields) == 0 {
		return ""
	}

	var indices, rule, labels, widths strings.Builder

	for _, column := range t.Layout() {
		index := strconv.Itoa(column.Hi)
		label := " " + column.Field.label() + " "
		width := fmt.Sprintf(" %v ", column.Field.Width)
		size := max(len(index), len(label), len(arrowLeft)+len(width)+len(arrowRight))

		indices.WriteString(index)
		indices.WriteString(strings.Repeat(" ", size+1-len(index)))
		rule.WriteString(cellBorder)
		rule.WriteString(strings.Repeat(ruleBody, size))
		labels.WriteString(cellSide)
		labels.WriteString(center(label, " ", size))
		widths.WriteString(" ")
		widths.WriteString(arrowLeft)
		widths.WriteString(center(width, ruleBody, size-len(arrowLeft)-len(arrowRight)))
		widths.WriteString(arrowRight)
	}

	indices.WriteString("0")
	rule.WriteString(cellBorder)
	labels.WriteString(cellSide)
	widths.WriteString(" ")

	pad := strings.Repeat(" ", leftpad)

	var diagram strings.Builder

	for _, row := range []string{indices.String(), rule.String(), labels.String(), rule.String(), widths.String()} {
		diagram.WriteString(pad)
		diagram.WriteString(row)
		diagram.WriteString("\n")
	}

	return diagram.String()
}
