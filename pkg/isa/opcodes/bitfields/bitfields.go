// Package bitfields implements the opcode grammar of fixed width instruction
// sets: a '|' separated template of literal bits and named fields, most
// significant bits first.
package bitfields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Manu343726/isadb/pkg/isa/diagnostics"
	"github.com/Manu343726/isadb/pkg/utils"
)

var namedField = regexp.MustCompile(`^('?)([A-Za-z_][A-Za-z0-9_.]*)(?::(\d+)|\[(\d+)(?::(\d+))?\])?('?)$`)

// Bit range selected from a named field value, [Hi:Lo]
type Slice struct {
	Hi int
	Lo int
}

// One field of a bit template. Either a literal bit pattern or a named field.
type Field struct {
	// Binary digits of a literal field, empty for named fields
	Literal string
	Name    string
	// Width in bits
	Width int
	// Part of the named value stored in this field, if any
	Slice *Slice
	// The field holds the complement of the named value
	Negated bool
}

func (f *Field) IsLiteral() bool {
	return f.Literal != ""
}

func (f *Field) String() string {
	if f.IsLiteral() {
		return f.Literal
	}

	var builder strings.Builder

	if f.Negated {
		builder.WriteString("'")
	}
	builder.WriteString(f.Name)

	switch {
	case f.Slice != nil && f.Slice.Hi == f.Slice.Lo:
		fmt.Fprintf(&builder, "[%v]", f.Slice.Hi)
	case f.Slice != nil:
		fmt.Fprintf(&builder, "[%v:%v]", f.Slice.Hi, f.Slice.Lo)
	case f.Width != 1:
		fmt.Fprintf(&builder, ":%v", f.Width)
	}

	return builder.String()
}

// Parsed bit template. Fields are stored most significant first.
type Template struct {
	Text   string
	Fields []Field
}

// Parses a bit template. Malformed fields are reported to diag and skipped.
func Parse(text string, diag *diagnostics.Diagnostics) *Template {
	template := &Template{Text: text}

	for i, segment := range strings.Split(text, "|") {
		segment = strings.TrimSpace(segment)

		if field, ok := parseField(segment); ok {
			template.Fields = append(template.Fields, field)
		} else {
			diag.Reportf("malformed bit field #%v '%v' in opcode '%v'", i, segment, text)
		}
	}

	return template
}

func parseField(segment string) (Field, bool) {
	if segment == "" {
		return Field{}, false
	}

	if utils.IsBinary(segment) {
		return Field{Literal: segment, Width: len(segment)}, true
	}

	match := namedField.FindStringSubmatch(segment)
	if match == nil {
		return Field{}, false
	}

	field := Field{
		Name:    match[2],
		Width:   1,
		Negated: match[1] != "" || match[6] != "",
	}

	switch {
	case match[3] != "":
		field.Width, _ = strconv.Atoi(match[3])
	case match[4] != "":
		hi, _ := strconv.Atoi(match[4])
		lo := hi
		if match[5] != "" {
			lo, _ = strconv.Atoi(match[5])
		}

		if hi < lo {
			return Field{}, false
		}

		field.Slice = &Slice{Hi: hi, Lo: lo}
		field.Width = hi - lo + 1
	}

	return field, field.Width > 0
}

// Returns the total width of the template in bits
func (t *Template) Width() int {
	return utils.Accumulate(t.Fields, func(f Field) int {
		return f.Width
	})
}

// Returns the mask of all the bits fixed by literal fields and their values.
// An instruction word w matches the template if w&mask == value.
func (t *Template) FixedBits() (mask uint32, value uint32) {
	maskView := utils.CreateBitView(&mask)
	valueView := utils.CreateBitView(&value)

	top := t.Width()

	for _, field := range t.Fields {
		top -= field.Width

		if !field.IsLiteral() || top < 0 {
			continue
		}

		bits, _ := strconv.ParseUint(field.Literal, 2, 32)
		maskView.SetBits(top, field.Width)
		valueView.Write(uint32(bits), top, field.Width)
	}

	return mask, value
}

// A template field placed at its bit positions within the instruction word
type Column struct {
	Field Field
	Hi    int
	Lo    int
}

// Returns the fields of the template with their bit positions, most significant first
func (t *Template) Layout() []Column {
	columns := make([]Column, len(t.Fields))
	top := t.Width()

	for i, field := range t.Fields {
		columns[i] = Column{
			Field: field,
			Hi:    top - 1,
			Lo:    top - field.Width,
		}
		top -= field.Width
	}

	return columns
}

func (t *Template) String() string {
	return strings.Join(utils.Map(t.Fields, func(f Field) string { return f.String() }), "|")
}
