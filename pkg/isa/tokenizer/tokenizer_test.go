package tokenizer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchClosingChar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		open     int
		expected int
	}{
		{name: "parens", input: "(a)", open: 0, expected: 2},
		{name: "angle brackets", input: "x<eax>y", open: 1, expected: 5},
		{name: "square brackets", input: "[Rn, #Imm]", open: 0, expected: 9},
		{name: "braces", input: "{!}", open: 0, expected: 2},
		{name: "nested same kind", input: "[[a][b]]", open: 0, expected: 7},
		{name: "inner span", input: "[[a][b]]", open: 1, expected: 3},
		{name: "other kinds are opaque", input: "[a)(]", open: 0, expected: 4},
		{name: "unbalanced runs to the end", input: "[[a]", open: 0, expected: 4},
		{name: "not an opening delimiter", input: "abc", open: 1, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchClosingChar(tt.input, tt.open))
		})
	}
}

func randomBalanced(r *rand.Rand, open, close byte, depth int) string {
	var builder strings.Builder
	builder.WriteByte(open)

	for i := r.Intn(4); i > 0; i-- {
		switch {
		case depth < 4 && r.Intn(2) == 0:
			builder.WriteString(randomBalanced(r, open, close, depth+1))
		default:
			builder.WriteString("x,")
		}
	}

	builder.WriteByte(close)
	return builder.String()
}

func TestMatchClosingChar_BalancedStrings(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for open, close := range closers {
		for i := 0; i < 200; i++ {
			s := randomBalanced(r, open, close, 0) + "tail"
			end := MatchClosingChar(s, 0)

			require.Less(t, end, len(s))
			assert.Equal(t, close, s[end])

			inner := s[1:end]
			assert.Equal(t, strings.Count(inner, string(open)), strings.Count(inner, string(close)), "input %q", s)
			assert.Equal(t, "tail", s[end+1:])
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "nested comma is not a split point", input: "[Rn!=PC, #ImmZ]{!}, Rd", expected: []string{"[Rn!=PC, #ImmZ]{!}", "Rd"}},
		{name: "x86 operands", input: "W:r32/m32, R:r32", expected: []string{"W:r32/m32", "R:r32"}},
		{name: "access range", input: "X[7:0]:r32, ib", expected: []string{"X[7:0]:r32", "ib"}},
		{name: "implicit operands", input: "<eax>, <edx>", expected: []string{"<eax>", "<edx>"}},
		{name: "single operand", input: "  rel32 ", expected: []string{"rel32"}},
		{name: "no operands", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := SplitTopLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestSplitTopLevel_EmptySegmentIsFatal(t *testing.T) {
	for _, input := range []string{"a,,b", "a,", ", a", "a, ,b"} {
		_, err := SplitTopLevel(input)
		assert.ErrorIs(t, err, ErrEmptySegment, "input %q", input)
	}
}

func TestSplitTopLevel_UnbalancedIsFatal(t *testing.T) {
	_, err := SplitTopLevel("[Rn, #Imm, Rd")
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestFields(t *testing.T) {
	fields, err := Fields("xmm  {k} {z}")
	require.NoError(t, err)
	assert.Equal(t, []string{"xmm", "{k}", "{z}"}, fields)

	fields, err = Fields("[Rn, #Imm]{!} tail")
	require.NoError(t, err)
	assert.Equal(t, []string{"[Rn, #Imm]{!}", "tail"}, fields)

	_, err = Fields("xmm {k")
	assert.ErrorIs(t, err, ErrUnbalanced)
}
