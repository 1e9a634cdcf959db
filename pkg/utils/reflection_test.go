package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reflectionInner struct {
	Tags []string
}

func (i reflectionInner) Count() int {
	return len(i.Tags)
}

type reflectionOuter struct {
	Name   string
	Inner  *reflectionInner
	hidden int
}

func (o *reflectionOuter) Greeting() string {
	return "hello " + o.Name
}

func TestMember(t *testing.T) {
	object := &reflectionOuter{Name: "adc", Inner: &reflectionInner{Tags: []string{"a", "b"}}, hidden: 3}

	cases := []struct {
		path     string
		expected any
	}{
		{"Name", "adc"},
		{"Greeting", "hello adc"},
		{"Inner.Tags", []string{"a", "b"}},
		{"Inner.Count", 2},
	}

	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			value, err := Member(c.path, object)
			require.NoError(t, err)
			assert.Equal(t, c.expected, value)
		})
	}
}

func TestMember_Errors(t *testing.T) {
	object := &reflectionOuter{Name: "adc"}

	for _, path := range []string{"Missing", "hidden", "Name.Length", "Inner.Tags"} {
		_, err := Member(path, object)
		assert.ErrorIs(t, err, ErrNoSuchMember, path)
	}
}

func TestMapMember(t *testing.T) {
	items := []*reflectionOuter{{Name: "a"}, {Name: "b"}}

	values, err := MapMember("Name", items)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, values)

	_, err = MapMember("Nope", items)
	assert.ErrorIs(t, err, ErrNoSuchMember)
}
