package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickardlindberg/rlmeta/internal/value"
)

func TestTag(t *testing.T) {
	cases := []struct {
		name  string
		input value.Value
		tag   string
		ok    bool
	}{
		{"tagged list", value.List{"Rule", "x"}, "Rule", true},
		{"empty list", value.List{}, "", false},
		{"non-string head", value.List{1, 2}, "", false},
		{"not a list", "hello", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag, ok := value.Tag(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.tag, tag)
		})
	}
}

func TestConcat(t *testing.T) {
	got := value.Concat([]value.Value{
		value.List{1, 2},
		value.List{3},
		value.List{},
	})
	assert.Equal(t, value.List{1, 2, 3}, got)
}

func TestSplice(t *testing.T) {
	assert.Equal(t, value.List{"x"}, value.Splice(0, "x"))
	assert.Equal(t, value.List{1, 2, 3}, value.Splice(1, value.List{1, 2, 3}))
}

func TestJoin(t *testing.T) {
	cases := []struct {
		name  string
		items value.Value
		delim string
		want  string
	}{
		{"flat", value.List{"a", "b", "c"}, "", "abc"},
		{"delimited", value.List{"a", "b"}, ",", "a,b"},
		{"nested", value.List{value.List{"a", "b"}, "c"}, "", "abc"},
		{"non-list falls back to Sprint", 42, "", "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, value.Join(tc.items, tc.delim))
		})
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "", value.Indent("", "  "))
	assert.Equal(t, "  a\n  b\n", value.Indent("a\nb\n", "  "))
	assert.Equal(t, "  a\n  b", value.Indent("a\nb", "  "))
}

func TestRepr(t *testing.T) {
	assert.Equal(t, `"hi"`, value.Repr("hi"))
	assert.Equal(t, `'a'`, value.Repr('a'))
	assert.Equal(t, `[1, 2]`, value.Repr(value.List{1, 2}))
}

func TestLen(t *testing.T) {
	assert.Equal(t, 3, value.Len(value.List{1, 2, 3}))
	assert.Equal(t, 2, value.Len("ab"))
}

func TestAppend(t *testing.T) {
	list := value.List{1, 2}
	value.Append(&list, 3)
	assert.Equal(t, value.List{1, 2, 3}, list)
}
