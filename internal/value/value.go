// Package value defines the dynamic value representation shared by the
// stream, the matcher combinators, and the semantic-action evaluator.
//
// The matching engine is deliberately dynamically typed: a Stream's items
// are either source characters or nested ASTs, and an Action's result can
// be a character, a string, a list, or (once bound to a Runtime) a
// builtin. Rather than a closed Go sum type, values are represented the
// same way ATSOTECK/rage represents its own dynamic values: a named alias
// for `any`, with a handful of concrete kinds the engine understands.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Value is anything that can flow through a Stream, an Action, or a
// Runtime: a single character, a string, a List, or a Callable builtin.
type Value any

// List is an ordered, tagged-or-untagged sequence of values. AST nodes are
// Lists whose first element is a string constructor tag (see
// internal/grammar); matched sub-sequences produced by MatchList are
// Lists with no particular tag.
type List []Value

// Callable is a builtin or user-constructed function reachable through
// Runtime.Lookup. It receives already-evaluated arguments and returns a
// single Value.
type Callable func(args []Value) (Value, error)

// IsList reports whether v is a List, and returns it if so.
func IsList(v Value) (List, bool) {
	l, ok := v.(List)
	return l, ok
}

// Tag returns the constructor tag of an AST-shaped List (its first
// element, as a string) and whether v was such a list.
func Tag(v Value) (string, bool) {
	l, ok := IsList(v)
	if !ok || len(l) == 0 {
		return "", false
	}
	s, ok := l[0].(string)
	return s, ok
}

// Concat flattens one level of nesting: each element of lists must itself
// be a List, and the result is their concatenation. It mirrors rlmeta's
// `concat(lists)`.
func Concat(lists []Value) List {
	var out List
	for _, l := range lists {
		inner, ok := IsList(l)
		if !ok {
			panic(fmt.Sprintf("value: Concat expects a list of lists, got %T", l))
		}
		out = append(out, inner...)
	}
	return out
}

// Splice implements the ListItem host expression: at depth 0, item is
// wrapped in a singleton list; at depth d>0, Splice flattens one level of
// item (which must be a List) by recursing at depth d-1 across its
// elements and concatenating the results.
func Splice(depth int, item Value) List {
	if depth == 0 {
		return List{item}
	}
	l, ok := IsList(item)
	if !ok {
		panic(fmt.Sprintf("value: Splice at depth %d expects a list, got %T", depth, item))
	}
	parts := make([]Value, len(l))
	for i, sub := range l {
		parts[i] = Splice(depth-1, sub)
	}
	return Concat(parts)
}

// Join recursively joins items with delimiter, flattening nested Lists
// with the same delimiter. A rune item is rendered as the character it
// holds; any other non-list item is rendered with fmt.Sprint, matching
// Python's str() fallback in the original `join`.
func Join(items Value, delimiter string) string {
	l, ok := IsList(items)
	if !ok {
		return joinItem(items)
	}
	parts := make([]string, len(l))
	for i, item := range l {
		if _, ok := IsList(item); ok {
			parts[i] = Join(item, delimiter)
		} else {
			parts[i] = joinItem(item)
		}
	}
	return strings.Join(parts, delimiter)
}

func joinItem(item Value) string {
	if r, ok := item.(rune); ok {
		return string(r)
	}
	return fmt.Sprint(item)
}

// Indent prefixes every line of text with prefix, keeping line endings
// intact (mirroring Python's `"".join(prefix+line for line in
// text.splitlines(True))`).
func Indent(text, prefix string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range splitKeepEnds(text) {
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

func splitKeepEnds(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// Repr renders v as Go source text, the way the generated CodeGenerator
// code uses `repr` to embed matched values as Go literals: a string becomes
// a double-quoted Go string literal, a rune a Go rune literal, an int its
// decimal digits, and a List "[a, b]" of its elements' Reprs. Any other
// value is rendered with fmt.Sprint and quoted as a string.
func Repr(v Value) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case rune:
		return strconv.QuoteRune(x)
	case int:
		return strconv.Itoa(x)
	case List:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = Repr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return strconv.Quote(fmt.Sprint(x))
	}
}

// Len returns the length of a List or string value, backing the `len`
// runtime builtin.
func Len(v Value) int {
	switch x := v.(type) {
	case List:
		return len(x)
	case string:
		return len([]rune(x))
	default:
		panic(fmt.Sprintf("value: len() on unsupported type %T", v))
	}
}

// Append mutates list in place by appending thing, backing the `append`
// runtime builtin. Since List is a slice (not a pointer), callers go
// through a pointer-to-List or re-bind the returned value, matching the
// fact that the original `append` builtin mutates a Python list in place
// and returns nothing meaningful.
func Append(list *List, thing Value) {
	*list = slices.Insert(*list, len(*list), thing)
}
