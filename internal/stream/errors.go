package stream

import (
	"fmt"
	"strings"

	"github.com/rickardlindberg/rlmeta/internal/value"
)

// MatchError carries the information needed to build the user-visible
// diagnostic described in spec §6: a message, the items being matched
// against, and the index at which matching failed. A Stream tracks the
// furthest (largest-index) MatchError across every backtracked attempt;
// that is the one ultimately surfaced when a pipeline stage fails.
type MatchError struct {
	Message string
	Items   value.List
	Index   int
}

// Error renders the ERROR/POSITION/STREAM block spec §6 describes: the
// failure message, the failing index, and an indented excerpt of the input
// centered on Index on its own line. When Items holds characters (the
// Parser pass), the excerpt is rendered as text; otherwise (the
// CodeGenerator pass, over AST lists) it falls back to value.Repr of the
// surrounding slice.
func (e *MatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ERROR: %s\n", e.Message)
	fmt.Fprintf(&b, "POSITION: %d\n", e.Index)
	fmt.Fprintf(&b, "STREAM:\n%s", value.Indent(e.excerpt(), "  "))
	return b.String()
}

func (e *MatchError) excerpt() string {
	const window = 20
	lo := e.Index - window
	if lo < 0 {
		lo = 0
	}
	hi := e.Index + window
	if hi > len(e.Items) {
		hi = len(e.Items)
	}
	var textBefore, textAfter strings.Builder
	isText := true
	for i, item := range e.Items[lo:hi] {
		r, ok := item.(rune)
		if !ok {
			isText = false
			break
		}
		if lo+i < e.Index {
			textBefore.WriteRune(r)
		} else {
			textAfter.WriteRune(r)
		}
	}
	if isText {
		return textBefore.String() + "<ERROR POSITION>" + textAfter.String()
	}
	before := e.Items[lo:e.Index]
	at := "<EOF>"
	if e.Index < len(e.Items) {
		at = value.Repr(e.Items[e.Index])
	}
	after := e.Items[e.Index:hi]
	return fmt.Sprintf("%s <ERROR POSITION>%s %s", value.Repr(value.List(before)), at, value.Repr(value.List(after)))
}
