package sfiles

import "strings"

// Notation delimiter tokens. Branch brackets are distinct from the unit-id
// parentheses so branch boundaries stay unambiguous when parsed back.
const (
	streamDelim  = ">"
	branchOpen   = "["
	branchClose  = "]"
	recycleOpen  = "<"
	recycleClose = ">"
	rootSep      = ","
)

// format renders a traversal event sequence as the final SFILES string.
func format(events []event) string {
	var b strings.Builder
	for _, e := range events {
		switch e.Kind {
		case eventVisit:
			b.WriteString(TokenFor(e.Unit.Kind))
			b.WriteString("(")
			b.WriteString(e.Unit.ID)
			b.WriteString(")")
		case eventStream:
			b.WriteString(streamDelim)
			b.WriteString(e.Stream.Name)
			b.WriteString(streamDelim)
		case eventOpenBranch:
			b.WriteString(branchOpen)
		case eventCloseBranch:
			b.WriteString(branchClose)
		case eventRecycle:
			b.WriteString(recycleOpen)
			b.WriteString(e.Unit.ID)
			b.WriteString(recycleClose)
		case eventRootSep:
			b.WriteString(rootSep)
		}
	}
	return b.String()
}
