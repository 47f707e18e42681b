package syntax

import "strings"

// Characters the printer escapes. A superset of the metacharacter set, so
// every printed literal re-parses to itself.
const printEscapes = "!\"#$%&'()*+,-./:;<=>?@[\\]^{|}"

// String renders the AST back to pattern text. Printing is a left inverse of
// parsing: re-parsing the output yields a structurally equal AST.
func (a *AST) String() string {
	var b strings.Builder
	if a.AnchorBegin {
		b.WriteByte('^')
	}
	printNode(&b, a.Root)
	if a.AnchorEnd {
		b.WriteByte('$')
	}
	return b.String()
}

func printEscaped(b *strings.Builder, c byte) {
	if strings.IndexByte(printEscapes, c) >= 0 {
		b.WriteByte('\\')
	}
	b.WriteByte(c)
}

// printChild renders child, parenthesized when it binds more loosely than its
// parent. The parentheses are non-capturing and disappear on re-parse.
func printChild(b *strings.Builder, child Node, parentPriority int) {
	if child.Priority() > parentPriority {
		b.WriteByte('(')
		printNode(b, child)
		b.WriteByte(')')
	} else {
		printNode(b, child)
	}
}

func lazySuffix(greedy bool) string {
	if greedy {
		return ""
	}
	return "?"
}

func printNode(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Epsilon:
		// Renders as nothing.
	case *Literal:
		printEscaped(b, t.C)
	case *Any:
		b.WriteByte('.')
	case *Class:
		b.WriteByte('[')
		if t.Invert {
			b.WriteByte('^')
		}
		for _, iv := range t.Intervals {
			printEscaped(b, iv.Lo)
			if iv.Lo != iv.Hi {
				b.WriteByte('-')
				printEscaped(b, iv.Hi)
			}
		}
		b.WriteByte(']')
	case *Group:
		open, close := byte('('), byte(')')
		if t.Capturing {
			open, close = '<', '>'
		}
		b.WriteByte(open)
		printNode(b, t.Child)
		b.WriteByte(close)
	case *Star:
		printChild(b, t.Child, t.Priority())
		b.WriteByte('*')
		b.WriteString(lazySuffix(t.Greedy))
	case *Plus:
		printChild(b, t.Child, t.Priority())
		b.WriteByte('+')
		b.WriteString(lazySuffix(t.Greedy))
	case *Optional:
		// A '?' directly after a greedy quantifier would re-parse as that
		// quantifier's lazy suffix; parenthesize to keep the Optional.
		if childIsGreedyQuantifier(t.Child) {
			b.WriteByte('(')
			printNode(b, t.Child)
			b.WriteByte(')')
		} else {
			printChild(b, t.Child, t.Priority())
		}
		b.WriteByte('?')
		b.WriteString(lazySuffix(t.Greedy))
	case *Repeat:
		printChild(b, t.Child, t.Priority())
		b.WriteByte('{')
		writeInt(b, t.Min)
		if !t.Exact() {
			b.WriteByte(',')
			if !t.Unbounded {
				writeInt(b, t.Max)
			}
		}
		b.WriteByte('}')
		b.WriteString(lazySuffix(t.Greedy))
	case *Concat:
		for _, child := range t.Children {
			printChild(b, child, t.Priority())
		}
	case *Alt:
		for i, child := range t.Children {
			if i > 0 {
				b.WriteByte('|')
			}
			printChild(b, child, t.Priority())
		}
	}
}

func childIsGreedyQuantifier(n Node) bool {
	switch t := n.(type) {
	case *Star:
		return t.Greedy
	case *Plus:
		return t.Greedy
	case *Optional:
		return t.Greedy
	case *Repeat:
		return t.Greedy
	}
	return false
}

func writeInt(b *strings.Builder, v int) {
	if v >= 10 {
		writeInt(b, v/10)
	}
	b.WriteByte(byte('0' + v%10))
}
