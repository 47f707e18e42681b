package syntax

// Equal reports whether two ASTs are structurally identical, anchors
// included.
func Equal(a, b *AST) bool {
	return a.AnchorBegin == b.AnchorBegin &&
		a.AnchorEnd == b.AnchorEnd &&
		equalNode(a.Root, b.Root)
}

func equalNode(a, b Node) bool {
	switch x := a.(type) {
	case *Epsilon:
		_, ok := b.(*Epsilon)
		return ok
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.C == y.C
	case *Any:
		_, ok := b.(*Any)
		return ok
	case *Class:
		y, ok := b.(*Class)
		if !ok || x.Invert != y.Invert || len(x.Intervals) != len(y.Intervals) {
			return false
		}
		for i := range x.Intervals {
			if x.Intervals[i] != y.Intervals[i] {
				return false
			}
		}
		return true
	case *Group:
		y, ok := b.(*Group)
		return ok && x.Capturing == y.Capturing && equalNode(x.Child, y.Child)
	case *Star:
		y, ok := b.(*Star)
		return ok && x.Greedy == y.Greedy && equalNode(x.Child, y.Child)
	case *Plus:
		y, ok := b.(*Plus)
		return ok && x.Greedy == y.Greedy && equalNode(x.Child, y.Child)
	case *Optional:
		y, ok := b.(*Optional)
		return ok && x.Greedy == y.Greedy && equalNode(x.Child, y.Child)
	case *Repeat:
		y, ok := b.(*Repeat)
		if !ok || x.Greedy != y.Greedy || x.Min != y.Min || x.Unbounded != y.Unbounded {
			return false
		}
		if !x.Unbounded && x.Max != y.Max {
			return false
		}
		return equalNode(x.Child, y.Child)
	case *Concat:
		y, ok := b.(*Concat)
		return ok && equalNodes(x.Children, y.Children)
	case *Alt:
		y, ok := b.(*Alt)
		return ok && equalNodes(x.Children, y.Children)
	}
	return false
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalNode(a[i], b[i]) {
			return false
		}
	}
	return true
}
