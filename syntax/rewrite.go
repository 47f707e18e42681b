package syntax

// Rewrite normalizes the AST in place: it flattens directly nested Concat and
// Alt nodes, lowers numeric repetitions, and fuses stacked quantifiers. The
// rewrite preserves the matched language and is idempotent.
func Rewrite(ast *AST) {
	ast.Root = rewrite(ast.Root)
}

// rewrite applies the normalization post-order and returns the replacement
// for n.
func rewrite(n Node) Node {
	switch t := n.(type) {
	case *Group:
		t.Child = rewrite(t.Child)
	case *Star:
		t.Child = rewrite(t.Child)
	case *Plus:
		t.Child = rewrite(t.Child)
	case *Optional:
		t.Child = rewrite(t.Child)
	case *Repeat:
		t.Child = rewrite(t.Child)
	case *Concat:
		for i, child := range t.Children {
			t.Children[i] = rewrite(child)
		}
		flattenConcat(t)
		if collapsed, ok := collapseConcat(t); ok {
			return rewrite(collapsed)
		}
	case *Alt:
		for i, child := range t.Children {
			t.Children[i] = rewrite(child)
		}
		flattenAlt(t)
	}

	n = lowerRepeat(n)
	return fuseQuantifiers(n)
}

// flattenConcat splices Concat children of a Concat parent into place,
// preserving child order.
func flattenConcat(c *Concat) {
	flat := make([]Node, 0, len(c.Children))
	for _, child := range c.Children {
		if inner, ok := child.(*Concat); ok {
			flat = append(flat, inner.Children...)
		} else {
			flat = append(flat, child)
		}
	}
	c.Children = flat
}

// collapseConcat drops Epsilon children, which match nothing and would
// otherwise survive repeat lowering ({0} produces them). A concatenation
// left with one child collapses to that child; one left empty collapses to
// Epsilon. In Alt, epsilon branches are semantic and stay.
func collapseConcat(c *Concat) (Node, bool) {
	kept := c.Children[:0]
	for _, child := range c.Children {
		if _, ok := child.(*Epsilon); ok {
			continue
		}
		kept = append(kept, child)
	}
	c.Children = kept
	switch len(c.Children) {
	case 0:
		return &Epsilon{}, true
	case 1:
		return c.Children[0], true
	}
	return nil, false
}

// flattenAlt is the Alt counterpart of flattenConcat.
func flattenAlt(a *Alt) {
	flat := make([]Node, 0, len(a.Children))
	for _, child := range a.Children {
		if inner, ok := child.(*Alt); ok {
			flat = append(flat, inner.Children...)
		} else {
			flat = append(flat, child)
		}
	}
	a.Children = flat
}

// lowerRepeat rewrites Repeat nodes into simpler forms:
//
//	{n,n} over {m,m}  ->  {n*m, n*m} wrapping the grandchild
//	{0,}              ->  Star (greedy flag transfers)
//	{1,}              ->  Plus (greedy flag transfers)
//	{0,0}             ->  Epsilon
//	{1,1}             ->  the child itself
func lowerRepeat(n Node) Node {
	rep, ok := n.(*Repeat)
	if !ok {
		return n
	}
	if rep.Exact() {
		if inner, ok := rep.Child.(*Repeat); ok && inner.Exact() {
			rep.Min *= inner.Min
			rep.Max = rep.Min
			rep.Child = inner.Child
		}
	}
	if rep.Unbounded && rep.Min == 0 {
		return &Star{Child: rep.Child, Greedy: rep.Greedy}
	}
	if rep.Unbounded && rep.Min == 1 {
		return &Plus{Child: rep.Child, Greedy: rep.Greedy}
	}
	if rep.Exact() && rep.Min == 0 {
		return &Epsilon{}
	}
	if rep.Exact() && rep.Min == 1 {
		return rep.Child
	}
	return n
}

// fuseQuantifiers collapses a quantifier whose sole child is another
// quantifier, re-attempting at the new subtree root after every fusion.
func fuseQuantifiers(n Node) Node {
	for {
		fused, changed := fuseOnce(n)
		if !changed {
			return fused
		}
		n = fused
	}
}

// fuseOnce applies one row of the fusion table, if any applies.
func fuseOnce(n Node) (Node, bool) {
	switch outer := n.(type) {
	case *Star:
		switch inner := outer.Child.(type) {
		case *Star: // star of star is star
			return &Star{Child: inner.Child, Greedy: outer.Greedy && inner.Greedy}, true
		case *Plus: // star absorbs plus, inner greediness is irrelevant
			return &Star{Child: inner.Child, Greedy: outer.Greedy}, true
		case *Optional:
			return &Star{Child: inner.Child, Greedy: outer.Greedy && inner.Greedy}, true
		}
	case *Plus:
		switch inner := outer.Child.(type) {
		case *Plus:
			return &Plus{Child: inner.Child, Greedy: outer.Greedy || inner.Greedy}, true
		case *Star: // plus of star is the star, outer greediness is irrelevant
			return &Star{Child: inner.Child, Greedy: inner.Greedy}, true
		case *Optional:
			// (x?)+ == x* only when the exit preference cannot flip between
			// the two layers.
			if outer.Greedy || !inner.Greedy {
				return &Star{Child: inner.Child, Greedy: outer.Greedy && inner.Greedy}, true
			}
		}
	case *Optional:
		switch inner := outer.Child.(type) {
		case *Optional:
			return &Optional{Child: inner.Child, Greedy: outer.Greedy && inner.Greedy}, true
		case *Star:
			return &Star{Child: inner.Child, Greedy: outer.Greedy && inner.Greedy}, true
		case *Plus:
			if !outer.Greedy || inner.Greedy {
				return &Star{Child: inner.Child, Greedy: outer.Greedy && inner.Greedy}, true
			}
		}
	}
	return n, false
}
