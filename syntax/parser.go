package syntax

// Parse compiles a pattern into an AST. When optimize is true the tree is
// normalized by Rewrite before being returned. On failure the returned error
// is a *ParseError wrapping ErrSyntax or ErrUnbalancedBrackets; no partial
// AST is returned.
func Parse(pattern string, optimize bool) (*AST, error) {
	p := &parser{pattern: pattern}
	ast, err := p.parse()
	if err != nil {
		return nil, err
	}
	if optimize {
		Rewrite(ast)
	}
	return ast, nil
}

// cursor addresses an insertion site: the slot holding the element the next
// concatenation or quantifier will attach to. parent is nil at the root, or
// one of *Concat, *Alt, *Group. index selects the child for multi-child
// parents. Slots are addressed indirectly so that appending to a child slice
// never invalidates a cursor.
type cursor struct {
	parent Node
	index  int
}

type parser struct {
	pattern string
	ast     *AST
	stack   []cursor

	balance int // group opens minus closes

	escaped     bool
	lazyAllowed bool // a '?' here turns the last quantifier lazy

	inClass         bool
	curClass        *Class
	pendingInterval bool // saw '-', waiting for the range's upper endpoint

	inRepeat     bool
	curRepeat    *Repeat
	sawComma     bool
	sawMaxDigits bool
}

func (p *parser) node(c cursor) Node {
	switch parent := c.parent.(type) {
	case nil:
		return p.ast.Root
	case *Concat:
		return parent.Children[c.index]
	case *Alt:
		return parent.Children[c.index]
	case *Group:
		return parent.Child
	}
	return nil
}

func (p *parser) setNode(c cursor, n Node) {
	switch parent := c.parent.(type) {
	case nil:
		p.ast.Root = n
	case *Concat:
		parent.Children[c.index] = n
	case *Alt:
		parent.Children[c.index] = n
	case *Group:
		parent.Child = n
	}
}

func (p *parser) top() cursor     { return p.stack[len(p.stack)-1] }
func (p *parser) pop()            { p.stack = p.stack[:len(p.stack)-1] }
func (p *parser) push(c cursor)   { p.stack = append(p.stack, c) }
func (p *parser) topNode() Node   { return p.node(p.top()) }
func (p *parser) setTop(n Node)   { p.setNode(p.top(), n) }
func (p *parser) hasParent() bool { return p.top().parent != nil }

func (p *parser) syntaxErr(pos int, msg string) error {
	return &ParseError{Pattern: p.pattern, Pos: pos, Msg: msg, Err: ErrSyntax}
}

func (p *parser) unbalancedErr(pos int, msg string) error {
	return &ParseError{Pattern: p.pattern, Pos: pos, Msg: msg, Err: ErrUnbalancedBrackets}
}

// anchors strips a leading '^' and a trailing unescaped '$' from the pattern,
// recording them as anchor flags. A '$' preceded by an odd run of backslashes
// is escaped and stays in the pattern as a literal.
func (p *parser) anchors(pattern string) string {
	if len(pattern) == 0 {
		return pattern
	}
	if pattern[0] == '^' {
		p.ast.AnchorBegin = true
	}
	if n := len(pattern); pattern[n-1] == '$' {
		slashes := 0
		for i := n - 2; i >= 0 && pattern[i] == '\\'; i-- {
			slashes++
		}
		if slashes%2 == 0 {
			p.ast.AnchorEnd = true
		}
	}
	if p.ast.AnchorBegin {
		pattern = pattern[1:]
	}
	if p.ast.AnchorEnd {
		pattern = pattern[:len(pattern)-1]
	}
	return pattern
}

func (p *parser) parse() (*AST, error) {
	p.ast = &AST{Root: &Epsilon{}}
	p.stack = []cursor{{parent: nil}}
	body := p.anchors(p.pattern)
	off := 0
	if p.ast.AnchorBegin {
		off = 1
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		pos := off + i

		if c == '\\' && !p.escaped {
			p.lazyAllowed = false
			p.escaped = true
			continue
		}

		if p.inClass {
			if c == '[' && !p.escaped {
				return nil, p.syntaxErr(pos, "unescaped '[' inside character class")
			}
			if !(c == ']' && !p.escaped) {
				if err := p.classChar(c, pos); err != nil {
					return nil, err
				}
				p.escaped = false
				continue
			}
			// Unescaped ']' falls through and closes the class below.
		}

		if c == '[' && !p.escaped {
			p.inClass = true
			p.pendingInterval = false
			p.curClass = &Class{}
			p.lazyAllowed = false
			continue
		} else if c == ']' && !p.escaped {
			if !p.inClass {
				return nil, p.syntaxErr(pos, "stray ']'")
			}
			if p.pendingInterval {
				return nil, p.syntaxErr(pos, "trailing '-' in character class")
			}
			p.inClass = false
			// Falls through: the concatenation step below installs the class.
		}

		if p.inRepeat {
			if p.escaped {
				return nil, p.syntaxErr(pos, "escape inside repeat count")
			}
			if c != '}' {
				if err := p.repeatChar(c, pos); err != nil {
					return nil, err
				}
				continue
			}
		}

		if c == '{' && !p.escaped {
			p.inRepeat = true
			p.sawComma = false
			p.sawMaxDigits = false
			p.curRepeat = &Repeat{Child: p.topNode(), Greedy: true}
			p.setTop(p.curRepeat)
			p.lazyAllowed = false
			continue
		} else if c == '}' && !p.escaped {
			if !p.inRepeat {
				return nil, p.syntaxErr(pos, "stray '}'")
			}
			if err := p.closeRepeat(pos); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case !p.escaped && (c == ')' || c == '>'):
			if err := p.closeGroup(c, pos); err != nil {
				return nil, err
			}
			p.lazyAllowed = false

		case c == '*' && !p.escaped:
			p.setTop(&Star{Child: p.topNode(), Greedy: true})
			p.lazyAllowed = true

		case c == '+' && !p.escaped:
			p.setTop(&Plus{Child: p.topNode(), Greedy: true})
			p.lazyAllowed = true

		case c == '?' && !p.escaped && !p.lazyAllowed:
			p.setTop(&Optional{Child: p.topNode(), Greedy: true})
			p.lazyAllowed = true

		case c == '?' && p.lazyAllowed:
			switch q := p.topNode().(type) {
			case *Star:
				q.Greedy = false
			case *Plus:
				q.Greedy = false
			case *Optional:
				q.Greedy = false
			case *Repeat:
				q.Greedy = false
			}
			p.lazyAllowed = false // only one lazy suffix per quantifier

		case c == '|' && !p.escaped:
			p.alternate()
			p.lazyAllowed = false

		default:
			if err := p.concat(c, pos); err != nil {
				return nil, err
			}
			p.lazyAllowed = false
		}

		p.escaped = false
	}

	if p.balance != 0 {
		return nil, p.unbalancedErr(len(p.pattern), "unclosed group")
	}
	if p.inClass {
		return nil, p.syntaxErr(len(p.pattern), "unclosed character class")
	}
	if p.inRepeat {
		return nil, p.syntaxErr(len(p.pattern), "unclosed repeat count")
	}
	return p.ast, nil
}

// classChar consumes one character inside '[...]'.
func (p *parser) classChar(c byte, pos int) error {
	switch {
	case c == '^' && !p.escaped:
		p.curClass.Invert = true
	case c == '-' && !p.escaped:
		if p.pendingInterval {
			return p.syntaxErr(pos, "'-' after '-' in character class")
		}
		if len(p.curClass.Intervals) == 0 {
			return p.syntaxErr(pos, "'-' before any class entry")
		}
		p.pendingInterval = true
	default:
		if p.pendingInterval {
			last := len(p.curClass.Intervals) - 1
			p.curClass.Intervals[last].Hi = c
			p.pendingInterval = false
		} else {
			p.curClass.Intervals = append(p.curClass.Intervals, Interval{Lo: c, Hi: c})
		}
	}
	return nil
}

// repeatChar consumes one character inside '{...}'.
func (p *parser) repeatChar(c byte, pos int) error {
	switch {
	case c == ',':
		if p.sawComma {
			return p.syntaxErr(pos, "more than one ',' in repeat count")
		}
		p.sawComma = true
	case c >= '0' && c <= '9':
		digit := int(c - '0')
		if p.sawComma {
			p.sawMaxDigits = true
			p.curRepeat.Max = p.curRepeat.Max*10 + digit
		} else {
			p.curRepeat.Min = p.curRepeat.Min*10 + digit
		}
	case c == ' ':
		// Spaces inside {...} are ignored.
	default:
		return p.syntaxErr(pos, "character not allowed in repeat count")
	}
	return nil
}

func (p *parser) closeRepeat(pos int) error {
	switch {
	case !p.sawComma:
		p.curRepeat.Max = p.curRepeat.Min // exact count
	case p.sawMaxDigits:
		if p.curRepeat.Max < p.curRepeat.Min {
			return p.syntaxErr(pos, "max repetitions less than min repetitions")
		}
	default:
		p.curRepeat.Unbounded = true
	}
	p.inRepeat = false
	p.curRepeat = nil
	p.lazyAllowed = true
	return nil
}

// closeGroup handles ')' and '>': it ascends to the innermost open group,
// validates the bracket pairing, and flattens non-capturing groups.
func (p *parser) closeGroup(c byte, pos int) error {
	p.balance--
	if p.balance < 0 {
		return p.unbalancedErr(pos, "more closes than opens")
	}
	for {
		p.pop()
		if _, ok := p.topNode().(*Group); ok || !p.hasParent() {
			break
		}
	}
	group, ok := p.topNode().(*Group)
	if !ok {
		return p.unbalancedErr(pos, "no open group")
	}
	if (group.Capturing && c == ')') || (!group.Capturing && c == '>') {
		return p.unbalancedErr(pos, "mismatched capturing/non-capturing brackets")
	}
	if !group.Capturing {
		p.setTop(group.Child)
	}
	return nil
}

// alternate handles '|': ascend to the nearest enclosing Alt or group
// boundary, then open a fresh Epsilon branch.
func (p *parser) alternate() {
	for p.hasParent() {
		if _, ok := p.topNode().(*Alt); ok {
			break
		}
		if _, ok := p.top().parent.(*Group); ok {
			break
		}
		p.pop()
	}
	branch := Node(&Epsilon{})
	if alt, ok := p.topNode().(*Alt); ok {
		alt.Children = append(alt.Children, branch)
		p.push(cursor{parent: alt, index: len(alt.Children) - 1})
		return
	}
	alt := &Alt{Children: []Node{p.topNode(), branch}}
	p.setTop(alt)
	p.push(cursor{parent: alt, index: 1})
}

// concat appends the next atom by concatenation: it replaces an Epsilon
// placeholder, extends an enclosing Concat, or wraps the site in a new one.
func (p *parser) concat(c byte, pos int) error {
	atom, err := p.atom(c, pos)
	if err != nil {
		return err
	}

	// Left associativity: if the site is the last child of a Concat, ascend
	// to the Concat itself so the atom is appended rather than nested.
	if _, ok := p.top().parent.(*Concat); ok {
		p.pop()
	}

	switch site := p.topNode().(type) {
	case *Epsilon:
		p.setTop(atom)
	case *Concat:
		site.Children = append(site.Children, atom)
		p.push(cursor{parent: site, index: len(site.Children) - 1})
	default:
		cc := &Concat{Children: []Node{site, atom}}
		p.setTop(cc)
		p.push(cursor{parent: cc, index: 1})
	}

	// Entering a group moves the insertion site to its Epsilon child.
	if group, ok := p.topNode().(*Group); ok {
		p.push(cursor{parent: group})
	}
	return nil
}

// atom builds the node for one ordinary token.
func (p *parser) atom(c byte, pos int) (Node, error) {
	switch {
	case !p.escaped && (c == '(' || c == '<'):
		p.balance++
		return &Group{Child: &Epsilon{}, Capturing: c == '<'}, nil
	case c == ']' && !p.escaped:
		cl := p.curClass
		p.curClass = nil
		cl.Normalize()
		if len(cl.Intervals) == 0 {
			return nil, p.syntaxErr(pos, "empty character class")
		}
		if ch, ok := cl.Single(); ok {
			return &Literal{C: ch}, nil
		}
		return cl, nil
	case c == '.' && !p.escaped:
		return &Any{}, nil
	default:
		return &Literal{C: c}, nil
	}
}
