package scicalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Trees are
// never modified after parsing.
type node struct {
	kind nodeKind

	// name is the literal text, identifier, attribute, or operator,
	// depending on kind.
	name string
	// pos is the column of the token that produced the node.
	pos int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num
	nodeName // push lookup(name)

	nodeCall // left is callee, right links the arguments or is nil
	nodeArg  // eval left, right is link to next arg

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodeMod // evaluate left, mod by right
	nodePow // evaluate left, exp by right

	// Everything below parses but never evaluates.

	nodeStr    // name is string contents
	nodeList   // right is link to nodeArg
	nodeAttr   // left.name
	nodeIndex  // left[right]
	nodeAssign // left name right, name is = or :=
	nodeBinop  // left name right, name is a disallowed binary operator
	nodeUnop   // name left, name is a disallowed unary operator
	nodeLambda // lambda: left
	nodeComp   // left, then clauses linked through right as nodeArg; name is [ for a list
	nodeCond   // left if right.left else right.right.left
)

var nodeKindNames = [...]string{
	nodeNone:   "None",
	nodeNum:    "Num",
	nodeName:   "Name",
	nodeCall:   "Call",
	nodeArg:    "Arg",
	nodeNeg:    "Neg",
	nodeNop:    "Nop",
	nodeAdd:    "Add",
	nodeSub:    "Sub",
	nodeMul:    "Mul",
	nodeDiv:    "Div",
	nodeMod:    "Mod",
	nodePow:    "Pow",
	nodeStr:    "Str",
	nodeList:   "List",
	nodeAttr:   "Attr",
	nodeIndex:  "Index",
	nodeAssign: "Assign",
	nodeBinop:  "Binop",
	nodeUnop:   "Unop",
	nodeLambda: "Lambda",
	nodeComp:   "Comp",
	nodeCond:   "Cond",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n with every subterm in parentheses, so that the text parses
// back to the same tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	switch n.kind {
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeStr:
		b.WriteString(strconv.Quote(n.name))
	case nodeCall:
		if n.left.kind == nodeName {
			b.WriteString(n.left.name)
		} else {
			n.left.fmt(b)
		}
		n.fmtargs(b, "(", ")")
	case nodeList:
		n.fmtargs(b, "[", "]")
	case nodeAttr:
		n.left.fmt(b)
		b.WriteString("." + n.name)
	case nodeIndex:
		n.left.fmt(b)
		b.WriteByte('[')
		n.right.fmt(b)
		b.WriteByte(']')
	case nodeNeg, nodeNop, nodeUnop:
		b.WriteString(n.op())
		n.left.fmt(b)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow, nodeBinop, nodeAssign:
		n.left.fmt(b)
		b.WriteString(" " + n.op() + " ")
		n.right.fmt(b)
	case nodeLambda:
		b.WriteString("lambda: ")
		n.left.fmt(b)
	case nodeCond:
		n.left.fmt(b)
		n.fmtclauses(b)
	case nodeComp:
		if n.name == "[" {
			b.WriteByte('[')
		}
		n.left.fmt(b)
		n.fmtclauses(b)
		if n.name == "[" {
			b.WriteByte(']')
		}
	default:
		panic("scicalc: cannot format " + n.kind.String() + " node")
	}
	b.WriteByte(')')
}

// op returns the operator text of an operator node.
func (n *node) op() string {
	switch n.kind {
	case nodeNeg, nodeSub:
		return "-"
	case nodeNop, nodeAdd:
		return "+"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeMod:
		return "%"
	case nodePow:
		return "**"
	default:
		return n.name
	}
}

// fmtargs writes the arguments of a call or list between l and r.
func (n *node) fmtargs(b *strings.Builder, l, r string) {
	b.WriteString(l)
	for i, a := range n.args() {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
	b.WriteString(r)
}

// fmtclauses writes the keyword-led clauses linked from n.right.
func (n *node) fmtclauses(b *strings.Builder) {
	for c := n.right; c != nil; c = c.right {
		if c.name == "," {
			b.WriteString(", ")
		} else {
			b.WriteString(" " + c.name + " ")
		}
		c.left.fmt(b)
	}
}

// args collects the argument expressions linked from n.right.
func (n *node) args() []*node {
	var v []*node
	for l := n.right; l != nil; l = l.right {
		v = append(v, l.left)
	}
	return v
}
