package scicalc

// Validate checks that every node of e is on the allow-list and that every
// name it uses is bound in env. Disallowed constructs are reported before
// unknown names, so text containing one is rejected as such wherever it
// appears. Validate does not check whether Ans has a value; that happens
// during evaluation.
func (env *Env) Validate(e *Expr) error {
	if err := checkKinds(e.n); err != nil {
		return err
	}
	return env.checkNames(e.n)
}

// checkKinds rejects any node outside the arithmetic subset.
func checkKinds(n *node) error {
	if n == nil {
		return nil
	}
	switch n.kind {
	case nodeNum, nodeName:
		return nil
	case nodeCall:
		if n.left.kind != nodeName {
			// Report what the callee is before reporting the call, so that
			// a.b(x) names the attribute access.
			if err := checkKinds(n.left); err != nil {
				return err
			}
			return &DisallowedError{Col: n.pos, Construct: n.construct()}
		}
		return checkKinds(n.right)
	case nodeArg, nodeNeg, nodeNop, nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if err := checkKinds(n.left); err != nil {
			return err
		}
		return checkKinds(n.right)
	default:
		return &DisallowedError{Col: n.pos, Construct: n.construct()}
	}
}

// checkNames resolves every function and constant name in a tree that has
// already passed checkKinds.
func (env *Env) checkNames(n *node) error {
	if n == nil {
		return nil
	}
	switch n.kind {
	case nodeName:
		if isAns(n.name) || env.consts[n.name] != nil {
			return nil
		}
		return &NameError{Col: n.pos, Name: n.name}
	case nodeCall:
		name := n.left.name
		f := env.funcs[name]
		if f == nil {
			return &FuncError{Col: n.pos, Name: name}
		}
		args := n.args()
		if !f.CanCall(len(args)) {
			return &CallError{Col: n.pos, Func: name, Len: len(args)}
		}
		for _, a := range args {
			if err := env.checkNames(a); err != nil {
				return err
			}
		}
		return nil
	default:
		if err := env.checkNames(n.left); err != nil {
			return err
		}
		return env.checkNames(n.right)
	}
}

// construct describes a node kind for error messages.
func (n *node) construct() string {
	switch n.kind {
	case nodeStr:
		return "string literal"
	case nodeList:
		return "list display"
	case nodeAttr:
		return "attribute access ." + n.name
	case nodeIndex:
		return "subscript"
	case nodeAssign:
		return "assignment"
	case nodeBinop:
		return "operator " + n.name
	case nodeUnop:
		return "unary operator " + n.name
	case nodeCall:
		return "call of a computed function"
	case nodeLambda:
		return "lambda"
	case nodeComp:
		return "comprehension"
	case nodeCond:
		return "conditional expression"
	default:
		return "expression " + n.kind.String()
	}
}
