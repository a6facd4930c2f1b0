package expr

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The AST is deliberately small: the grammar has literals, variables, unary
// minus, binary arithmetic, a single comparison level, and function calls.
// Node String methods reconstruct the source fragment for error messages.

type node interface {
	String() string
}

type numberNode struct {
	value decimal.Decimal
}

func (n *numberNode) String() string {
	return n.value.String()
}

type stringNode struct {
	value string
}

func (n *stringNode) String() string {
	return `"` + n.value + `"`
}

type variableNode struct {
	name string
}

func (n *variableNode) String() string {
	return n.name
}

type unaryNode struct {
	operand node
}

func (n *unaryNode) String() string {
	return "-" + n.operand.String()
}

type binaryNode struct {
	op          string
	left, right node
}

func (n *binaryNode) String() string {
	return n.left.String() + " " + n.op + " " + n.right.String()
}

type compareNode struct {
	op          string
	left, right node
}

func (n *compareNode) String() string {
	return n.left.String() + " " + n.op + " " + n.right.String()
}

type callNode struct {
	name string
	args []node
}

func (n *callNode) String() string {
	parts := make([]string, len(n.args))
	for i, arg := range n.args {
		parts[i] = arg.String()
	}
	return n.name + "(" + strings.Join(parts, ", ") + ")"
}

// collectVariables appends the names of all variables referenced under n.
func collectVariables(n node, seen map[string]struct{}) {
	switch v := n.(type) {
	case *variableNode:
		seen[v.name] = struct{}{}
	case *unaryNode:
		collectVariables(v.operand, seen)
	case *binaryNode:
		collectVariables(v.left, seen)
		collectVariables(v.right, seen)
	case *compareNode:
		collectVariables(v.left, seen)
		collectVariables(v.right, seen)
	case *callNode:
		for _, arg := range v.args {
			collectVariables(arg, seen)
		}
	}
}
