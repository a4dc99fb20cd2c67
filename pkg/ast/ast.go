package ast

import "math/big"

type NodeType string

const (
	NodeNum     NodeType = "Num"
	NodeVar     NodeType = "Var"
	NodeBinOp   NodeType = "BinOp"
	NodeAssign  NodeType = "Assign"
	NodePrint   NodeType = "Print"
	NodeIf      NodeType = "If"
	NodeWhile   NodeType = "While"
	NodeProgram NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. The unexported methods keep the variant set closed to
// this package.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

type Num struct {
	nodeImpl
	expressionMarker

	Value *big.Int `json:"value"`
}

func NewNum(value *big.Int) *Num {
	return &Num{nodeImpl: newNodeImpl(NodeNum), Value: value}
}

type Var struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewVar(name string) *Var {
	return &Var{nodeImpl: newNodeImpl(NodeVar), Name: name}
}

// Operators accepted by BinOp.
const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
	OpEq  = "=="
	OpGt  = ">"
	OpLt  = "<"
)

type BinOp struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewBinOp(left Expression, operator string, right Expression) *BinOp {
	return &BinOp{nodeImpl: newNodeImpl(NodeBinOp), Left: left, Operator: operator, Right: right}
}

// Statements

// Assign covers both `let x = e` and `x = e`; the language draws no
// distinction between declaration and re-assignment.
type Assign struct {
	nodeImpl
	statementMarker

	Target string     `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssign(target string, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Target: target, Value: value}
}

type Print struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewPrint(value Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

type If struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewIf(condition Expression, body []Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Body: body}
}

type While struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewWhile(condition Expression, body []Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body}
}

// Program is the ordered top-level statement sequence.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	if body == nil {
		body = []Statement{}
	}
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}
