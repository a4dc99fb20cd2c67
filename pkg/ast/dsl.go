package ast

import "math/big"

// Expression helpers.

func Int(value int64) *Num {
	return NewNum(big.NewInt(value))
}

func IntBig(value *big.Int) *Num {
	return NewNum(new(big.Int).Set(value))
}

func ID(name string) *Var {
	return NewVar(name)
}

func Bin(left Expression, operator string, right Expression) *BinOp {
	return NewBinOp(left, operator, right)
}

// Statement helpers.

func Let(target string, value Expression) *Assign {
	return NewAssign(target, value)
}

func Out(value Expression) *Print {
	return NewPrint(value)
}

func When(condition Expression, body ...Statement) *If {
	return NewIf(condition, stmts(body))
}

func Loop(condition Expression, body ...Statement) *While {
	return NewWhile(condition, stmts(body))
}

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}

func stmts(body []Statement) []Statement {
	if body == nil {
		return []Statement{}
	}
	return body
}
