package runtime

import (
	"fmt"
	"math/big"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// IntegerValue is an arbitrary-precision integer. Val is never mutated after
// construction; arithmetic always allocates a fresh big.Int.
type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// SequenceValue is the result of a taken if-body: one entry per statement.
// Statements that produce no value contribute nil.
type SequenceValue struct {
	Items []Value
}

func (v SequenceValue) Kind() Kind { return KindSequence }

// NewInteger wraps an int64.
func NewInteger(n int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(n)}
}

//-----------------------------------------------------------------------------
// Utility helpers
//-----------------------------------------------------------------------------

// CloneBigInt copies the provided big.Int pointer, tolerating nil.
func CloneBigInt(src *big.Int) *big.Int {
	if src == nil {
		return nil
	}
	return new(big.Int).Set(src)
}

// AsBigInt views a value numerically. Booleans count as 0 and 1.
func AsBigInt(v Value) (*big.Int, bool) {
	switch val := v.(type) {
	case IntegerValue:
		if val.Val == nil {
			return new(big.Int), true
		}
		return val.Val, true
	case BoolValue:
		if val.Val {
			return big.NewInt(1), true
		}
		return new(big.Int), true
	default:
		return nil, false
	}
}

// Truthy reports whether a value selects the taken branch of a condition:
// any non-zero integer or true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case IntegerValue:
		return val.Val != nil && val.Val.Sign() != 0
	default:
		return false
	}
}

// Equal compares two values numerically.
func Equal(a, b Value) bool {
	x, okA := AsBigInt(a)
	y, okB := AsBigInt(b)
	return okA && okB && x.Cmp(y) == 0
}
