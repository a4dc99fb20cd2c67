package interpreter

import (
	"fmt"
	"strings"

	"minilang/interpreter-go/pkg/runtime"
)

// valueToString renders a value the way print writes it.
func valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case runtime.IntegerValue:
		if v.Val == nil {
			return "0"
		}
		return v.Val.String()
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.SequenceValue:
		parts := make([]string, len(v.Items))
		for idx, item := range v.Items {
			parts[idx] = valueToString(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

// Describe renders a runtime value for embedding code and diagnostics.
func Describe(val runtime.Value) string {
	return valueToString(val)
}
