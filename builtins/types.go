package builtins

import (
	"strconv"
	"strings"

	"github.com/nyxlang/nyx/values"
)

var typeMethods = []entry{
	{"type", biType},
	{"type_of", biType},
	{"is_int", biIsInt},
	{"is_bool", biIsBool},
	{"is_string", biIsString},
	{"is_array", biIsArray},
	{"is_function", biIsFunction},
	{"is_null", biIsNull},
	{"str", biStr},
	{"int", biInt},
}

func init() { all = append(all, typeMethods...) }

// biType implements `type(x)`/`type_of(x)`.
func biType(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("type", 1, len(args))
	}
	return values.String{Value: values.TypeName(args[0])}, nil
}

func isPredicate(name string, want string) values.BuiltinFunc {
	return func(ctx *values.CallContext, args []values.Value) (values.Value, error) {
		if len(args) != 1 {
			return nil, wantArgs(name, 1, len(args))
		}
		return values.Bool{Value: values.TypeName(args[0]) == want}, nil
	}
}

var biIsInt = isPredicate("is_int", "int")
var biIsBool = isPredicate("is_bool", "bool")
var biIsString = isPredicate("is_string", "string")
var biIsArray = isPredicate("is_array", "array")
var biIsNull = isPredicate("is_null", "null")

// biIsFunction implements `is_function(x)`: true for function, builtin,
// and bound-method, per §8's testable property that is_function covers
// every callable kind.
func biIsFunction(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("is_function", 1, len(args))
	}
	switch values.TypeName(args[0]) {
	case "function", "builtin", "bound-method":
		return values.Bool{Value: true}, nil
	default:
		return values.Bool{Value: false}, nil
	}
}

// biStr implements `str(x)`: the canonical conversion.
func biStr(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("str", 1, len(args))
	}
	return values.String{Value: values.Stringify(args[0])}, nil
}

// biInt implements `int(x)`: parses an int from an int, bool, or
// string.
func biInt(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("int", 1, len(args))
	}
	switch x := args[0].(type) {
	case values.Int:
		return x, nil
	case values.Bool:
		if x.Value {
			return values.Int{Value: 1}, nil
		}
		return values.Int{Value: 0}, nil
	case values.String:
		n, err := strconv.ParseInt(strings.TrimSpace(x.Value), 10, 64)
		if err != nil {
			return nil, argErrorf("int", "cannot parse %q as an int", x.Value)
		}
		return values.Int{Value: n}, nil
	default:
		return nil, argErrorf("int", "expected an int, bool, or string, got %s", values.TypeName(args[0]))
	}
}
