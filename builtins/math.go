package builtins

import "github.com/nyxlang/nyx/values"

var mathMethods = []entry{
	{"abs", biAbs},
	{"min", biMin},
	{"max", biMax},
	{"clamp", biClamp},
}

func init() { all = append(all, mathMethods...) }

func asInt(name string, v values.Value) (int64, error) {
	i, ok := v.(values.Int)
	if !ok {
		return 0, argErrorf(name, "expected an int argument, got %s", values.TypeName(v))
	}
	return i.Value, nil
}

// biAbs implements `abs(x)`: the absolute value of an integer.
func biAbs(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("abs", 1, len(args))
	}
	x, err := asInt("abs", args[0])
	if err != nil {
		return nil, err
	}
	if x < 0 {
		x = -x
	}
	return values.Int{Value: x}, nil
}

// biMin implements `min(a, b)`.
func biMin(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, wantArgs("min", 2, len(args))
	}
	a, err := asInt("min", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInt("min", args[1])
	if err != nil {
		return nil, err
	}
	if a < b {
		return values.Int{Value: a}, nil
	}
	return values.Int{Value: b}, nil
}

// biMax implements `max(a, b)`.
func biMax(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, wantArgs("max", 2, len(args))
	}
	a, err := asInt("max", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInt("max", args[1])
	if err != nil {
		return nil, err
	}
	if a > b {
		return values.Int{Value: a}, nil
	}
	return values.Int{Value: b}, nil
}

// biClamp implements `clamp(x, lo, hi)`.
func biClamp(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 3 {
		return nil, wantArgs("clamp", 3, len(args))
	}
	x, err := asInt("clamp", args[0])
	if err != nil {
		return nil, err
	}
	lo, err := asInt("clamp", args[1])
	if err != nil {
		return nil, err
	}
	hi, err := asInt("clamp", args[2])
	if err != nil {
		return nil, err
	}
	if x < lo {
		return values.Int{Value: lo}, nil
	}
	if x > hi {
		return values.Int{Value: hi}, nil
	}
	return values.Int{Value: x}, nil
}
