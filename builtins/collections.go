package builtins

import "github.com/nyxlang/nyx/values"

var collectionMethods = []entry{
	{"len", biLen},
	{"sum", biSum},
	{"all", biAll},
	{"any", biAny},
	{"range", biRange},
	{"push", biPush},
	{"pop", biPop},
}

func init() { all = append(all, collectionMethods...) }

// biLen implements `len(x)`: the length of a string, array, or object.
func biLen(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("len", 1, len(args))
	}
	switch x := args[0].(type) {
	case values.String:
		return values.Int{Value: int64(len(x.Value))}, nil
	case *values.Array:
		return values.Int{Value: int64(len(x.Elements))}, nil
	case *values.Object:
		return values.Int{Value: int64(len(x.Keys))}, nil
	default:
		return nil, argErrorf("len", "expected a string, array, or object, got %s", values.TypeName(args[0]))
	}
}

// biSum implements `sum(arr)`: the integer sum of an int array.
func biSum(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("sum", 1, len(args))
	}
	arr, ok := args[0].(*values.Array)
	if !ok {
		return nil, argErrorf("sum", "expected an array, got %s", values.TypeName(args[0]))
	}
	var total int64
	for _, el := range arr.Elements {
		i, ok := el.(values.Int)
		if !ok {
			return nil, argErrorf("sum", "expected an array of ints, found %s", values.TypeName(el))
		}
		total += i.Value
	}
	return values.Int{Value: total}, nil
}

// biAll implements `all(arr)`: folds truthiness with AND.
func biAll(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("all", 1, len(args))
	}
	arr, ok := args[0].(*values.Array)
	if !ok {
		return nil, argErrorf("all", "expected an array, got %s", values.TypeName(args[0]))
	}
	for _, el := range arr.Elements {
		if !values.Truthy(el) {
			return values.Bool{Value: false}, nil
		}
	}
	return values.Bool{Value: true}, nil
}

// biAny implements `any(arr)`: folds truthiness with OR.
func biAny(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("any", 1, len(args))
	}
	arr, ok := args[0].(*values.Array)
	if !ok {
		return nil, argErrorf("any", "expected an array, got %s", values.TypeName(args[0]))
	}
	for _, el := range arr.Elements {
		if values.Truthy(el) {
			return values.Bool{Value: true}, nil
		}
	}
	return values.Bool{Value: false}, nil
}

// biRange implements `range(stop)`, `range(start, stop)`, and
// `range(start, stop, step)`: an exclusive-upper-bound integer range,
// direction inferred from step's sign. A zero step is a runtime error.
func biRange(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	var start, stop, step int64
	switch len(args) {
	case 1:
		stopV, err := asInt("range", args[0])
		if err != nil {
			return nil, err
		}
		start, stop, step = 0, stopV, 1
	case 2:
		startV, err := asInt("range", args[0])
		if err != nil {
			return nil, err
		}
		stopV, err := asInt("range", args[1])
		if err != nil {
			return nil, err
		}
		start, stop, step = startV, stopV, 1
	case 3:
		startV, err := asInt("range", args[0])
		if err != nil {
			return nil, err
		}
		stopV, err := asInt("range", args[1])
		if err != nil {
			return nil, err
		}
		stepV, err := asInt("range", args[2])
		if err != nil {
			return nil, err
		}
		start, stop, step = startV, stopV, stepV
	default:
		return nil, wantArgsRange("range", 1, 3, len(args))
	}
	if step == 0 {
		return nil, argErrorf("range", "step must not be zero")
	}
	var out []values.Value
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, values.Int{Value: i})
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, values.Int{Value: i})
		}
	}
	return values.NewArray(out), nil
}

// biPush implements `push(arr, x)`: appends x to arr in place and
// returns the array.
func biPush(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, wantArgs("push", 2, len(args))
	}
	arr, ok := args[0].(*values.Array)
	if !ok {
		return nil, argErrorf("push", "expected an array, got %s", values.TypeName(args[0]))
	}
	arr.Elements = append(arr.Elements, args[1])
	return arr, nil
}

// biPop implements `pop(arr)`: removes and returns the last element; an
// empty array is a runtime error.
func biPop(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("pop", 1, len(args))
	}
	arr, ok := args[0].(*values.Array)
	if !ok {
		return nil, argErrorf("pop", "expected an array, got %s", values.TypeName(args[0]))
	}
	if len(arr.Elements) == 0 {
		return nil, argErrorf("pop", "cannot pop from an empty array")
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last, nil
}
