package builtins

import "github.com/nyxlang/nyx/values"

var classMethods = []entry{
	{"new", biNew},
	{"class_new", biClassNew},
	{"class_with_ctor", biClassWithCtor},
	{"class_set_method", biClassSetMethod},
	{"class_name", biClassName},
	{"class_instantiate0", biClassInstantiateN(0)},
	{"class_instantiate1", biClassInstantiateN(1)},
	{"class_instantiate2", biClassInstantiateN(2)},
	{"class_call0", biClassCallN(0)},
	{"class_call1", biClassCallN(1)},
	{"class_call2", biClassCallN(2)},
}

func init() { all = append(all, classMethods...) }

func asClass(name string, v values.Value) (*values.Object, error) {
	o, ok := v.(*values.Object)
	if !ok || o.Kind != values.KindClass {
		return nil, argErrorf(name, "expected a class object, got %s", values.TypeName(v))
	}
	return o, nil
}

// construct is the constructor protocol shared by `new` and
// class_instantiateN: allocate a fresh instance, set __class__, and if
// the class has an `init` member, call it with (instance, args...).
// Returns the instance regardless of what init itself returns.
func construct(ctx *values.CallContext, class *values.Object, args []values.Value) (values.Value, error) {
	instance := values.NewObject(values.KindInstance)
	instance.Set("__class__", class)
	if initFn, ok := class.GetOwn("init"); ok {
		full := append([]values.Value{instance}, args...)
		if _, err := ctx.Caller.Call(initFn, full); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// biNew implements `new(cls, args...)`, the constructor protocol from
// §4.E.
func biNew(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) < 1 {
		return nil, argErrorf("new", "expected a class argument")
	}
	class, err := asClass("new", args[0])
	if err != nil {
		return nil, err
	}
	return construct(ctx, class, args[1:])
}

// biClassNew implements `class_new(name)`: an empty class object named
// name (no constructor, no methods) — the starting point transpiled
// code and introspective scripts build a class up from.
func biClassNew(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("class_new", 1, len(args))
	}
	name, ok := args[0].(values.String)
	if !ok {
		return nil, argErrorf("class_new", "expected a string name, got %s", values.TypeName(args[0]))
	}
	class := values.NewObject(values.KindClass)
	class.Set("__name__", name)
	return class, nil
}

// biClassWithCtor implements `class_with_ctor(name, init_fn)`:
// class_new plus an `init` method in one call.
func biClassWithCtor(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, wantArgs("class_with_ctor", 2, len(args))
	}
	name, ok := args[0].(values.String)
	if !ok {
		return nil, argErrorf("class_with_ctor", "expected a string name, got %s", values.TypeName(args[0]))
	}
	class := values.NewObject(values.KindClass)
	class.Set("__name__", name)
	class.Set("init", args[1])
	return class, nil
}

// biClassSetMethod implements `class_set_method(cls, name, fn)`.
func biClassSetMethod(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 3 {
		return nil, wantArgs("class_set_method", 3, len(args))
	}
	class, err := asClass("class_set_method", args[0])
	if err != nil {
		return nil, err
	}
	name, ok := args[1].(values.String)
	if !ok {
		return nil, argErrorf("class_set_method", "expected a string method name, got %s", values.TypeName(args[1]))
	}
	class.Set(name.Value, args[2])
	return class, nil
}

// biClassName implements `class_name(cls)`.
func biClassName(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("class_name", 1, len(args))
	}
	class, err := asClass("class_name", args[0])
	if err != nil {
		return nil, err
	}
	if v, ok := class.GetOwn("__name__"); ok {
		return v, nil
	}
	return values.String{Value: ""}, nil
}

// biClassInstantiateN returns the class_instantiate0/1/2 builtin for a
// fixed positional-argument count n, matching the native reference's
// three fixed-arity helpers (§4's supplemented-features list).
func biClassInstantiateN(n int) values.BuiltinFunc {
	name := []string{"class_instantiate0", "class_instantiate1", "class_instantiate2"}[n]
	return func(ctx *values.CallContext, args []values.Value) (values.Value, error) {
		if len(args) != n+1 {
			return nil, wantArgs(name, n+1, len(args))
		}
		class, err := asClass(name, args[0])
		if err != nil {
			return nil, err
		}
		return construct(ctx, class, args[1:])
	}
}

// biClassCallN returns the class_call0/1/2 builtin for a fixed
// positional-argument count n: calls instance.method_name(args...)
// programmatically, without the language's own `.` member-access
// syntax.
func biClassCallN(n int) values.BuiltinFunc {
	name := []string{"class_call0", "class_call1", "class_call2"}[n]
	return func(ctx *values.CallContext, args []values.Value) (values.Value, error) {
		if len(args) != n+2 {
			return nil, wantArgs(name, n+2, len(args))
		}
		instance, ok := args[0].(*values.Object)
		if !ok {
			return nil, argErrorf(name, "expected an instance argument, got %s", values.TypeName(args[0]))
		}
		methodName, ok := args[1].(values.String)
		if !ok {
			return nil, argErrorf(name, "expected a string method name, got %s", values.TypeName(args[1]))
		}
		method, ok := instance.Get(methodName.Value)
		if !ok {
			return nil, argErrorf(name, "no such method: %s", methodName.Value)
		}
		return ctx.Caller.Call(method, args[2:])
	}
}
