package builtins

import "github.com/nyxlang/nyx/values"

var objectMethods = []entry{
	{"object_new", biObjectNew},
	{"object_set", biObjectSet},
	{"object_get", biObjectGet},
	{"keys", biKeys},
	{"values", biValues},
	{"items", biItems},
	{"has", biHas},
}

func init() { all = append(all, objectMethods...) }

func asObject(name string, v values.Value) (*values.Object, error) {
	o, ok := v.(*values.Object)
	if !ok {
		return nil, argErrorf(name, "expected an object, got %s", values.TypeName(v))
	}
	return o, nil
}

// biObjectNew implements `object_new()`: a fresh plain object.
func biObjectNew(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, wantArgs("object_new", 0, len(args))
	}
	return values.NewObject(values.KindPlain), nil
}

// biObjectSet implements `object_set(obj, key, value)`.
func biObjectSet(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 3 {
		return nil, wantArgs("object_set", 3, len(args))
	}
	obj, err := asObject("object_set", args[0])
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(values.String)
	if !ok {
		return nil, argErrorf("object_set", "expected a string key, got %s", values.TypeName(args[1]))
	}
	obj.Set(key.Value, args[2])
	return obj, nil
}

// biObjectGet implements `object_get(obj, key)`: null if absent.
func biObjectGet(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, wantArgs("object_get", 2, len(args))
	}
	obj, err := asObject("object_get", args[0])
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(values.String)
	if !ok {
		return nil, argErrorf("object_get", "expected a string key, got %s", values.TypeName(args[1]))
	}
	if v, ok := obj.GetOwn(key.Value); ok {
		return v, nil
	}
	return values.Null{}, nil
}

// biKeys implements `keys(obj)`: an array of string keys in insertion
// order.
func biKeys(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("keys", 1, len(args))
	}
	obj, err := asObject("keys", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]values.Value, len(obj.Keys))
	for i, k := range obj.Keys {
		out[i] = values.String{Value: k}
	}
	return values.NewArray(out), nil
}

// biValues implements `values(obj)`: an array of values in key order.
func biValues(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("values", 1, len(args))
	}
	obj, err := asObject("values", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]values.Value, len(obj.Keys))
	for i, k := range obj.Keys {
		v, _ := obj.GetOwn(k)
		out[i] = v
	}
	return values.NewArray(out), nil
}

// biItems implements `items(obj)`: an array of [key, value] pairs.
func biItems(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("items", 1, len(args))
	}
	obj, err := asObject("items", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]values.Value, len(obj.Keys))
	for i, k := range obj.Keys {
		v, _ := obj.GetOwn(k)
		out[i] = values.NewArray([]values.Value{values.String{Value: k}, v})
	}
	return values.NewArray(out), nil
}

// biHas implements `has(obj, key)`.
func biHas(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, wantArgs("has", 2, len(args))
	}
	obj, err := asObject("has", args[0])
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(values.String)
	if !ok {
		return nil, argErrorf("has", "expected a string key, got %s", values.TypeName(args[1]))
	}
	_, found := obj.GetOwn(key.Value)
	return values.Bool{Value: found}, nil
}
