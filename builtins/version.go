package builtins

import "github.com/nyxlang/nyx/values"

// LangVersion is the language's version identifier, returned by
// `lang_version()` and checked by `require_version(s)`. Grounded on the
// reference implementation's CY_LANG_VERSION macro.
const LangVersion = "0.6.13"

var versionMethods = []entry{
	{"lang_version", biLangVersion},
	{"require_version", biRequireVersion},
}

func init() { all = append(all, versionMethods...) }

// biLangVersion implements `lang_version()`.
func biLangVersion(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, wantArgs("lang_version", 0, len(args))
	}
	return values.String{Value: LangVersion}, nil
}

// biRequireVersion implements `require_version(s)`: a runtime check
// that fails the program if s does not match the running version
// exactly.
func biRequireVersion(ctx *values.CallContext, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, wantArgs("require_version", 1, len(args))
	}
	want, ok := args[0].(values.String)
	if !ok {
		return nil, argErrorf("require_version", "expected a string version, got %s", values.TypeName(args[0]))
	}
	if want.Value != LangVersion {
		return nil, argErrorf("require_version", "version mismatch: running %s, required %s", LangVersion, want.Value)
	}
	return values.Null{}, nil
}
