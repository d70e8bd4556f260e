package resolver

// builtinModuleSource returns the canned source for a `cy:`-prefixed
// import. The five modules here are direct ports of the reference
// implementation's g_builtin_*_module strings — same names, same
// bodies — re-expressed in nyx's own surface syntax instead of being
// emitted as escaped C string literals.
func builtinModuleSource(path string) (string, bool) {
	src, ok := builtinModules[path]
	return src, ok
}

var builtinModules = map[string]string{
	"cy:math": `
module Math {
	fn __cy_math_abs(x) {
		if (x < 0) { return -x; }
		return x;
	}
	fn __cy_math_min(a, b) {
		if (a < b) { return a; }
		return b;
	}
	fn __cy_math_max(a, b) {
		if (a > b) { return a; }
		return b;
	}
	fn __cy_math_clamp(x, lo, hi) {
		if (x < lo) { return lo; }
		if (x > hi) { return hi; }
		return x;
	}
	fn __cy_math_pow(base, exp) {
		if (exp < 0) { return 0; }
		let acc = 1;
		let i = 0;
		while (i < exp) {
			acc = acc * base;
			i = i + 1;
		}
		return acc;
	}
	fn __cy_math_sum(xs) {
		let acc = 0;
		for (x in xs) { acc = acc + x; }
		return acc;
	}
	let abs = __cy_math_abs;
	let min = __cy_math_min;
	let max = __cy_math_max;
	let clamp = __cy_math_clamp;
	let pow = __cy_math_pow;
	let sum = __cy_math_sum;
}
`,
	"cy:arrays": `
module Arrays {
	fn __cy_arrays_first(xs) {
		if (len(xs) == 0) { return null; }
		return xs[0];
	}
	fn __cy_arrays_last(xs) {
		if (len(xs) == 0) { return null; }
		return xs[len(xs) - 1];
	}
	fn __cy_arrays_sum(xs) {
		let acc = 0;
		for (x in xs) { acc = acc + x; }
		return acc;
	}
	fn __cy_arrays_enumerate(xs) {
		return [[i, x] for i, x in xs];
	}
	let first = __cy_arrays_first;
	let last = __cy_arrays_last;
	let sum = __cy_arrays_sum;
	let enumerate = __cy_arrays_enumerate;
}
`,
	"cy:objects": `
module Objects {
	fn __cy_objects_merge(a, b) {
		let out = object_new();
		for (k, v in a) { object_set(out, k, v); }
		for (k, v in b) { object_set(out, k, v); }
		return out;
	}
	fn __cy_objects_get_or(obj, key, fallback) {
		if (has(obj, key)) { return object_get(obj, key); }
		return fallback;
	}
	let merge = __cy_objects_merge;
	let get_or = __cy_objects_get_or;
}
`,
	"cy:json": `
module JSON {
	fn __cy_json_parse(text) {
		if (text == "true") { return true; }
		if (text == "false") { return false; }
		if (text == "null") { return null; }
		try {
			return int(text);
		} catch (err) {
			return text;
		}
	}
	fn __cy_json_stringify(value) {
		return str(value);
	}
	let parse = __cy_json_parse;
	let stringify = __cy_json_stringify;
}
`,
	"cy:http": `
module HTTP {
	fn __cy_http_get(path) {
		let body = read(path);
		return {ok: true, status: 200, body: body, path: path};
	}
	fn __cy_http_text(path) {
		let resp = __cy_http_get(path);
		return object_get(resp, "body");
	}
	fn __cy_http_ok(resp) {
		return object_get(resp, "ok");
	}
	let get = __cy_http_get;
	let text = __cy_http_text;
	let ok = __cy_http_ok;
}
`,
}
