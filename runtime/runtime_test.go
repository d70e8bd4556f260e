package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceDeclaresCoreValueConstructors(t *testing.T) {
	for _, sym := range []string{
		"nyx_null(", "nyx_int(", "nyx_bool(", "nyx_string(",
		"nyx_array_new(", "nyx_object_new_kind(", "nyx_dispatch_user(",
		"nyx_call_builtin(", "nyx_construct(", "nyx_throw(",
	} {
		assert.True(t, strings.Contains(Source, sym), "runtime source missing %s", sym)
	}
}

func TestBuiltinNamesCoverCallBuiltinSwitch(t *testing.T) {
	for name := range BuiltinNames {
		assert.True(t, strings.Contains(Source, `"`+name+`"`), "nyx_call_builtin missing case for %s", name)
	}
}
