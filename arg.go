package redis

import (
	"fmt"

	"github.com/spf13/cast"
)

// argBytes coerces a heterogeneous command argument to its RESP bulk-string
// wire form. Numeric arguments are decimalized to ASCII; []byte/string are
// passed through verbatim (binary-safe); everything else falls through
// spf13/cast's permissive coercion so callers can pass, say, a json.Number
// or a fmt.Stringer score without pre-formatting it themselves.
func argBytes(a interface{}) []byte {
	switch v := a.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	case BitOp:
		return []byte(v.String())
	}

	if s, err := cast.ToStringE(a); err == nil {
		return []byte(s)
	}
	// cast fails on types it has no rule for (e.g. structs); fall back to
	// a best-effort textual form rather than silently dropping the arg.
	return []byte(fmt.Sprintf("%v", a))
}
