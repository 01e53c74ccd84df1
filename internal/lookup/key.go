package lookup

import (
	"fmt"
	"strings"
)

const keySep = ":"

var keyEscaper = strings.NewReplacer(`\`, `\\`, keySep, `\`+keySep)

// Key builds a cache key from an operation name and its arguments.
//
// Arguments are rendered with %v, so 1 and "1" give the same key. Equal
// renderings always give the same key. Separators inside the operation or
// an argument are escaped, so distinct renderings never share a key:
//
//	Key("movie", 42)        // movie:42
//	Key("search", "a:b", 1) // search:a\:b:1
func Key(op string, args ...any) string {
	var b strings.Builder
	b.WriteString(keyEscaper.Replace(op))
	for _, arg := range args {
		b.WriteString(keySep)
		b.WriteString(keyEscaper.Replace(fmt.Sprint(arg)))
	}

	return b.String()
}
