package hyperjade

import (
	"fmt"
	"strings"
)

// emitter accumulates generated source line by line, tracking indentation
// for the statement-level skeleton. Nested expressions are built as strings
// and land on a single line; --pretty re-formats the whole unit afterwards.
type emitter struct {
	b      strings.Builder
	indent int
}

func newEmitter() *emitter {
	return &emitter{}
}

func (e *emitter) line(format string, args ...any) {
	for i := 0; i < e.indent; i++ {
		e.b.WriteString("  ")
	}
	fmt.Fprintf(&e.b, format, args...)
	e.b.WriteByte('\n')
}

func (e *emitter) push() { e.indent++ }

func (e *emitter) pop() { e.indent-- }

func (e *emitter) String() string {
	return e.b.String()
}

// quoteJS renders s as a double-quoted JavaScript string literal. Escaping
// is done by hand rather than strconv.Quote because Go's \a escape is not
// valid JavaScript.
func quoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// jsIdent reports whether s can stand unquoted as an object key.
func jsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		alpha := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !alpha && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// jsKey renders an object key, quoting only when required.
func jsKey(s string) string {
	if jsIdent(s) {
		return s
	}
	return quoteJS(s)
}
