package document

import (
	"io"
	"strconv"
	"strings"
)

// node is one S-expression: an atom, or a list headed by its keyword.
type node struct {
	atom string
	kids []node
}

func list(key string, kids ...node) node {
	return node{kids: append([]node{sym(key)}, kids...)}
}

func sym(s string) node { return node{atom: s} }

func str(s string) node { return node{atom: quote(s)} }

func integer(i int) node { return node{atom: strconv.Itoa(i)} }

func fixed(v float64, prec int) node {
	return node{atom: strconv.FormatFloat(v, 'f', prec, 64)}
}

var kicadEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote renders s as a KiCad string token. Only the backslash, the double
// quote and newlines are escaped; everything else is written as UTF-8.
func quote(s string) string {
	return `"` + kicadEscaper.Replace(s) + `"`
}

func (n node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n node) write(b *strings.Builder) {
	if n.kids == nil {
		b.WriteString(n.atom)
		return
	}
	b.WriteByte('(')
	for i, k := range n.kids {
		if i > 0 {
			b.WriteByte(' ')
		}
		k.write(b)
	}
	b.WriteByte(')')
}

// writeLine writes n on its own line at the given indent.
func writeLine(w io.StringWriter, indent int, n node) error {
	_, err := w.WriteString(strings.Repeat("  ", indent) + n.String() + "\n")
	return err
}
