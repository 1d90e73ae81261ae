package query

import (
	"fmt"
	"strings"
)

// Builder accumulates WHERE clauses for a Postgres query. Expressions are
// written with ? markers and rewritten to positional $n placeholders, so a
// filter can be compiled without knowing how many clauses precede it.
type Builder struct {
	clauses []string
	args    []any
	none    bool
}

// Where adds one clause. Each ? in expr consumes one arg.
func (b *Builder) Where(expr string, args ...any) {
	var sb strings.Builder
	for _, r := range expr {
		if r == '?' {
			sb.WriteString(fmt.Sprintf("$%d", len(b.args)+1))
			b.args = append(b.args, args[0])
			args = args[1:]
			continue
		}
		sb.WriteRune(r)
	}
	b.clauses = append(b.clauses, sb.String())
}

// MatchNone forces the predicate to select no rows. Used when a named
// lookup (e.g. a category name) does not resolve: the listing returns an
// empty page instead of an error.
func (b *Builder) MatchNone() {
	b.none = true
}

// SQL returns the assembled WHERE condition (without the WHERE keyword)
// and its arguments. With no clauses it returns a tautology so callers can
// always interpolate it.
func (b *Builder) SQL() (string, []any) {
	if b.none {
		return "FALSE", nil
	}
	if len(b.clauses) == 0 {
		return "TRUE", nil
	}
	return strings.Join(b.clauses, " AND "), b.args
}
