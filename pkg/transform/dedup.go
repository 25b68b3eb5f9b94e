// pkg/transform/dedup.go
package transform

import (
	"sort"
	"strings"

	"github.com/fleximart/retail-ingress/pkg/model"
)

// dedupBy collapses duplicate rows under the key produced by keyOf,
// keeping the first occurrence and preserving input order. Running it a
// second time over its own output removes nothing.
func dedupBy(rows []model.RawRow, keyOf func(model.RawRow) string) []model.RawRow {
	seen := make(map[string]struct{}, len(rows))
	out := make([]model.RawRow, 0, len(rows))
	for _, r := range rows {
		key := keyOf(r)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// fieldKey builds a dedup key from the named columns. Null cells encode
// distinctly from empty strings so that a missing field never collides
// with a present-but-empty one.
func fieldKey(r model.RawRow, cols ...string) string {
	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		v := r.Get(col)
		if v.IsNull() {
			b.WriteByte('\x00')
			continue
		}
		b.WriteString(v.Text())
	}
	return b.String()
}

// fullRowKey builds a dedup key from every column of the row, in stable
// column-name order.
func fullRowKey(r model.RawRow) string {
	cols := make([]string, 0, len(r))
	for col := range r {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(col)
		b.WriteByte('=')
		v := r[col]
		if v.IsNull() {
			b.WriteByte('\x00')
			continue
		}
		b.WriteString(v.Text())
	}
	return b.String()
}
