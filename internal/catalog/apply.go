package catalog

import (
	"fmt"

	"github.com/tablerail/tablerail/internal/store"
)

// Cache patch functions. Each returns a new slice and leaves its input
// alone, so a failed mutation can simply not apply the patch.

// ApplyInsert appends a created row. If a row with the same id is somehow
// already cached it is replaced instead, keeping ids unique.
func ApplyInsert(rows []store.Row, created store.Row) []store.Row {
	id := created.IDString()

	out := make([]store.Row, 0, len(rows)+1)
	replaced := false

	for _, row := range rows {
		if id != "" && row.IDString() == id {
			out = append(out, created)
			replaced = true

			continue
		}

		out = append(out, row)
	}

	if !replaced {
		out = append(out, created)
	}

	return out
}

// ApplyUpdate swaps in the updated row where the id matches. An id with no
// cached row is a no-op; the next refresh reconciles.
func ApplyUpdate(rows []store.Row, id any, updated store.Row) []store.Row {
	want := fmt.Sprint(id)

	out := make([]store.Row, len(rows))
	for i, row := range rows {
		if row.IDString() == want {
			out[i] = updated
		} else {
			out[i] = row
		}
	}

	return out
}

// ApplyDelete drops the row where the id matches
func ApplyDelete(rows []store.Row, id any) []store.Row {
	want := fmt.Sprint(id)

	out := make([]store.Row, 0, len(rows))
	for _, row := range rows {
		if row.IDString() == want {
			continue
		}

		out = append(out, row)
	}

	return out
}
