package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablerail/tablerail/internal/store"
)

func TestApplyInsert(t *testing.T) {
	rows := []store.Row{{"id": 1, "name": "Alice"}}

	out := ApplyInsert(rows, store.Row{"id": 2, "name": "Bob"})

	require.Len(t, out, 2)
	assert.Equal(t, "Bob", out[1]["name"])
	assert.Len(t, rows, 1)
}

func TestApplyInsertReplacesDuplicateID(t *testing.T) {
	rows := []store.Row{
		{"id": 1, "name": "Alice"},
		{"id": 2, "name": "Bob"},
	}

	out := ApplyInsert(rows, store.Row{"id": "1", "name": "Alicia"})

	require.Len(t, out, 2)
	assert.Equal(t, "Alicia", out[0]["name"])
	assert.Equal(t, "Bob", out[1]["name"])
}

func TestApplyUpdate(t *testing.T) {
	rows := []store.Row{
		{"id": 1, "name": "Alice"},
		{"id": 2, "name": "Bob"},
	}

	out := ApplyUpdate(rows, "2", store.Row{"id": 2, "name": "Robert"})

	require.Len(t, out, 2)
	assert.Equal(t, "Alice", out[0]["name"])
	assert.Equal(t, "Robert", out[1]["name"])
	assert.Equal(t, "Bob", rows[1]["name"])
}

func TestApplyUpdateUnknownIDIsNoop(t *testing.T) {
	rows := []store.Row{{"id": 1, "name": "Alice"}}

	out := ApplyUpdate(rows, 999, store.Row{"id": 999, "name": "Ghost"})

	require.Len(t, out, 1)
	assert.Equal(t, "Alice", out[0]["name"])
}

func TestApplyDelete(t *testing.T) {
	rows := []store.Row{
		{"id": 1, "name": "Alice"},
		{"id": 2, "name": "Bob"},
	}

	out := ApplyDelete(rows, 1)

	require.Len(t, out, 1)
	assert.Equal(t, "Bob", out[0]["name"])
	assert.Len(t, rows, 2)
}

func TestApplyDeleteUnknownIDIsNoop(t *testing.T) {
	rows := []store.Row{{"id": 1}}

	out := ApplyDelete(rows, "999")
	assert.Len(t, out, 1)
}
