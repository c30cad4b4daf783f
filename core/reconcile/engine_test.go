package reconcile

import (
	"testing"

	"catalog-sync/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogSet(t *testing.T, rows ...[]string) *record.RecordSet {
	t.Helper()
	records := make([]record.Record, 0, len(rows))
	for i, r := range rows {
		records = append(records, record.Catalog.NewRecord(r, i+1))
	}
	rs, err := record.BuildRecordSet(record.Catalog, "test", records)
	require.NoError(t, err)
	return rs
}

// TestDiff_Identical tests that equal sets produce an empty change set.
func TestDiff_Identical(t *testing.T) {
	old := catalogSet(t,
		[]string{"Mesa", "Muebles", "Acme", "40.000", "1"},
		[]string{"Silla", "Muebles", "Acme", "15.000", "2"},
	)
	src := catalogSet(t,
		[]string{"Mesa ", "Muebles", "Acme", "40000", "1"},
		[]string{"Silla", "Muebles", " Acme", "15,000", "2"},
	)

	cs, err := Diff(old, src)
	require.NoError(t, err)
	assert.True(t, cs.IsEmpty())
	assert.Equal(t, 2, cs.Summary.Unchanged)
	assert.Equal(t, "no changes", cs.String())
}

// TestDiff_Ordering tests removed-first ordering and source order for the rest.
func TestDiff_Ordering(t *testing.T) {
	old := catalogSet(t,
		[]string{"A", "c", "b", "1", "10"},
		[]string{"B", "c", "b", "1", "2"},
		[]string{"C", "c", "b", "1", "30"},
		[]string{"D", "c", "b", "1", "4"},
	)
	src := catalogSet(t,
		[]string{"E", "c", "b", "1", "50"},
		[]string{"D", "c", "b", "2", "4"},
		[]string{"F", "c", "b", "1", "6"},
	)

	cs, err := Diff(old, src)
	require.NoError(t, err)

	var got []string
	for _, e := range cs.Entries {
		got = append(got, string(e.Type)+":"+e.Key)
	}
	assert.Equal(t, []string{
		"removed:2", "removed:10", "removed:30",
		"added:50", "modified:4", "added:6",
	}, got)

	assert.Equal(t, Summary{Added: 2, Modified: 1, Removed: 3, Total: 6}, cs.Summary)
	assert.Equal(t, "2 added, 1 modified, 3 removed", cs.String())
	assert.Len(t, cs.Filter(ChangeRemoved), 3)
}

// TestDiff_EntryContents tests before/after payloads and differing fields.
func TestDiff_EntryContents(t *testing.T) {
	old := catalogSet(t, []string{"Mesa", "Muebles", "Acme", "40.000", "1"}, []string{"Vaso", "Cocina", "X", "1", "9"})
	src := catalogSet(t, []string{"Mesa grande", "Muebles", "Acme", "41.000", "1"}, []string{"Taza", "Cocina", "X", "1", "3"})

	cs, err := Diff(old, src)
	require.NoError(t, err)
	require.Len(t, cs.Entries, 3)

	removed := cs.Entries[0]
	assert.Equal(t, ChangeRemoved, removed.Type)
	assert.NotNil(t, removed.Before)
	assert.Nil(t, removed.After)

	modified := cs.Entries[1]
	assert.Equal(t, ChangeModified, modified.Type)
	assert.Equal(t, []string{"Nombre producto", "Valor unitario"}, modified.Fields)
	assert.Equal(t, "Mesa", modified.Before.Value(0))
	assert.Equal(t, "Mesa grande", modified.After.Value(0))

	added := cs.Entries[2]
	assert.Equal(t, ChangeAdded, added.Type)
	assert.Nil(t, added.Before)
	assert.Equal(t, "3", added.After.Key)
}

// TestDiff_EmptySides tests diffs against empty sets.
func TestDiff_EmptySides(t *testing.T) {
	full := catalogSet(t, []string{"Mesa", "Muebles", "Acme", "1", "1"})
	empty := record.NewRecordSet(record.Catalog)

	cs, err := Diff(empty, full)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.Summary.Added)

	cs, err = Diff(full, empty)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.Summary.Removed)
}

// TestDiff_SchemaMismatch tests that variants cannot be mixed.
func TestDiff_SchemaMismatch(t *testing.T) {
	_, err := Diff(record.NewRecordSet(record.Catalog), record.NewRecordSet(record.Inventory))
	assert.Error(t, err)
}

// TestDiff_InventoryAlphaKeys tests ordering of non-numeric removed keys.
func TestDiff_InventoryAlphaKeys(t *testing.T) {
	var records []record.Record
	for _, code := range []string{"B-2", "12", "A-1", "3"} {
		records = append(records, record.Inventory.NewRecord([]string{code, "n", "c", "b", "1", "1"}, 0))
	}
	old, err := record.BuildRecordSet(record.Inventory, "doc", records)
	require.NoError(t, err)

	cs, err := Diff(old, record.NewRecordSet(record.Inventory))
	require.NoError(t, err)

	var keys []string
	for _, e := range cs.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"3", "12", "A-1", "B-2"}, keys)
}
