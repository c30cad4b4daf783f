package reconcile

import (
	"fmt"
	"sort"

	"catalog-sync/core/record"
)

// Diff compares the page's records with the source's.
//
// Removed keys are reported first, ordered by record.CompareKeys. Added and
// modified keys follow in the source's insertion order. Both sets must use
// the same schema; duplicate keys are rejected when the sets are built.
func Diff(oldSet, newSet *record.RecordSet) (*ChangeSet, error) {
	if oldSet.Schema().Name != newSet.Schema().Name {
		return nil, fmt.Errorf("cannot diff %s records against %s records", oldSet.Schema().Name, newSet.Schema().Name)
	}
	schema := newSet.Schema()
	cs := &ChangeSet{}

	// Removed
	var removed []string
	for _, key := range oldSet.Keys() {
		if !newSet.Has(key) {
			removed = append(removed, key)
		}
	}
	sort.SliceStable(removed, func(i, j int) bool {
		return record.CompareKeys(removed[i], removed[j]) < 0
	})
	for _, key := range removed {
		before, _ := oldSet.Get(key)
		cs.Entries = append(cs.Entries, ChangeEntry{
			Type:   ChangeRemoved,
			Key:    key,
			Before: &before,
		})
		cs.Summary.Removed++
	}

	// Added and modified, in source order
	for _, key := range newSet.Keys() {
		after, _ := newSet.Get(key)
		before, exists := oldSet.Get(key)
		if !exists {
			cs.Entries = append(cs.Entries, ChangeEntry{
				Type:  ChangeAdded,
				Key:   key,
				After: &after,
			})
			cs.Summary.Added++
			continue
		}

		fields := schema.Diff(before, after)
		if len(fields) == 0 {
			cs.Summary.Unchanged++
			continue
		}
		cs.Entries = append(cs.Entries, ChangeEntry{
			Type:   ChangeModified,
			Key:    key,
			Before: &before,
			After:  &after,
			Fields: fields,
		})
		cs.Summary.Modified++
	}

	cs.Summary.Total = cs.Summary.Added + cs.Summary.Modified + cs.Summary.Removed
	return cs, nil
}
