package reconcile

import "iter"

// Groups partitions watched items by canonical external ID. Keys iterate in
// order of first appearance and items keep their input order.
type Groups struct {
	keys  []string
	items map[string][]WatchedItem
}

// GroupByID groups items by ExtractID. Items without an identifier are
// returned separately and never appear in any group.
func GroupByID(items []WatchedItem, kind MediaKind) (Groups, []WatchedItem) {
	g := Groups{items: make(map[string][]WatchedItem)}
	var unidentified []WatchedItem

	for _, item := range items {
		id, ok := ExtractID(item, kind)
		if !ok {
			unidentified = append(unidentified, item)
			continue
		}
		if _, seen := g.items[id]; !seen {
			g.keys = append(g.keys, id)
		}
		g.items[id] = append(g.items[id], item)
	}

	return g, unidentified
}

// Len returns the number of groups.
func (g Groups) Len() int {
	return len(g.keys)
}

// Keys returns the group keys in order.
func (g Groups) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Items returns the items of one group.
func (g Groups) Items(id string) []WatchedItem {
	return g.items[id]
}

// All iterates groups in key order.
func (g Groups) All() iter.Seq2[string, []WatchedItem] {
	return func(yield func(string, []WatchedItem) bool) {
		for _, k := range g.keys {
			if !yield(k, g.items[k]) {
				return
			}
		}
	}
}
