package reorder

import (
	"cmp"
	"slices"
)

// leadingWeight pins the unnamed segment before the first header to the
// front, where its entries belong to the document root.
const leadingWeight = -1

// Order returns the indices of names in target order.
//
// Each priority entry at position p has weight 2*p. A name whose group key
// equals a priority entry takes that weight, plus one when the name is a
// nested form of the entry ("tool.widget.deps" under "tool.widget"), so it
// follows its exact match but precedes the next listed group. Unlisted names
// take 2*len(priority) + their index and keep their original relative order
// after every listed name. The empty name always sorts first.
func Order(names, priority []string) []int {
	listed := make(map[string]int, len(priority))
	for pos, name := range priority {
		if _, seen := listed[name]; !seen {
			listed[name] = 2 * pos
		}
	}
	unlisted := 2 * len(priority)

	weights := make([]int, len(names))
	for idx, name := range names {
		weights[idx] = weight(name, idx, listed, unlisted)
	}

	order := make([]int, len(names))
	for idx := range order {
		order[idx] = idx
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(weights[a], weights[b])
	})

	return order
}

func weight(name string, idx int, listed map[string]int, unlisted int) int {
	if name == "" {
		return leadingWeight
	}

	key := GroupKey(name)
	base, ok := listed[key]
	if !ok {
		return unlisted + idx
	}
	if key != name {
		return base + 1
	}
	return base
}

// OrderNames returns names rearranged into target order.
func OrderNames(names, priority []string) []string {
	order := Order(names, priority)
	out := make([]string, len(order))
	for pos, idx := range order {
		out[pos] = names[idx]
	}
	return out
}
