package service

import "sort"

// placement is one requested position inside a container.
type placement struct {
	id    string
	order int
}

// mergeOrder builds the final sequence of a container. Requested ids take
// their requested positions as far as the container size allows; omitted
// ids keep their relative order and fill the remaining slots.
func mergeOrder(requested []placement, omitted []string) []string {
	req := make([]placement, len(requested))
	copy(req, requested)
	sort.SliceStable(req, func(i, j int) bool { return req[i].order < req[j].order })

	n := len(req) + len(omitted)
	out := make([]string, 0, n)
	ri, oi := 0, 0
	for pos := 0; pos < n; pos++ {
		switch {
		case ri < len(req) && (req[ri].order <= pos || oi >= len(omitted)):
			out = append(out, req[ri].id)
			ri++
		default:
			out = append(out, omitted[oi])
			oi++
		}
	}
	return out
}

// without returns ids minus every member of drop, preserving order.
func without(ids []string, drop map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}
