package domain

import "fmt"

// RestampLists sets each list's Order to its index in the slice.
func RestampLists(lists []List) {
	for i := range lists {
		lists[i].Order = i
	}
}

// RestampCards sets each card's Order to its index in the slice.
func RestampCards(cards []Card) {
	for i := range cards {
		cards[i].Order = i
	}
}

// CheckDenseOrder reports an error unless orders is exactly 0, 1, ..., n-1.
func CheckDenseOrder(orders []int) error {
	for i, o := range orders {
		if o != i {
			return fmt.Errorf("order at position %d is %d, want %d", i, o, i)
		}
	}
	return nil
}

// ListOrders returns the Order field of each list, in sequence.
func ListOrders(lists []List) []int {
	out := make([]int, len(lists))
	for i, l := range lists {
		out[i] = l.Order
	}
	return out
}

// CardOrders returns the Order field of each card, in sequence.
func CardOrders(cards []Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Order
	}
	return out
}
