package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/boardwalk/internal/contract"
)

// Validate checks s before conversion. Keys are dotted paths into the
// document, e.g. "lists.1.cards.0.title".
func Validate(s Schema) contract.FieldErrors {
	var fe contract.FieldErrors

	checkTitle(&fe, "board.title", s.Board.Title)

	listOrders := map[int]bool{}
	for i, l := range s.Lists {
		prefix := fmt.Sprintf("lists.%d", i)
		checkTitle(&fe, prefix+".title", l.Title)
		checkOrder(&fe, prefix+".order", l.Order, listOrders)

		cardOrders := map[int]bool{}
		for j, c := range l.Cards {
			cp := fmt.Sprintf("%s.cards.%d", prefix, j)
			checkTitle(&fe, cp+".title", c.Title)
			checkOrder(&fe, cp+".order", c.Order, cardOrders)
			if c.Description != nil {
				d := strings.TrimSpace(*c.Description)
				if d != "" && len([]rune(d)) < contract.MinDescriptionLen {
					fe.Add(cp+".description", "Description is too short")
				}
			}
		}
	}

	return fe
}

func checkTitle(fe *contract.FieldErrors, key, title string) {
	t := strings.TrimSpace(title)
	switch {
	case t == "":
		fe.Add(key, "Title is required")
	case len([]rune(t)) < contract.MinTitleLen:
		fe.Add(key, "Title is too short")
	}
}

func checkOrder(fe *contract.FieldErrors, key string, order *int, seen map[int]bool) {
	if order == nil {
		return
	}
	if *order < 0 {
		fe.Add(key, "Order must be zero or greater")
		return
	}
	if seen[*order] {
		fe.Add(key, "Duplicate order")
	}
	seen[*order] = true
}
