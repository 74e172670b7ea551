package importer

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/boardwalk/internal/domain"
)

// Convert turns a validated schema into a new board owned by orgID with
// fresh ids. Lists and cards are sorted by their order then file position,
// and restamped 0..n-1.
func Convert(s Schema, orgID string, now time.Time) *domain.BoardSnapshot {
	board := domain.Board{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Title:     strings.TrimSpace(s.Board.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}

	lists := make([]domain.List, 0, len(s.Lists))
	for _, i := range placement(len(s.Lists), func(i int) *int { return s.Lists[i].Order }) {
		li := s.Lists[i]
		list := domain.List{
			ID:        uuid.New().String(),
			BoardID:   board.ID,
			Title:     strings.TrimSpace(li.Title),
			Cards:     make([]domain.Card, 0, len(li.Cards)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, j := range placement(len(li.Cards), func(j int) *int { return li.Cards[j].Order }) {
			ci := li.Cards[j]
			list.Cards = append(list.Cards, domain.Card{
				ID:          uuid.New().String(),
				ListID:      list.ID,
				Title:       strings.TrimSpace(ci.Title),
				Description: description(ci.Description),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		domain.RestampCards(list.Cards)
		lists = append(lists, list)
	}
	domain.RestampLists(lists)

	return &domain.BoardSnapshot{Board: board, Lists: lists}
}

// placement returns the indexes 0..n-1 sorted by explicit order. Entries
// without an order sort as if their order were their index.
func placement(n int, order func(int) *int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	key := func(i int) int {
		if o := order(i); o != nil {
			return *o
		}
		return i
	}
	sort.SliceStable(idx, func(a, b int) bool { return key(idx[a]) < key(idx[b]) })
	return idx
}

func description(d *string) *string {
	if d == nil {
		return nil
	}
	t := strings.TrimSpace(*d)
	if t == "" {
		return nil
	}
	return &t
}

// FromSnapshot renders a stored board in file form, with explicit orders.
func FromSnapshot(snap *domain.BoardSnapshot) *Schema {
	s := &Schema{Board: BoardImport{Title: snap.Board.Title}, Lists: make([]ListImport, len(snap.Lists))}
	for i, l := range snap.Lists {
		li := ListImport{Title: l.Title, Order: intPtr(l.Order)}
		for _, c := range l.Cards {
			li.Cards = append(li.Cards, CardImport{Title: c.Title, Description: c.Description, Order: intPtr(c.Order)})
		}
		s.Lists[i] = li
	}
	return s
}

func intPtr(v int) *int { return &v }
