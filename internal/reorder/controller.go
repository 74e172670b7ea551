package reorder

import (
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

// Controller owns the client's disposable copy of a board's lists and cards.
// It is not safe for concurrent use; the board view drives it from a single
// update loop.
type Controller struct {
	boardID string
	lists   []domain.List
}

// NewController returns a controller seeded with a copy of lists.
func NewController(boardID string, lists []domain.List) *Controller {
	c := &Controller{boardID: boardID}
	c.Sync(lists)
	return c
}

// BoardID returns the board the controller is editing.
func (c *Controller) BoardID() string { return c.boardID }

// Sync replaces local state with a copy of a fresh server snapshot.
func (c *Controller) Sync(lists []domain.List) {
	c.lists = domain.CloneLists(lists)
	if c.lists == nil {
		c.lists = []domain.List{}
	}
}

// Lists returns a copy of the current local ordering.
func (c *Controller) Lists() []domain.List {
	return domain.CloneLists(c.lists)
}

// OnDragEnd applies a drop to local state and returns the persistence request
// it implies, or nil when the drop changes nothing.
func (c *Controller) OnDragEnd(drop DropResult) *Request {
	if drop.Destination == nil {
		return nil
	}
	dst := *drop.Destination
	if dst.ContainerID == drop.Source.ContainerID && dst.Index == drop.Source.Index {
		return nil
	}

	switch drop.Type {
	case DragList:
		return c.moveList(drop.Source.Index, dst.Index)
	case DragCard:
		return c.moveCard(drop.Source, dst)
	default:
		return nil
	}
}

func (c *Controller) moveList(from, to int) *Request {
	if !inRange(from, len(c.lists)) || !inRange(to, len(c.lists)) {
		return nil
	}
	next := Reinsert(c.lists, from, to)
	domain.RestampLists(next)
	c.lists = next

	return &Request{Lists: &contract.ReorderListsInput{
		BoardID: c.boardID,
		Items:   contract.ListOrderItemsFrom(c.boardID, next),
	}}
}

func (c *Controller) moveCard(src, dst Location) *Request {
	si := c.indexOfList(src.ContainerID)
	di := c.indexOfList(dst.ContainerID)
	if si < 0 || di < 0 {
		return nil
	}

	srcCards := c.lists[si].Cards
	if srcCards == nil {
		srcCards = []domain.Card{}
	}
	if !inRange(src.Index, len(srcCards)) {
		return nil
	}

	if si == di {
		if !inRange(dst.Index, len(srcCards)) {
			return nil
		}
		next := Reinsert(srcCards, src.Index, dst.Index)
		domain.RestampCards(next)
		c.lists[si].Cards = next
		return &Request{Cards: &contract.ReorderCardsInput{
			BoardID: c.boardID,
			Items:   contract.CardOrderItemsFrom(c.boardID, next),
		}}
	}

	dstCards := c.lists[di].Cards
	if dstCards == nil {
		dstCards = []domain.Card{}
	}
	if dst.Index < 0 || dst.Index > len(dstCards) {
		return nil
	}

	remaining, moved := removeAt(srcCards, src.Index)
	moved.ListID = c.lists[di].ID
	placed := insertAt(dstCards, dst.Index, moved)
	domain.RestampCards(remaining)
	domain.RestampCards(placed)
	c.lists[si].Cards = remaining
	c.lists[di].Cards = placed

	return &Request{Cards: &contract.ReorderCardsInput{
		BoardID: c.boardID,
		Items:   contract.CardOrderItemsFrom(c.boardID, remaining, placed),
	}}
}

func (c *Controller) indexOfList(id string) int {
	for i := range c.lists {
		if c.lists[i].ID == id {
			return i
		}
	}
	return -1
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
