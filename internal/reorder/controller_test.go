package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/boardwalk/internal/domain"
)

func cards(listID string, ids ...string) []domain.Card {
	out := make([]domain.Card, len(ids))
	for i, id := range ids {
		out[i] = domain.Card{ID: id, ListID: listID, Order: i}
	}
	return out
}

func cardIDs(cs []domain.Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func listIDs(ls []domain.List) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestOnDragEnd_NilDestinationIsNoop(t *testing.T) {
	c := NewController("b1", []domain.List{{ID: "A", Cards: cards("A", "c1")}})
	before := c.Lists()

	req := c.OnDragEnd(DropResult{DraggableID: "c1", Type: DragCard, Source: Location{"A", 0}})

	assert.Nil(t, req)
	assert.Equal(t, before, c.Lists())
}

func TestOnDragEnd_SamePositionIsNoop(t *testing.T) {
	c := NewController("b1", []domain.List{{ID: "A", Cards: cards("A", "c1", "c2")}})
	req := c.OnDragEnd(DropResult{
		Type: DragCard, Source: Location{"A", 1}, Destination: &Location{"A", 1},
	})
	assert.Nil(t, req)
}

func TestOnDragEnd_ListMoveToFront(t *testing.T) {
	c := NewController("b1", []domain.List{
		{ID: "A", BoardID: "b1", Order: 0},
		{ID: "B", BoardID: "b1", Order: 1},
		{ID: "C", BoardID: "b1", Order: 2},
	})

	req := c.OnDragEnd(DropResult{
		DraggableID: "C", Type: DragList,
		Source: Location{ListsContainer, 2}, Destination: &Location{ListsContainer, 0},
	})

	require.NotNil(t, req)
	require.NotNil(t, req.Lists)
	assert.Nil(t, req.Cards)
	assert.Equal(t, []string{"C", "A", "B"}, listIDs(c.Lists()))
	assert.Equal(t, []int{0, 1, 2}, domain.ListOrders(c.Lists()))

	assert.Equal(t, "b1", req.Lists.BoardID)
	require.Len(t, req.Lists.Items, 3)
	for i, it := range req.Lists.Items {
		assert.Equal(t, i, *it.Order)
		assert.Equal(t, "b1", it.BoardID)
	}
	assert.Equal(t, "C", req.Lists.Items[0].ID)
}

func TestOnDragEnd_SameListCardMove(t *testing.T) {
	c := NewController("b1", []domain.List{{ID: "A", Cards: cards("A", "c1", "c2", "c3")}})

	req := c.OnDragEnd(DropResult{
		DraggableID: "c1", Type: DragCard,
		Source: Location{"A", 0}, Destination: &Location{"A", 2},
	})

	require.NotNil(t, req)
	require.NotNil(t, req.Cards)
	got := c.Lists()[0].Cards
	assert.Equal(t, []string{"c2", "c3", "c1"}, cardIDs(got))
	assert.Equal(t, []int{0, 1, 2}, domain.CardOrders(got))
	assert.Len(t, req.Cards.Items, 3)
}

func TestOnDragEnd_CrossListIntoEmptyList(t *testing.T) {
	c := NewController("b1", []domain.List{
		{ID: "A", Cards: cards("A", "c1", "c2")},
		{ID: "B"},
	})

	req := c.OnDragEnd(DropResult{
		DraggableID: "c1", Type: DragCard,
		Source: Location{"A", 0}, Destination: &Location{"B", 0},
	})

	require.NotNil(t, req)
	lists := c.Lists()
	assert.Equal(t, []string{"c2"}, cardIDs(lists[0].Cards))
	assert.Equal(t, []int{0}, domain.CardOrders(lists[0].Cards))
	require.Len(t, lists[1].Cards, 1)
	assert.Equal(t, "c1", lists[1].Cards[0].ID)
	assert.Equal(t, "B", lists[1].Cards[0].ListID)
	assert.Equal(t, 0, lists[1].Cards[0].Order)

	// Both affected lists are carried in one request.
	require.Len(t, req.Cards.Items, 2)
	byID := map[string]string{}
	for _, it := range req.Cards.Items {
		byID[it.ID] = it.ListID
		assert.Equal(t, "b1", it.BoardID)
	}
	assert.Equal(t, map[string]string{"c2": "A", "c1": "B"}, byID)
}

func TestOnDragEnd_CrossListAppend(t *testing.T) {
	c := NewController("b1", []domain.List{
		{ID: "A", Cards: cards("A", "c1")},
		{ID: "B", Cards: cards("B", "c2", "c3")},
	})

	req := c.OnDragEnd(DropResult{
		Type: DragCard, Source: Location{"A", 0}, Destination: &Location{"B", 2},
	})

	require.NotNil(t, req)
	lists := c.Lists()
	assert.Empty(t, lists[0].Cards)
	assert.Equal(t, []string{"c2", "c3", "c1"}, cardIDs(lists[1].Cards))
	assert.Equal(t, []int{0, 1, 2}, domain.CardOrders(lists[1].Cards))
}

func TestOnDragEnd_UnknownListIsNoop(t *testing.T) {
	c := NewController("b1", []domain.List{{ID: "A", Cards: cards("A", "c1")}})
	before := c.Lists()

	req := c.OnDragEnd(DropResult{
		Type: DragCard, Source: Location{"A", 0}, Destination: &Location{"Z", 0},
	})

	assert.Nil(t, req)
	assert.Equal(t, before, c.Lists())
}

func TestOnDragEnd_OutOfRangeIsNoop(t *testing.T) {
	c := NewController("b1", []domain.List{
		{ID: "A", Cards: cards("A", "c1")},
		{ID: "B"},
	})
	before := c.Lists()

	tests := []DropResult{
		{Type: DragCard, Source: Location{"A", 5}, Destination: &Location{"B", 0}},
		{Type: DragCard, Source: Location{"A", 0}, Destination: &Location{"B", 3}},
		{Type: DragCard, Source: Location{"B", 0}, Destination: &Location{"A", 0}},
		{Type: DragList, Source: Location{ListsContainer, 0}, Destination: &Location{ListsContainer, 9}},
		{Type: DragList, Source: Location{ListsContainer, -1}, Destination: &Location{ListsContainer, 0}},
	}
	for _, drop := range tests {
		assert.Nil(t, c.OnDragEnd(drop))
	}
	assert.Equal(t, before, c.Lists())
}

func TestOnDragEnd_NilCardsTreatedAsEmpty(t *testing.T) {
	c := NewController("b1", []domain.List{
		{ID: "A", Cards: nil},
		{ID: "B", Cards: cards("B", "c1")},
	})

	req := c.OnDragEnd(DropResult{
		Type: DragCard, Source: Location{"B", 0}, Destination: &Location{"A", 0},
	})

	require.NotNil(t, req)
	lists := c.Lists()
	assert.Equal(t, []string{"c1"}, cardIDs(lists[0].Cards))
	assert.NotNil(t, lists[1].Cards)
	assert.Empty(t, lists[1].Cards)
}

func TestSync_OverwritesAndCopies(t *testing.T) {
	c := NewController("b1", []domain.List{{ID: "A"}})

	snapshot := []domain.List{{ID: "X", Cards: cards("X", "c9")}}
	c.Sync(snapshot)
	snapshot[0].Cards[0].ID = "mutated"

	lists := c.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "X", lists[0].ID)
	assert.Equal(t, "c9", lists[0].Cards[0].ID)
}

func TestOnDragEnd_SequenceKeepsDensity(t *testing.T) {
	c := NewController("b1", []domain.List{
		{ID: "A", Cards: cards("A", "a1", "a2", "a3")},
		{ID: "B", Cards: cards("B", "b1")},
		{ID: "C"},
	})

	drops := []DropResult{
		{Type: DragCard, Source: Location{"A", 2}, Destination: &Location{"C", 0}},
		{Type: DragCard, Source: Location{"B", 0}, Destination: &Location{"A", 1}},
		{Type: DragList, Source: Location{ListsContainer, 2}, Destination: &Location{ListsContainer, 0}},
		{Type: DragCard, Source: Location{"A", 0}, Destination: &Location{"A", 2}},
	}
	for _, d := range drops {
		require.NotNil(t, c.OnDragEnd(d))
	}

	lists := c.Lists()
	require.NoError(t, domain.CheckDenseOrder(domain.ListOrders(lists)))
	total := 0
	for _, l := range lists {
		require.NoError(t, domain.CheckDenseOrder(domain.CardOrders(l.Cards)))
		for _, card := range l.Cards {
			assert.Equal(t, l.ID, card.ListID)
		}
		total += len(l.Cards)
	}
	assert.Equal(t, 4, total)
}
