package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/boardwalk/internal/domain"
)

func listTitles(lists []domain.List) []string {
	out := make([]string, len(lists))
	for i, l := range lists {
		out[i] = l.Title
	}
	return out
}

func TestConvert_AssignsIDsAndDenseOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := Convert(validSchema(), "org_1", now)

	assert.NotEmpty(t, snap.Board.ID)
	assert.Equal(t, "org_1", snap.Board.OrgID)
	assert.Equal(t, now, snap.Board.CreatedAt)
	require.Len(t, snap.Lists, 2)
	assert.Equal(t, []int{0, 1}, domain.ListOrders(snap.Lists))

	todo := snap.Lists[0]
	assert.Equal(t, snap.Board.ID, todo.BoardID)
	require.Len(t, todo.Cards, 2)
	assert.Equal(t, []int{0, 1}, domain.CardOrders(todo.Cards))
	for _, c := range todo.Cards {
		assert.Equal(t, todo.ID, c.ListID)
	}
	assert.NotNil(t, snap.Lists[1].Cards)
	assert.Empty(t, snap.Lists[1].Cards)
}

func TestConvert_ExplicitOrdersRearrange(t *testing.T) {
	s := Schema{
		Board: BoardImport{Title: "Sorted"},
		Lists: []ListImport{
			{Title: "Third", Order: intP(7)},
			{Title: "First", Order: intP(0)},
			{Title: "Second", Order: intP(3)},
		},
	}

	snap := Convert(s, "org_1", time.Now())

	assert.Equal(t, []string{"First", "Second", "Third"}, listTitles(snap.Lists))
	assert.Equal(t, []int{0, 1, 2}, domain.ListOrders(snap.Lists))
}

func TestConvert_TrimsAndDropsBlankDescriptions(t *testing.T) {
	s := validSchema()
	s.Lists[0].Title = "  Todo  "
	s.Lists[0].Cards[0].Description = strP("   ")
	s.Lists[0].Cards[1].Description = strP(" Deposit paid ")

	snap := Convert(s, "org_1", time.Now())

	assert.Equal(t, "Todo", snap.Lists[0].Title)
	assert.Nil(t, snap.Lists[0].Cards[0].Description)
	require.NotNil(t, snap.Lists[0].Cards[1].Description)
	assert.Equal(t, "Deposit paid", *snap.Lists[0].Cards[1].Description)
}

func TestParse_AcceptsJSONAndYAML(t *testing.T) {
	fromJSON, err := Parse([]byte(`{"board":{"title":"Launch"},"lists":[{"title":"Todo","cards":[{"title":"Draft copy"}]}]}`))
	require.NoError(t, err)
	fromYAML, err := Parse([]byte("board:\n  title: Launch\nlists:\n  - title: Todo\n    cards:\n      - title: Draft copy\n"))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("board:\n  title: Launch\n  color: red\n"))
	assert.ErrorContains(t, err, "field color not found")

	_, err = Parse(nil)
	assert.ErrorContains(t, err, "document is empty")
}

func TestFromSnapshot_ReimportsToSameShape(t *testing.T) {
	original := Convert(validSchema(), "org_1", time.Now())

	data, err := Marshal(FromSnapshot(original))
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)
	again := Convert(*parsed, "org_1", time.Now())

	assert.Equal(t, listTitles(original.Lists), listTitles(again.Lists))
	assert.Equal(t, original.Lists[0].Cards[1].Title, again.Lists[0].Cards[1].Title)
	assert.NotEqual(t, original.Board.ID, again.Board.ID)
}
