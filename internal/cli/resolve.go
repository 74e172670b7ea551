package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

// matchID resolves input against ids: an exact match wins, otherwise a
// unique prefix.
func matchID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveBoardID(ctx context.Context, a *App, input string) (string, error) {
	boards, err := fetch(ctx, a.Actions.ListBoards, contract.ListBoardsInput{})
	if err != nil {
		return "", err
	}
	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return matchID("board", input, ids)
}

func loadBoard(ctx context.Context, a *App, input string) (*domain.BoardSnapshot, error) {
	id, err := resolveBoardID(ctx, a, input)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, a.Actions.GetBoard, contract.GetBoardInput{BoardID: id})
}

// located is a list or card found somewhere on the org's boards.
type located struct {
	board *domain.BoardSnapshot
	list  int
	card  int
}

// locate searches every board for a list (cards=false) or card id prefix.
func locate(ctx context.Context, a *App, input string, cards bool) (located, error) {
	kind := "list"
	if cards {
		kind = "card"
	}
	boards, err := fetch(ctx, a.Actions.ListBoards, contract.ListBoardsInput{})
	if err != nil {
		return located{}, err
	}

	var ids []string
	where := map[string]located{}
	for _, b := range boards {
		snap, err := fetch(ctx, a.Actions.GetBoard, contract.GetBoardInput{BoardID: b.ID})
		if err != nil {
			return located{}, err
		}
		for li, l := range snap.Lists {
			if !cards {
				ids = append(ids, l.ID)
				where[l.ID] = located{board: snap, list: li, card: -1}
				continue
			}
			for ci, c := range l.Cards {
				ids = append(ids, c.ID)
				where[c.ID] = located{board: snap, list: li, card: ci}
			}
		}
	}
	id, err := matchID(kind, input, ids)
	if err != nil {
		return located{}, err
	}
	return where[id], nil
}

func (l located) List() domain.List { return l.board.Lists[l.list] }
func (l located) Card() domain.Card { return l.board.Lists[l.list].Cards[l.card] }
