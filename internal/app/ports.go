// Package app exposes every board operation as an action.Action so the TUI,
// the CLI and the HTTP server share one Result protocol whether the work
// happens in-process or on a remote server.
package app

import (
	"github.com/alexanderramin/boardwalk/internal/action"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/importer"
)

type Actions struct {
	ListBoards  action.Action[contract.ListBoardsInput, []*domain.Board]
	GetBoard    action.Action[contract.GetBoardInput, *domain.BoardSnapshot]
	CreateBoard action.Action[contract.CreateBoardInput, *domain.Board]
	UpdateBoard action.Action[contract.UpdateBoardInput, *domain.Board]
	DeleteBoard action.Action[contract.DeleteBoardInput, contract.Deleted]
	ImportBoard action.Action[importer.Schema, *domain.BoardSnapshot]

	CreateList action.Action[contract.CreateListInput, *domain.List]
	UpdateList action.Action[contract.UpdateListInput, *domain.List]
	DeleteList action.Action[contract.DeleteListInput, contract.Deleted]

	GetCard    action.Action[contract.GetCardInput, *domain.CardWithList]
	CreateCard action.Action[contract.CreateCardInput, *domain.Card]
	UpdateCard action.Action[contract.UpdateCardInput, *domain.Card]
	DeleteCard action.Action[contract.DeleteCardInput, contract.Deleted]

	ReorderLists action.Action[contract.ReorderListsInput, contract.ReorderConfirmation]
	ReorderCards action.Action[contract.ReorderCardsInput, contract.ReorderConfirmation]
}
