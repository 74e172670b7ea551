package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/boardwalk/internal/auth"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/repository"
)

// gate checks that the context principal may act on a board.
type gate struct {
	memberships repository.MembershipRepo
	boards      repository.BoardRepo
}

// member returns the principal after confirming it belongs to its org.
func (g gate) member(ctx context.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok || !p.Complete() {
		return auth.Principal{}, contract.UnauthorizedError("Unauthorized")
	}
	ok, err := g.memberships.IsMember(ctx, p.OrgID, p.UserID)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("checking membership: %w", err)
	}
	if !ok {
		return auth.Principal{}, contract.UnauthorizedError("Not a member of this organization")
	}
	return p, nil
}

// board loads boardID and confirms the principal's org owns it.
func (g gate) board(ctx context.Context, boardID string) (*domain.Board, auth.Principal, error) {
	p, err := g.member(ctx)
	if err != nil {
		return nil, p, err
	}
	b, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, p, notFoundOr(err, "Board not found")
	}
	if err := ownedBy(b, p); err != nil {
		return nil, p, err
	}
	return b, p, nil
}

func ownedBy(b *domain.Board, p auth.Principal) error {
	if b.OrgID != p.OrgID {
		return contract.UnauthorizedError("Board belongs to another organization")
	}
	return nil
}

// notFoundOr maps repository not-found errors onto NOT_FOUND and leaves
// every other error as is.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %v", contract.NotFoundError(msg), err)
	}
	return err
}

// persistenceOr passes ActionErrors through and wraps anything else with
// context so it surfaces as PERSISTENCE.
func persistenceOr(err error, what string) error {
	var ae *contract.ActionError
	if errors.As(err, &ae) {
		return err
	}
	return fmt.Errorf("%s: %w", what, err)
}

// list loads listID and confirms the principal's org owns its board.
func (g gate) list(ctx context.Context, lists repository.ListRepo, listID string) (*domain.List, error) {
	if _, err := g.member(ctx); err != nil {
		return nil, err
	}
	list, err := lists.GetByID(ctx, listID)
	if err != nil {
		return nil, notFoundOr(err, "List not found")
	}
	if _, _, err := g.board(ctx, list.BoardID); err != nil {
		return nil, err
	}
	return list, nil
}
