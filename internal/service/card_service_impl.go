package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/boardwalk/internal/cache"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/repository"
)

type cardService struct {
	gate  gate
	lists repository.ListRepo
	cards repository.CardRepo
	uow   db.UnitOfWork
	viewEvictor
}

func NewCardService(
	boards repository.BoardRepo,
	lists repository.ListRepo,
	cards repository.CardRepo,
	memberships repository.MembershipRepo,
	uow db.UnitOfWork,
	views cache.ViewCache,
	log logrus.FieldLogger,
) CardService {
	return &cardService{
		gate:        gate{memberships: memberships, boards: boards},
		lists:       lists,
		cards:       cards,
		uow:         uow,
		viewEvictor: newViewEvictor(views, log),
	}
}

// Get returns a card of the principal's org together with its list title.
func (s *cardService) Get(ctx context.Context, cardID string) (*domain.CardWithList, error) {
	p, err := s.gate.member(ctx)
	if err != nil {
		return nil, err
	}
	card, err := s.cards.GetInOrg(ctx, cardID, p.OrgID)
	if err != nil {
		return nil, notFoundOr(err, "Card not found")
	}
	return card, nil
}

// Create appends a card at the end of its list.
func (s *cardService) Create(ctx context.Context, in contract.CreateCardInput) (*domain.Card, error) {
	list, err := s.gate.list(ctx, s.lists, in.ListID)
	if err != nil {
		return nil, err
	}
	if fe := contract.ValidateCreateCard(in); fe != nil {
		return nil, contract.ValidationError(fe)
	}

	now := time.Now().UTC()
	card := &domain.Card{
		ID:          uuid.New().String(),
		ListID:      in.ListID,
		Title:       strings.TrimSpace(in.Title),
		Description: trimmed(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		n, err := txCards.CountByList(ctx, in.ListID)
		if err != nil {
			return err
		}
		card.Order = n
		return txCards.Create(ctx, card)
	})
	if err != nil {
		return nil, persistenceOr(err, "creating card")
	}
	s.invalidate(ctx, cache.BoardKey(list.BoardID))
	return card, nil
}

func (s *cardService) Update(ctx context.Context, in contract.UpdateCardInput) (*domain.Card, error) {
	card, list, err := s.authorizedCard(ctx, in.CardID)
	if err != nil {
		return nil, err
	}
	if fe := contract.ValidateUpdateCard(in); fe != nil {
		return nil, contract.ValidationError(fe)
	}

	if in.Title != nil {
		card.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		card.Description = trimmed(in.Description)
	}
	card.UpdatedAt = time.Now().UTC()
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, notFoundOr(err, "Card not found")
	}
	s.invalidate(ctx, cache.BoardKey(list.BoardID))
	return card, nil
}

// Delete removes a card and closes the gap in its list.
func (s *cardService) Delete(ctx context.Context, cardID string) (contract.Deleted, error) {
	card, list, err := s.authorizedCard(ctx, cardID)
	if err != nil {
		return contract.Deleted{}, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		if err := txCards.Delete(ctx, card.ID); err != nil {
			return notFoundOr(err, "Card not found")
		}
		siblings, err := txCards.ListByList(ctx, card.ListID)
		if err != nil {
			return err
		}
		ids := make([]string, len(siblings))
		for i, c := range siblings {
			ids[i] = c.ID
		}
		return txCards.Place(ctx, list.BoardID, card.ListID, ids)
	})
	if err != nil {
		return contract.Deleted{}, persistenceOr(err, "deleting card")
	}
	s.invalidate(ctx, cache.BoardKey(list.BoardID))
	return contract.Deleted{ID: cardID}, nil
}

func (s *cardService) authorizedCard(ctx context.Context, cardID string) (*domain.Card, *domain.List, error) {
	if _, err := s.gate.member(ctx); err != nil {
		return nil, nil, err
	}
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Card not found")
	}
	list, err := s.gate.list(ctx, s.lists, card.ListID)
	if err != nil {
		return nil, nil, err
	}
	return card, list, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
