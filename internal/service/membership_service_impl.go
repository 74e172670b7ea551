package service

import (
	"context"
	"time"

	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/repository"
)

type membershipService struct {
	memberships repository.MembershipRepo
}

// NewMembershipService manages org membership. It performs no principal
// check and is meant for local administration.
func NewMembershipService(memberships repository.MembershipRepo) MembershipService {
	return &membershipService{memberships: memberships}
}

func (s *membershipService) AddMember(ctx context.Context, in contract.AddMemberInput) (*domain.Membership, error) {
	if fe := contract.ValidateAddMember(in); fe != nil {
		return nil, contract.ValidationError(fe)
	}
	m := &domain.Membership{OrgID: in.OrgID, UserID: in.UserID, CreatedAt: time.Now().UTC()}
	if err := s.memberships.Add(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *membershipService) ListMembers(ctx context.Context, orgID string) ([]domain.Membership, error) {
	return s.memberships.ListByOrg(ctx, orgID)
}
