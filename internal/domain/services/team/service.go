// Package team serves the direct referral listing and the genealogy tree.
package team

import (
	"context"

	"github.com/google/uuid"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// UserStore reads member identity and network structure.
type UserStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	ListDirectReferrals(ctx context.Context, userID uuid.UUID) ([]*entities.TeamMember, error)
	ListChildren(ctx context.Context, userID uuid.UUID) ([]*entities.UserProfile, error)
}

// Service answers team and genealogy queries.
type Service struct {
	users  UserStore
	logger *logger.Logger
}

func NewService(users UserStore, log *logger.Logger) *Service {
	return &Service{users: users, logger: log}
}

// GetDirectReferrals lists the members the user sponsored, oldest first.
func (s *Service) GetDirectReferrals(ctx context.Context, userID uuid.UUID) ([]*entities.TeamMember, error) {
	return s.users.ListDirectReferrals(ctx, userID)
}

// GetGenealogy renders the member's binary tree to a fixed depth of two
// levels below the root. Unfilled positions carry the open placeholder so
// the tree shape is always complete.
func (s *Service) GetGenealogy(ctx context.Context, userID uuid.UUID) (*entities.GenealogyNode, error) {
	root, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	node := toNode(root)
	children, err := s.users.ListChildren(ctx, userID)
	if err != nil {
		return nil, err
	}

	left, right := splitLegs(children)
	node.Children = []*entities.GenealogyNode{
		s.childNode(ctx, left),
		s.childNode(ctx, right),
	}
	return node, nil
}

// childNode renders one leg: the member with their own two slots, or an
// open placeholder with two empty open slots.
func (s *Service) childNode(ctx context.Context, profile *entities.UserProfile) *entities.GenealogyNode {
	if profile == nil {
		open := entities.OpenSlot()
		open.Children = []*entities.GenealogyNode{entities.OpenSlot(), entities.OpenSlot()}
		return open
	}

	node := toNode(profile)
	grandchildren, err := s.users.ListChildren(ctx, profile.ID)
	if err != nil {
		s.logger.Warn("genealogy leg lookup failed", "user_id", profile.ID, "error", err)
		grandchildren = nil
	}

	left, right := splitLegs(grandchildren)
	node.Children = []*entities.GenealogyNode{leafNode(left), leafNode(right)}
	return node
}

func leafNode(profile *entities.UserProfile) *entities.GenealogyNode {
	if profile == nil {
		return entities.OpenSlot()
	}
	return toNode(profile)
}

func toNode(profile *entities.UserProfile) *entities.GenealogyNode {
	status := entities.GenealogyInactive
	if profile.Status == entities.UserStatusActive {
		status = entities.GenealogyActive
	}
	return &entities.GenealogyNode{
		ID:     profile.MemberCode,
		Name:   profile.Name,
		Status: status,
	}
}

func splitLegs(children []*entities.UserProfile) (left, right *entities.UserProfile) {
	for _, child := range children {
		if child.Position == nil {
			continue
		}
		switch *child.Position {
		case entities.PositionLeft:
			if left == nil {
				left = child
			}
		case entities.PositionRight:
			if right == nil {
				right = child
			}
		}
	}
	return left, right
}
