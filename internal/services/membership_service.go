// Package services – MembershipService
//
// This file implements MembershipService, which associates users with
// rooms under a role and enumerates rooms. Room enumeration is ordered by
// room id ascending so callers always see insertion order.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chatroom/internal/domain"
	"chatroom/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MembershipService manages room membership: joining, role changes, and
// room enumeration.
type MembershipService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewMembershipService constructs a MembershipService.
func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{DB: db}
}

// ListRooms returns every room, ordered by id ascending.
func (s *MembershipService) ListRooms(ctx context.Context) ([]domain.ChatRoom, error) {
	rooms, err := repo.ListRooms(ctx, s.DB)
	if err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

// Rooms returns the rooms userID belongs to, ordered by id ascending.
func (s *MembershipService) Rooms(ctx context.Context, userID uint) ([]domain.ChatRoom, error) {
	rooms, err := repo.ListRoomsForUser(ctx, s.DB, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

// Join creates a membership for userID in roomID under role. It fails
// with ErrInvalidUser or ErrInvalidRoom when a foreign key does not
// resolve, ErrInvalidRole for a role outside {admin, member}, and
// ErrAlreadyMember when the pair is already joined.
func (s *MembershipService) Join(ctx context.Context, userID, roomID uint, role string) (*domain.Membership, error) {
	tr := otel.Tracer("services/MembershipService")
	ctx, span := tr.Start(ctx, "Join",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("room.id", int(roomID)),
			attribute.String("membership.role", role),
		),
	)
	defer span.End()

	if role != domain.RoleAdmin && role != domain.RoleMember {
		return nil, ErrInvalidRole
	}

	var membership *domain.Membership
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetUser(ctx, tx, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrInvalidUser
			}
			return storeErr(err)
		}
		if _, err := repo.GetRoom(ctx, tx, roomID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrInvalidRoom
			}
			return storeErr(err)
		}
		m, err := repo.CreateMembership(tx, userID, roomID, role)
		if err != nil {
			// The composite unique index catches a concurrent join.
			if repo.IsConstraintViolation(err) {
				return ErrAlreadyMember
			}
			return storeErr(err)
		}
		membership = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// SetRole promotes or demotes an existing membership. It fails with
// ErrInvalidRole outside {admin, member} and ErrNotMember when the
// (user, room) pair has no membership row.
func (s *MembershipService) SetRole(ctx context.Context, userID, roomID uint, role string) error {
	tr := otel.Tracer("services/MembershipService")
	ctx, span := tr.Start(ctx, "SetRole",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("room.id", int(roomID)),
			attribute.String("membership.role", role),
		),
	)
	defer span.End()

	if role != domain.RoleAdmin && role != domain.RoleMember {
		return ErrInvalidRole
	}
	err := repo.UpdateMembershipRole(s.DB.WithContext(ctx), userID, roomID, role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotMember
		}
		return storeErr(err)
	}
	return nil
}
