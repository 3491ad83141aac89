// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ChatRoom
// and Membership models.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chatroom/internal/domain"
)

// CreateRoom inserts a new chat room with the given unique name.
func CreateRoom(ctx context.Context, db *gorm.DB, name string) (*domain.ChatRoom, error) {
	r := &domain.ChatRoom{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRoom fetches a room by primary key, or ErrNotFound.
func GetRoom(ctx context.Context, db *gorm.DB, id uint) (*domain.ChatRoom, error) {
	var r domain.ChatRoom
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRooms returns all rooms ordered by id ascending (insertion order).
func ListRooms(ctx context.Context, db *gorm.DB) ([]domain.ChatRoom, error) {
	var out []domain.ChatRoom
	err := db.WithContext(ctx).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// ListRoomsForUser returns the rooms a user is a member of, ordered by
// room id ascending.
func ListRoomsForUser(ctx context.Context, db *gorm.DB, userID uint) ([]domain.ChatRoom, error) {
	var out []domain.ChatRoom
	err := db.WithContext(ctx).
		Model(&domain.ChatRoom{}).
		Joins("JOIN user_chat_rooms ON user_chat_rooms.room_id = chat_rooms.id").
		Where("user_chat_rooms.user_id = ?", userID).
		Order("chat_rooms.id ASC").
		Find(&out).Error
	return out, err
}

// CreateMembership inserts a membership row joining userID to roomID
// under the given role. JoinedAt is stamped UTC.
func CreateMembership(db *gorm.DB, userID, roomID uint, role string) (*domain.Membership, error) {
	m := &domain.Membership{
		UserID:   userID,
		RoomID:   roomID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	return m, db.Create(m).Error
}

// GetMembership fetches the membership for a (user, room) pair, or
// ErrNotFound.
func GetMembership(db *gorm.DB, userID, roomID uint) (*domain.Membership, error) {
	var m domain.Membership
	err := db.
		Where("user_id = ? AND room_id = ?", userID, roomID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMembershipRole changes the role on an existing membership.
// Returns ErrNotFound if the (user, room) pair has no membership row.
func UpdateMembershipRole(db *gorm.DB, userID, roomID uint, role string) error {
	res := db.
		Model(&domain.Membership{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
