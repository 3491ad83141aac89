// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message
// model and the room timeline query.
package repo

import (
	"time"

	"gorm.io/gorm"

	"chatroom/internal/domain"
)

// TimelineEntry is one row of a room timeline: the message joined with
// its author's username.
type TimelineEntry struct {
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMessage inserts a new message row stamped with the current UTC time.
func CreateMessage(db *gorm.DB, userID, roomID uint, text string) (*domain.Message, error) {
	m := &domain.Message{
		UserID:    userID,
		RoomID:    roomID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	return m, db.Create(m).Error
}

// GetMessage fetches a message by primary key, or ErrNotFound.
func GetMessage(db *gorm.DB, id uint) (*domain.Message, error) {
	var m domain.Message
	if err := db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListTimeline returns a room's messages joined with author usernames,
// ordered deterministically (created_at ASC, id ASC). The id tie-break
// keeps insertion order even when timestamps collide at the store's
// granularity.
func ListTimeline(db *gorm.DB, roomID uint) ([]TimelineEntry, error) {
	var out []TimelineEntry
	err := db.
		Table("messages").
		Select("users.username AS username, messages.text AS text, messages.created_at AS created_at").
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.room_id = ?", roomID).
		Order("messages.created_at ASC, messages.id ASC").
		Scan(&out).Error
	return out, err
}

// CountMessages uses a raw COUNT so a missing table surfaces as an error.
func CountMessages(db *gorm.DB, roomID uint) (int64, error) {
	var total int64
	err := db.Raw("SELECT COUNT(*) FROM messages WHERE room_id = ?", roomID).Scan(&total).Error
	return total, err
}
