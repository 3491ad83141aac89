// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the File
// and Reaction models.
package repo

import (
	"time"

	"gorm.io/gorm"

	"chatroom/internal/domain"
)

// CreateFile records an attachment row. filePath is the opaque blob-store
// reference; the bytes live outside this system.
func CreateFile(db *gorm.DB, userID, roomID, messageID uint, fileName, filePath string) (*domain.File, error) {
	f := &domain.File{
		UserID:     userID,
		RoomID:     roomID,
		MessageID:  messageID,
		FileName:   fileName,
		FilePath:   filePath,
		UploadedAt: time.Now().UTC(),
	}
	return f, db.Create(f).Error
}

// ListFiles returns the attachments recorded for a message, oldest first.
func ListFiles(db *gorm.DB, messageID uint) ([]domain.File, error) {
	var out []domain.File
	err := db.
		Where("message_id = ?", messageID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// CreateReaction records a reaction to a message. Duplicates are allowed:
// the same user may react to the same message repeatedly.
func CreateReaction(db *gorm.DB, messageID, userID uint, reactionType string) (*domain.Reaction, error) {
	r := &domain.Reaction{
		MessageID:    messageID,
		UserID:       userID,
		ReactionType: reactionType,
		ReactedAt:    time.Now().UTC(),
	}
	return r, db.Create(r).Error
}

// ListReactions returns the reactions recorded for a message, oldest first.
func ListReactions(db *gorm.DB, messageID uint) ([]domain.Reaction, error) {
	var out []domain.Reaction
	err := db.
		Where("message_id = ?", messageID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
