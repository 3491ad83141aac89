// Package services – MessageService
//
// This file implements MessageService, the application-level component
// that owns a room's timeline: posting messages, reading them back joined
// with author identity, recording attachments and reactions. It validates
// inputs, resolves foreign keys up front so callers get taxonomy errors
// instead of driver noise, and runs every multi-statement write in one
// transaction.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include user/room/message identifiers.
package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chatroom/internal/domain"
	"chatroom/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MessageService coordinates message persistence and timeline retrieval.
type MessageService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// AttachmentPrefix is the opaque blob-store namespace used when
	// generating file_path references. Empty selects "/files".
	AttachmentPrefix string
}

// NewMessageService constructs a MessageService.
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db, AttachmentPrefix: "/files"}
}

// Post appends a message to a room's timeline, stamped with the current
// time. It fails with ErrInvalidInput on empty text and ErrInvalidUser /
// ErrInvalidRoom when a foreign key does not resolve; no row is created
// in any failure case.
func (s *MessageService) Post(ctx context.Context, userID, roomID uint, text string) (*domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Post",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("room.id", int(roomID)),
		),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	var msg *domain.Message
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
		m, err := repo.CreateMessage(tx, userID, roomID, text)
		if err != nil {
			return storeErr(err)
		}
		msg = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// Timeline returns the room's messages joined with author usernames in
// chronological order (creation time ascending, insertion order on ties).
// It fails with ErrInvalidRoom when the room does not exist.
func (s *MessageService) Timeline(ctx context.Context, roomID uint) ([]repo.TimelineEntry, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Timeline",
		trace.WithAttributes(attribute.Int("room.id", int(roomID))),
	)
	defer span.End()

	if _, err := repo.GetRoom(ctx, s.DB, roomID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidRoom
		}
		return nil, storeErr(err)
	}
	entries, err := repo.ListTimeline(s.DB.WithContext(ctx), roomID)
	if err != nil {
		return nil, storeErr(err)
	}
	return entries, nil
}

// Attach records a file attachment on a message the user authored. The
// stored file_path is an opaque blob-store reference generated here; the
// bytes themselves never pass through this layer. Fails with
// ErrMessageNotFound for a missing message and ErrForbiddenAttachment
// when userID is not the message author.
func (s *MessageService) Attach(ctx context.Context, userID, messageID uint, fileName string) (*domain.File, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Attach",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("message.id", int(messageID)),
		),
	)
	defer span.End()

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, ErrInvalidInput
	}

	var file *domain.File
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.GetMessage(tx, messageID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMessageNotFound
			}
			return storeErr(err)
		}
		if m.UserID != userID {
			return ErrForbiddenAttachment
		}
		f, err := repo.CreateFile(tx, m.UserID, m.RoomID, m.ID, fileName, s.blobRef(fileName))
		if err != nil {
			return storeErr(err)
		}
		file = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Files lists the attachments recorded for a message, oldest first.
func (s *MessageService) Files(ctx context.Context, messageID uint) ([]domain.File, error) {
	files, err := repo.ListFiles(s.DB.WithContext(ctx), messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	return files, nil
}

// React records a reaction to a message. Repeat reactions from the same
// user are allowed. Fails with ErrInvalidInput on an empty reaction type,
// ErrMessageNotFound for a missing message and ErrInvalidUser for a
// missing user.
func (s *MessageService) React(ctx context.Context, userID, messageID uint, reactionType string) (*domain.Reaction, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "React",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("message.id", int(messageID)),
			attribute.String("reaction.type", reactionType),
		),
	)
	defer span.End()

	reactionType = strings.TrimSpace(reactionType)
	if reactionType == "" {
		return nil, ErrInvalidInput
	}

	var reaction *domain.Reaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetMessage(tx, messageID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMessageNotFound
			}
			return storeErr(err)
		}
		if _, err := repo.GetUser(ctx, tx, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrInvalidUser
			}
			return storeErr(err)
		}
		r, err := repo.CreateReaction(tx, messageID, userID, reactionType)
		if err != nil {
			return storeErr(err)
		}
		reaction = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reaction, nil
}

// Reactions lists the reactions recorded for a message, oldest first.
func (s *MessageService) Reactions(ctx context.Context, messageID uint) ([]domain.Reaction, error) {
	reactions, err := repo.ListReactions(s.DB.WithContext(ctx), messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	return reactions, nil
}

// blobRef builds the opaque storage reference for an attachment. The
// random component keeps distinct uploads of the same file name from
// colliding in the blob store.
func (s *MessageService) blobRef(fileName string) string {
	prefix := s.AttachmentPrefix
	if prefix == "" {
		prefix = "/files"
	}
	return prefix + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}
