// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file loads the demo fixture dataset.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chatroom/internal/auth"
	"chatroom/internal/domain"
)

// Fixture dataset: three accounts, two rooms, memberships, an opening
// conversation and one attachment per author.
var (
	seedUsers = []struct {
		Username, Password, Email string
	}{
		{"Alice", "password123", "alice@example.com"},
		{"Bob", "password456", "bob@example.com"},
		{"Charlie", "password789", "charlie@example.com"},
	}

	seedRooms = []string{"General", "Music"}

	seedMemberships = []struct {
		Username, Room, Role string
	}{
		{"Alice", "General", domain.RoleAdmin},
		{"Bob", "General", domain.RoleMember},
		{"Charlie", "Music", domain.RoleMember},
		{"Alice", "Music", domain.RoleMember},
		{"Bob", "Music", domain.RoleAdmin},
	}

	seedMessages = []struct {
		Username, Room, Text string
	}{
		{"Alice", "General", "Hello everyone!"},
		{"Bob", "General", "Hi Alice!"},
		{"Charlie", "Music", "Great song!"},
	}

	seedFiles = []struct {
		Username, Room, MessageText, FileName, FilePath string
	}{
		{"Alice", "General", "Hello everyone!", "image.png", "/files/image.png"},
		{"Bob", "General", "Hi Alice!", "doc.pdf", "/files/doc.pdf"},
		{"Charlie", "Music", "Great song!", "song.mp3", "/files/song.mp3"},
	}
)

// Seed loads the fixture dataset. Seeding is best-effort: a failure in
// one table's inserts is logged and does not abort subsequent tables, so
// a partially provisioned store still ends up as complete as it can be.
// The accumulated errors are returned joined for the caller to report.
//
// Seed is idempotent: rows are matched on their natural keys and only
// created when absent, so re-running it against a seeded store is a no-op.
func Seed(ctx context.Context, db *gorm.DB) error {
	var errs []error

	users := make(map[string]uint, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := auth.HashPassword(su.Password, bcrypt.DefaultCost)
		if err != nil {
			log.Warn().Err(err).Str("username", su.Username).Msg("seed: hash fixture password")
			errs = append(errs, err)
			continue
		}
		var u domain.User
		err = db.WithContext(ctx).
			Where(domain.User{Username: su.Username}).
			Attrs(domain.User{Password: hash, Email: su.Email, CreatedAt: time.Now().UTC()}).
			FirstOrCreate(&u).Error
		if err != nil {
			log.Warn().Err(err).Str("username", su.Username).Msg("seed: insert user")
			errs = append(errs, err)
			continue
		}
		users[su.Username] = u.ID
	}

	rooms := make(map[string]uint, len(seedRooms))
	for _, name := range seedRooms {
		var r domain.ChatRoom
		err := db.WithContext(ctx).
			Where(domain.ChatRoom{Name: name}).
			Attrs(domain.ChatRoom{CreatedAt: time.Now().UTC()}).
			FirstOrCreate(&r).Error
		if err != nil {
			log.Warn().Err(err).Str("room", name).Msg("seed: insert room")
			errs = append(errs, err)
			continue
		}
		rooms[name] = r.ID
	}

	for _, sm := range seedMemberships {
		userID, uok := users[sm.Username]
		roomID, rok := rooms[sm.Room]
		if !uok || !rok {
			continue // referenced row failed above, already reported
		}
		var m domain.Membership
		err := db.WithContext(ctx).
			Where(domain.Membership{UserID: userID, RoomID: roomID}).
			Attrs(domain.Membership{Role: sm.Role, JoinedAt: time.Now().UTC()}).
			FirstOrCreate(&m).Error
		if err != nil {
			log.Warn().Err(err).Str("username", sm.Username).Str("room", sm.Room).Msg("seed: insert membership")
			errs = append(errs, err)
		}
	}

	messages := make(map[string]uint, len(seedMessages))
	for _, sm := range seedMessages {
		userID, uok := users[sm.Username]
		roomID, rok := rooms[sm.Room]
		if !uok || !rok {
			continue
		}
		var m domain.Message
		err := db.WithContext(ctx).
			Where(domain.Message{UserID: userID, RoomID: roomID, Text: sm.Text}).
			Attrs(domain.Message{CreatedAt: time.Now().UTC()}).
			FirstOrCreate(&m).Error
		if err != nil {
			log.Warn().Err(err).Str("username", sm.Username).Str("room", sm.Room).Msg("seed: insert message")
			errs = append(errs, err)
			continue
		}
		messages[sm.Text] = m.ID
	}

	for _, sf := range seedFiles {
		userID, uok := users[sf.Username]
		roomID, rok := rooms[sf.Room]
		messageID, mok := messages[sf.MessageText]
		if !uok || !rok || !mok {
			continue
		}
		var f domain.File
		err := db.WithContext(ctx).
			Where(domain.File{MessageID: messageID, FileName: sf.FileName}).
			Attrs(domain.File{
				UserID:     userID,
				RoomID:     roomID,
				FilePath:   sf.FilePath,
				UploadedAt: time.Now().UTC(),
			}).
			FirstOrCreate(&f).Error
		if err != nil {
			log.Warn().Err(err).Str("file", sf.FileName).Msg("seed: insert file")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
