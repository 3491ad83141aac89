package repo

import (
	"context"
	"testing"

	"chatroom/internal/auth"
	"chatroom/internal/domain"
)

func TestSeed_LoadsFixturesOnce(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var users, rooms, memberships, messages, files int64
	db.Model(&domain.User{}).Count(&users)
	db.Model(&domain.ChatRoom{}).Count(&rooms)
	db.Model(&domain.Membership{}).Count(&memberships)
	db.Model(&domain.Message{}).Count(&messages)
	db.Model(&domain.File{}).Count(&files)
	if users != 3 || rooms != 2 || memberships != 5 || messages != 3 || files != 3 {
		t.Fatalf("unexpected fixture counts: users=%d rooms=%d memberships=%d messages=%d files=%d",
			users, rooms, memberships, messages, files)
	}

	// fixture passwords are stored hashed, and verify
	alice, err := GetUserByUsername(ctx, db, "Alice")
	if err != nil {
		t.Fatalf("alice missing after seed: %v", err)
	}
	if alice.Password == "password123" {
		t.Fatalf("fixture password stored in clear text")
	}
	if !auth.VerifyPassword(alice.Password, "password123") {
		t.Fatalf("fixture password does not verify")
	}

	// re-seeding is a no-op
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	db.Model(&domain.User{}).Count(&users)
	db.Model(&domain.Message{}).Count(&messages)
	if users != 3 || messages != 3 {
		t.Fatalf("re-seed duplicated rows: users=%d messages=%d", users, messages)
	}
}

func TestSeed_BestEffortPastTableFailure(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	// Drop a mid-sequence table so its inserts fail; the tables seeded
	// after it must still be loaded.
	if err := db.Migrator().DropTable(&domain.Membership{}); err != nil {
		t.Fatalf("drop memberships table: %v", err)
	}

	err := Seed(ctx, db)
	if err == nil {
		t.Fatalf("expected joined error reporting the failed table")
	}

	var users, rooms, messages, files int64
	db.Model(&domain.User{}).Count(&users)
	db.Model(&domain.ChatRoom{}).Count(&rooms)
	db.Model(&domain.Message{}).Count(&messages)
	db.Model(&domain.File{}).Count(&files)
	if users != 3 || rooms != 2 || messages != 3 || files != 3 {
		t.Fatalf("seeding did not continue past the failure: users=%d rooms=%d messages=%d files=%d",
			users, rooms, messages, files)
	}
}
