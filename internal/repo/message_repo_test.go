package repo

import (
	"context"
	"testing"
	"time"

	"chatroom/internal/domain"
)

func TestListTimeline_JoinsAuthorAndOrdersDeterministically(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	alice, err := CreateUser(ctx, db, "Alice", "h", "alice@example.com")
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	bob, err := CreateUser(ctx, db, "Bob", "h", "bob@example.com")
	if err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	general, err := CreateRoom(ctx, db, "General")
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	music, err := CreateRoom(ctx, db, "Music")
	if err != nil {
		t.Fatalf("seed other room: %v", err)
	}

	// Equal timestamps on the first two rows: the id tie-break must keep
	// insertion order. The third row is later. A fourth row lands in
	// another room and must not leak into the timeline.
	t0 := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)
	rows := []domain.Message{
		{UserID: alice.ID, RoomID: general.ID, Text: "Hello everyone!", CreatedAt: t0},
		{UserID: bob.ID, RoomID: general.ID, Text: "Hi Alice!", CreatedAt: t0},
		{UserID: alice.ID, RoomID: general.ID, Text: "How is it going?", CreatedAt: t1},
		{UserID: bob.ID, RoomID: music.ID, Text: "Great song!", CreatedAt: t0},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed message %d: %v", i, err)
		}
	}

	entries, err := ListTimeline(db, general.ID)
	if err != nil {
		t.Fatalf("ListTimeline: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	wantUsers := []string{"Alice", "Bob", "Alice"}
	wantTexts := []string{"Hello everyone!", "Hi Alice!", "How is it going?"}
	for i := range entries {
		if entries[i].Username != wantUsers[i] || entries[i].Text != wantTexts[i] {
			t.Fatalf("entry %d mismatch: %+v", i, entries[i])
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.Before(entries[i-1].CreatedAt) {
			t.Fatalf("timeline not in non-decreasing time order: %+v", entries)
		}
	}
}

func TestListTimeline_EmptyRoom(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	room, err := CreateRoom(ctx, db, "Quiet")
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	entries, err := ListTimeline(db, room.ID)
	if err != nil {
		t.Fatalf("ListTimeline: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty timeline, got %+v", entries)
	}
}

func TestCreateMessage_StampsUTC(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "Alice", "h", "alice@example.com")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r, err := CreateRoom(ctx, db, "General")
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}

	m, err := CreateMessage(db, u.ID, r.ID, "hello")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if m.ID == 0 || m.Text != "hello" {
		t.Fatalf("unexpected message: %+v", m)
	}
	if m.CreatedAt.IsZero() || time.Since(m.CreatedAt) > time.Minute {
		t.Fatalf("CreatedAt not set reasonably: %v", m.CreatedAt)
	}

	got, err := GetMessage(db, m.ID)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got.ID != m.ID {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, m)
	}
}

func TestCountMessages_Error_NoTable(t *testing.T) {
	// Open without Migrate so the messages table is absent.
	db := newBareDB(t)
	if _, err := CountMessages(db, 1); err == nil {
		t.Fatalf("expected error due to missing messages table")
	}
}

func TestCountMessages_PerRoom(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, _ := CreateUser(ctx, db, "Alice", "h", "alice@example.com")
	r1, _ := CreateRoom(ctx, db, "General")
	r2, _ := CreateRoom(ctx, db, "Music")
	if _, err := CreateMessage(db, u.ID, r1.ID, "one"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateMessage(db, u.ID, r1.ID, "two"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := CountMessages(db, r1.ID)
	if err != nil {
		t.Fatalf("CountMessages: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 messages in r1, got %d", n)
	}
	n, err = CountMessages(db, r2.ID)
	if err != nil {
		t.Fatalf("CountMessages: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 messages in r2, got %d", n)
	}
}
