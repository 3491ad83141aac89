package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTableNames_AreTheDurableSchemaContract(t *testing.T) {
	cases := map[string]interface{ TableName() string }{
		"users":           User{},
		"chat_rooms":      ChatRoom{},
		"user_chat_rooms": Membership{},
		"messages":        Message{},
		"files":           File{},
		"reactions":       Reaction{},
	}
	for want, model := range cases {
		if got := model.TableName(); got != want {
			t.Fatalf("TableName mismatch: want %q got %q", want, got)
		}
	}
}

func TestUser_PasswordNeverMarshalled(t *testing.T) {
	u := User{
		ID:        1,
		Username:  "Alice",
		Password:  "$2a$10$secret",
		Email:     "alice@example.com",
		CreatedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "secret") {
		t.Fatalf("password hash leaked into JSON: %s", b)
	}
	if !strings.Contains(string(b), `"username":"Alice"`) {
		t.Fatalf("expected username in JSON: %s", b)
	}
}

func TestRoleConstants(t *testing.T) {
	if RoleAdmin != "admin" || RoleMember != "member" {
		t.Fatalf("role constants drifted: %q %q", RoleAdmin, RoleMember)
	}
}
