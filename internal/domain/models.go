// Package domain defines the persistence models for users, chat rooms,
// memberships, messages, file attachments and reactions. These types are
// mapped with GORM and form the durable schema contract of the application:
// any front end or tool interoperating with the store must use these
// table and column names.
package domain

import "time"

// Membership roles. The role column is constrained to this set.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a registered account. Usernames and email addresses are
// globally unique; the password column always holds a bcrypt hash, never
// clear text.
//
// Fields:
//   - ID: autoincrement surrogate key.
//   - Username / Email: unique, non-empty identity columns.
//   - Password: bcrypt hash (self-describing form, embeds the per-password salt).
//   - CreatedAt: timestamp managed by GORM.
type User struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Username  string    `json:"username"   gorm:"type:varchar(64);uniqueIndex;not null"`
	Password  string    `json:"-"          gorm:"type:varchar(128);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// ChatRoom is a named channel that groups messages and memberships.
// Rooms are created at provisioning time and are immutable thereafter.
type ChatRoom struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(128);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for ChatRoom.
func (ChatRoom) TableName() string { return "chat_rooms" }

// Membership records that a user belongs to a room under a role.
// A user joins a room at most once: the (user_id, room_id) pair carries a
// composite unique index. The role may later be promoted or demoted.
//
// Fields:
//   - UserID / RoomID: foreign keys, both must reference existing rows.
//   - Role: "admin" or "member" (enforced by DB constraint).
//   - JoinedAt: set when the membership is created.
type Membership struct {
	ID       uint      `json:"id"        gorm:"primaryKey"`
	UserID   uint      `json:"user_id"   gorm:"not null;uniqueIndex:ux_membership_user_room"`
	RoomID   uint      `json:"room_id"   gorm:"not null;uniqueIndex:ux_membership_user_room"`
	Role     string    `json:"role"      gorm:"type:varchar(16);not null;default:'member';check:role IN ('admin','member')"`
	JoinedAt time.Time `json:"joined_at"`

	// User and Room are the referenced rows. Deletion is restricted while
	// memberships exist; orphan cleanup is an explicit caller decision.
	User User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Room ChatRoom `json:"-" gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Membership.
func (Membership) TableName() string { return "user_chat_rooms" }

// Message is a single utterance on a room's timeline. Messages are
// immutable once created. The timeline ordering key is CreatedAt with
// ties broken by ID ascending, so the composite index carries both.
type Message struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	UserID    uint      `json:"user_id"    gorm:"not null;index"`
	RoomID    uint      `json:"room_id"    gorm:"not null;index:idx_room_timeline,priority:1"`
	Text      string    `json:"text"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_room_timeline,priority:2"`

	User User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Room ChatRoom `json:"-" gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// File records an attachment carried by a message. FilePath is an opaque
// reference resolved by an external blob store; the bytes themselves are
// out of scope. UserID and RoomID mirror the owning message's context.
type File struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	UserID     uint      `json:"user_id"     gorm:"not null;index"`
	RoomID     uint      `json:"room_id"     gorm:"not null;index"`
	MessageID  uint      `json:"message_id"  gorm:"not null;index"`
	FileName   string    `json:"file_name"   gorm:"type:varchar(255);not null"`
	FilePath   string    `json:"file_path"   gorm:"type:varchar(512);not null"`
	UploadedAt time.Time `json:"uploaded_at"`

	User    User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Room    ChatRoom `json:"-" gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Message Message  `json:"-" gorm:"foreignKey:MessageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for File.
func (File) TableName() string { return "files" }

// Reaction is an emoji-style response to a message. There is no
// uniqueness constraint: a user may react to the same message more
// than once.
type Reaction struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	MessageID    uint      `json:"message_id"    gorm:"not null;index"`
	UserID       uint      `json:"user_id"       gorm:"not null;index"`
	ReactionType string    `json:"reaction_type" gorm:"type:varchar(32);not null"`
	ReactedAt    time.Time `json:"reacted_at"`

	Message Message `json:"-" gorm:"foreignKey:MessageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User    User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Reaction.
func (Reaction) TableName() string { return "reactions" }
