// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions accept a *gorm.DB handle, making them safe for use within
// transactions or connection-scoped operations. They follow the "thin
// repository" approach: no business logic, only CRUD persistence and
// query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported in this package as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated; use IsConstraintViolation and
//     IsUnavailable to classify it.
//
// Functions:
//
//   - CreateUser(ctx, db, username, passwordHash, email) -> *domain.User, error
//     Inserts a new User row with a UTC creation timestamp.
//
//   - GetUserByUsername(ctx, db, username) -> *domain.User, error
//     Fetches a single user by unique username, or ErrNotFound.
//
//   - GetUser(ctx, db, id) -> *domain.User, error
//     Fetches a single user by primary key, or ErrNotFound.
//
//   - UsernameTaken / EmailTaken(ctx, db, value) -> (bool, error)
//     Existence probes for the two unique identity columns.
//
//   - DeleteUser(ctx, db, username) -> error
//     Removes exactly one row; ErrNotFound if no such user.
//
//   - CountUserDependents(ctx, db, userID) -> (int64, error)
//     Counts rows in other tables still referencing the user.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.AccountService) which enforces credential policy and
// converts errors into the user-facing taxonomy.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chatroom/internal/domain"
)

// CreateUser inserts a new User row. passwordHash must already be the
// bcrypt form produced by the auth package; this layer never sees
// clear-text passwords.
func CreateUser(ctx context.Context, db *gorm.DB, username, passwordHash, email string) (*domain.User, error) {
	u := &domain.User{
		Username:  username,
		Password:  passwordHash,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername fetches a single user by username. If the record does
// not exist, it returns ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a single user by primary key, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UsernameTaken reports whether a user with the given username exists.
func UsernameTaken(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ?", username).
		Count(&n).Error
	return n > 0, err
}

// EmailTaken reports whether a user with the given email exists.
func EmailTaken(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&n).Error
	return n > 0, err
}

// DeleteUser removes the user row identified by username. If no rows are
// affected, it returns ErrNotFound. It removes only that row: dependent
// messages, memberships, files and reactions are the caller's concern.
func DeleteUser(ctx context.Context, db *gorm.DB, username string) error {
	res := db.WithContext(ctx).
		Where("username = ?", username).
		Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUserDependents returns how many rows in the messages, memberships,
// files and reactions tables still reference userID.
func CountUserDependents(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	var total int64
	for _, m := range []any{
		&domain.Message{},
		&domain.Membership{},
		&domain.File{},
		&domain.Reaction{},
	} {
		var n int64
		if err := db.WithContext(ctx).Model(m).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
