// Package services – AccountService
//
// This file implements AccountService, the application-level component
// that owns the account lifecycle: registration, authentication and
// deletion. It validates inputs, delegates credential hashing to the
// auth package, and converts raw storage errors into the service-level
// taxonomy.
//
// Observability: all public methods are OpenTelemetry-instrumented;
// spans carry the username being operated on.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"chatroom/internal/auth"
	"chatroom/internal/domain"
	"chatroom/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AccountService provides registration, authentication and deletion of
// user accounts. Passwords are stored as bcrypt hashes only; verification
// uses bcrypt's constant-time compare, never string equality.
type AccountService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// BcryptCost selects the hashing cost; zero means bcrypt's default.
	BcryptCost int
}

// NewAccountService constructs an AccountService with default hashing cost.
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// Register hashes the password and inserts a new user row. Uniqueness
// failures are reported distinctly as ErrDuplicateUsername or
// ErrDuplicateEmail; no row is created in either case.
func (s *AccountService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return nil, ErrInvalidInput
	}

	hash, err := auth.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := repo.UsernameTaken(ctx, tx, username); err != nil {
			return storeErr(err)
		} else if taken {
			return ErrDuplicateUsername
		}
		if taken, err := repo.EmailTaken(ctx, tx, email); err != nil {
			return storeErr(err)
		} else if taken {
			return ErrDuplicateEmail
		}
		u, err := repo.CreateUser(ctx, tx, username, hash, email)
		if err != nil {
			// The unique indexes are the last line of defense against a
			// concurrent registration racing past the probes above.
			if repo.IsConstraintViolation(err) {
				return dupErr(err)
			}
			return storeErr(err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up the user by username and verifies the password
// against the stored hash. It fails with ErrUnknownUser when no such
// account exists and ErrInvalidCredentials on a mismatch; it never
// returns a user on failure.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "Authenticate",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, storeErr(err)
	}
	if !auth.VerifyPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the account for username, or ErrUnknownUser.
func (s *AccountService) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, storeErr(err)
	}
	return u, nil
}

// Delete removes the account identified by username. It refuses with
// ErrUserHasData while the user still owns messages, memberships, files
// or reactions; dependents must be removed first so no orphans are left
// behind. Unrelated rows are never touched.
func (s *AccountService) Delete(ctx context.Context, username string) error {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserByUsername(ctx, tx, username)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUnknownUser
			}
			return storeErr(err)
		}
		n, err := repo.CountUserDependents(ctx, tx, u.ID)
		if err != nil {
			return storeErr(err)
		}
		if n > 0 {
			return ErrUserHasData
		}
		if err := repo.DeleteUser(ctx, tx, username); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// dupErr maps a uniqueness violation from the users table onto the
// matching sentinel by inspecting which column the driver names.
func dupErr(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "username"):
		return ErrDuplicateUsername
	default:
		return err
	}
}

// storeErr wraps connectivity-class failures in ErrStoreUnavailable and
// passes every other storage error through unchanged.
func storeErr(err error) error {
	if repo.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
