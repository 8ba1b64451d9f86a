package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrUserHasContent is returned when deleting an account that still owns
	// venues or events. Owned content must be deleted first.
	ErrUserHasContent = errors.New("user still owns venues or events")
)

// User represents a registered account.
// swagger:model User
type User struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	PasswordSalt   string    `json:"-"`
	IsOrganizer    bool      `json:"is_organizer"`
	ProfilePicture *string   `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(fullName, email, passwordHash, passwordSalt string, isOrganizer bool, createdAt time.Time) *User {
	return &User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
		IsOrganizer:  isOrganizer,
		CreatedAt:    createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, isOrganizer bool, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, hash, salt string) error
	Delete(ctx context.Context, id string) error
}

// UserService defines the business logic for accounts and authentication.
type UserService interface {
	SignUp(ctx context.Context, fullName, email, password string, isOrganizer bool) (*User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, userID, fullName string, profilePicture *string) (*User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	// DeleteAccount removes the account. It fails with ErrUserHasContent while
	// the user still owns venues or events; cascading is never implicit.
	DeleteAccount(ctx context.Context, userID string) error
}
