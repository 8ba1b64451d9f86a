package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitevents/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	venueRepo      domain.VenueRepository
	eventRepo      domain.EventRepository
	hasher         domain.PasswordHasher
	tokens         domain.TokenIssuer
	tokenExpiry    time.Duration
	contextTimeout time.Duration
}

// NewUserService creates the account and authentication service.
func NewUserService(
	userRepo domain.UserRepository,
	venueRepo domain.VenueRepository,
	eventRepo domain.EventRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	tokenExpiry time.Duration,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		venueRepo:      venueRepo,
		eventRepo:      eventRepo,
		hasher:         hasher,
		tokens:         tokens,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
	}
}

func (s *userService) SignUp(ctx context.Context, fullName, email, password string, isOrganizer bool) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(strings.ToLower(email))
	if fullName == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(fullName, email, hash, salt, isOrganizer, time.Now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint on email is the authoritative duplicate check.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthenticated
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.PasswordSalt, password); err != nil {
		return "", nil, domain.ErrUnauthenticated
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsOrganizer, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, fullName string, profilePicture *string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, domain.ErrInvalidInput
	}
	user.FullName = fullName
	if profilePicture != nil {
		user.ProfilePicture = profilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if newPassword == "" {
		return domain.ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.PasswordSalt, oldPassword); err != nil {
		return domain.ErrForbidden
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, salt); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Owned venues and events never cascade from an account deletion; the
	// user must delete them first.
	venues, err := s.venueRepo.CountByOwnerID(ctx, userID)
	if err != nil {
		return fmt.Errorf("count venues: %w", err)
	}
	events, err := s.eventRepo.CountByOrganizerID(ctx, userID)
	if err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if venues > 0 || events > 0 {
		return domain.ErrUserHasContent
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
