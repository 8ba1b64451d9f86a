package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"bitevents/internal/domain"
)

type registrationService struct {
	registrationRepo domain.EventRegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	mailer           domain.Mailer
	logger           *slog.Logger
}

// NewRegistrationService creates the registration engine.
func NewRegistrationService(
	registrationRepo domain.EventRegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	mailer domain.Mailer,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		logger:           logger,
	}
}

// ticketCodeAttempts bounds the retry loop on a ticket-code collision. With
// 8 random hex characters a collision is already vanishingly unlikely.
const ticketCodeAttempts = 3

func (s *registrationService) Register(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var reg *domain.EventRegistration
	for attempt := 0; attempt < ticketCodeAttempts; attempt++ {
		reg, err = s.tryRegister(ctx, eventID, userID)
		if errors.Is(err, domain.ErrTicketCodeTaken) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	// Ticket email is best effort; a mailer outage never fails a registration.
	if err := s.mailer.SendTicketConfirmation(ctx, &domain.TicketEmailData{
		Email:      user.Email,
		FullName:   user.FullName,
		EventName:  event.Name,
		TicketCode: reg.TicketCode,
		StartTime:  event.StartTime,
	}); err != nil {
		s.logger.WarnContext(ctx, "ticket confirmation email failed",
			"event_id", eventID, "user_id", userID, "err", err)
	}
	return reg, nil
}

// tryRegister performs the duplicate check, the capacity count, and the
// insert inside one transaction. The row lock taken by
// GetEventCapacityForUpdate serializes concurrent registrations for the same
// event, so the count cannot go stale between check and insert.
func (s *registrationService) tryRegister(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	var reg *domain.EventRegistration
	err := s.registrationRepo.WithTx(ctx, func(ctx context.Context) error {
		capacity, err := s.registrationRepo.GetEventCapacityForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}

		if _, err := s.registrationRepo.GetConfirmedByEventAndUser(ctx, eventID, userID); err == nil {
			return domain.ErrAlreadyRegistered
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get registration: %w", err)
		}

		if capacity != nil {
			count, err := s.registrationRepo.CountConfirmedByEventID(ctx, eventID)
			if err != nil {
				return fmt.Errorf("count registrations: %w", err)
			}
			if count >= *capacity {
				return domain.ErrEventFull
			}
		}

		code, err := generateTicketCode()
		if err != nil {
			return fmt.Errorf("generate ticket code: %w", err)
		}
		reg = domain.NewEventRegistration(eventID, userID, code, time.Now())
		if err := s.registrationRepo.Create(ctx, reg); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) CancelByID(ctx context.Context, registrationID, callerID string) error {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if reg.UserID != callerID {
		return domain.ErrForbidden
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return domain.ErrAlreadyCancelled
	}
	if err := s.registrationRepo.UpdateStatus(ctx, reg.ID, domain.RegistrationStatusCancelled); err != nil {
		return fmt.Errorf("cancel registration: %w", err)
	}
	return nil
}

func (s *registrationService) CancelByEventAndUser(ctx context.Context, eventID, userID string) error {
	reg, err := s.registrationRepo.GetConfirmedByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if err := s.registrationRepo.UpdateStatus(ctx, reg.ID, domain.RegistrationStatusCancelled); err != nil {
		return fmt.Errorf("cancel registration: %w", err)
	}
	return nil
}

func (s *registrationService) ListByUser(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.EventRegistration{}
	}
	return regs, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.EventRegistration{}
	}
	return regs, nil
}

func (s *registrationService) CountActive(ctx context.Context, eventID string) (int, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get event: %w", err)
	}
	count, err := s.registrationRepo.CountConfirmedByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (s *registrationService) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	_, err := s.registrationRepo.GetConfirmedByEventAndUser(ctx, eventID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("get registration: %w", err)
}

const (
	ticketCodePrefix = "TKT-"
	ticketCodeLength = 8
)

var ticketCodeAlphabet = []rune("0123456789ABCDEF")

// generateTicketCode builds codes like TKT-3F0A91BC from a cryptographically
// random source, so codes do not leak registration order.
func generateTicketCode() (string, error) {
	b := make([]rune, ticketCodeLength)
	max := big.NewInt(int64(len(ticketCodeAlphabet)))
	for i := 0; i < ticketCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = ticketCodeAlphabet[n.Int64()]
	}
	return ticketCodePrefix + string(b), nil
}
