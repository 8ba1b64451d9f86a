package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitevents/internal/delivery/http/helpers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

// testLogger is a no-op logger so controller tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testEventID = "a0b1c2d3-e4f5-6789-abcd-ef0123456789"
const testRegID = "b1c2d3e4-f5a6-789a-bcde-f01234567890"

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	registerErr      error
	registerResult   *domain.EventRegistration
	cancelByIDErr    error
	cancelByPairErr  error
	listByUserErr    error
	listByUserResult []*domain.EventRegistration
	isRegisteredErr  error
	isRegistered     bool

	lastRegisterEventID string
	lastRegisterUserID  string
	lastCancelRegID     string
	lastCancelCallerID  string
}

func (f *fakeRegistrationService) Register(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	f.lastRegisterEventID = eventID
	f.lastRegisterUserID = userID
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeRegistrationService) CancelByID(ctx context.Context, registrationID, callerID string) error {
	f.lastCancelRegID = registrationID
	f.lastCancelCallerID = callerID
	return f.cancelByIDErr
}

func (f *fakeRegistrationService) CancelByEventAndUser(ctx context.Context, eventID, userID string) error {
	return f.cancelByPairErr
}

func (f *fakeRegistrationService) ListByUser(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	if f.listByUserErr != nil {
		return nil, f.listByUserErr
	}
	return f.listByUserResult, nil
}

func (f *fakeRegistrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	return nil, nil
}

func (f *fakeRegistrationService) CountActive(ctx context.Context, eventID string) (int, error) {
	return 0, nil
}

func (f *fakeRegistrationService) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	if f.isRegisteredErr != nil {
		return false, f.isRegisteredErr
	}
	return f.isRegistered, nil
}

func TestAttendeeController_Register(t *testing.T) {
	tests := []struct {
		name           string
		eventID        string
		fakeErr        error
		noUserContext  bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			eventID:    testEventID,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "no user in context",
			eventID:        testEventID,
			noUserContext:  true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "invalid event id",
			eventID:        "not-a-uuid",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid eventID",
		},
		{
			name:       "unknown event",
			eventID:    testEventID,
			fakeErr:    domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "already registered",
			eventID:    testEventID,
			fakeErr:    domain.ErrAlreadyRegistered,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "event full",
			eventID:    testEventID,
			fakeErr:    domain.ErrEventFull,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "service error",
			eventID:    testEventID,
			fakeErr:    errors.New("db error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRegistrationService{
				registerErr: tt.fakeErr,
				registerResult: &domain.EventRegistration{
					ID:           testRegID,
					EventID:      testEventID,
					UserID:       "user-123",
					Status:       domain.RegistrationStatusConfirmed,
					TicketCode:   "TKT-1A2B3C4D",
					RegisteredAt: time.Now(),
				},
			}
			ctrl := NewAttendeeController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.eventID+"/registrations", nil)
			req.SetPathValue("eventID", tt.eventID)
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rr := httptest.NewRecorder()

			ctrl.Register(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var reg domain.EventRegistration
				require.NoError(t, json.Unmarshal(dataBytes, &reg))
				assert.Equal(t, "TKT-1A2B3C4D", reg.TicketCode)
				assert.Equal(t, testEventID, fake.lastRegisterEventID)
				assert.Equal(t, "user-123", fake.lastRegisterUserID)
			} else {
				require.NotNil(t, envelope.Error)
				if tt.wantBodySubstr != "" {
					assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
				}
			}
		})
	}
}

func TestAttendeeController_CancelRegistration(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "not the registrant", fakeErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "already cancelled", fakeErr: domain.ErrAlreadyCancelled, wantStatus: http.StatusConflict},
		{name: "unknown registration", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRegistrationService{cancelByIDErr: tt.fakeErr}
			ctrl := NewAttendeeController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "/registrations/"+testRegID, nil)
			req.SetPathValue("registrationID", testRegID)
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			rr := httptest.NewRecorder()

			ctrl.CancelRegistration(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, testRegID, fake.lastCancelRegID)
				assert.Equal(t, "user-123", fake.lastCancelCallerID)
			}
		})
	}
}

func TestAttendeeController_ListMyRegistrations(t *testing.T) {
	t.Run("nil result renders as empty array", func(t *testing.T) {
		fake := &fakeRegistrationService{}
		ctrl := NewAttendeeController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/registrations/me", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
		rr := httptest.NewRecorder()

		ctrl.ListMyRegistrations(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})
}

func TestAttendeeController_RegistrationStatus(t *testing.T) {
	fake := &fakeRegistrationService{isRegistered: true}
	ctrl := NewAttendeeController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/registrations/me", nil)
	req.SetPathValue("eventID", testEventID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
	rr := httptest.NewRecorder()

	ctrl.RegistrationStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"registered":true`)
}
