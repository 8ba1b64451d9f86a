package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		authHeader string
		verifier   *fakeVerifier
		wantStatus int
		wantUserID string
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer good-token",
			verifier:   &fakeVerifier{userID: "user-123"},
			wantStatus: http.StatusOK,
			wantUserID: "user-123",
		},
		{
			name:       "missing header",
			authHeader: "",
			verifier:   &fakeVerifier{userID: "user-123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc",
			verifier:   &fakeVerifier{userID: "user-123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			verifier:   &fakeVerifier{userID: "user-123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verification fails",
			authHeader: "Bearer bad-token",
			verifier:   &fakeVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			var nextCalled bool
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			RequireAuth(tt.verifier, logger)(next)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, nextCalled, "next must not run on auth failure")
			}
		})
	}
}
