package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"bitevents/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Alice Example", "alice@example.com", "hash", "salt", true, nil, sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
			},
		},
		{
			name: "duplicate email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			user := &domain.User{
				FullName:     "Alice Example",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				PasswordSalt: "salt",
				IsOrganizer:  true,
				CreatedAt:    time.Now(),
			}
			err = repo.Create(ctx, user)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "user-1", user.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		created := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "password_salt", "is_organizer", "profile_picture", "created_at"}).
			AddRow("user-1", "Alice Example", "alice@example.com", "hash", "salt", false, nil, created)
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", user.ID)
		require.Nil(t, user.ProfilePicture)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
