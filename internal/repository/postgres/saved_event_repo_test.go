package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"bitevents/internal/domain"
)

func TestSavedEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	savedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO saved_events`).
			WithArgs("user-1", "event-1", savedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("saved-1"))

		repo := NewSavedEventRepository(db)
		saved := &domain.SavedEvent{UserID: "user-1", EventID: "event-1", SavedAt: savedAt}
		require.NoError(t, repo.Create(ctx, saved))
		require.Equal(t, "saved-1", saved.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair returns ErrAlreadySaved", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO saved_events`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "saved_events_user_event_key"})

		repo := NewSavedEventRepository(db)
		saved := &domain.SavedEvent{UserID: "user-1", EventID: "event-1", SavedAt: savedAt}
		err = repo.Create(ctx, saved)
		require.ErrorIs(t, err, domain.ErrAlreadySaved)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSavedEventRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Deleting an absent bookmark succeeds.
	mock.ExpectExec(`DELETE FROM saved_events`).
		WithArgs("user-1", "event-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSavedEventRepository(db)
	require.NoError(t, repo.Delete(ctx, "user-1", "event-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedEventRepository_Exists(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("user-1", "event-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewSavedEventRepository(db)
	got, err := repo.Exists(ctx, "user-1", "event-1")
	require.NoError(t, err)
	require.True(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedEventRepository_ListEventsByUserID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(eventRowColumns).
		AddRow("event-2", "org-1", "venue-1", "Saved Later", "", "meetup",
			created, start, nil, nil, 0.0, nil, domain.EventStatusUpcoming).
		AddRow("event-1", "org-1", "venue-1", "Saved First", "", "meetup",
			created, start, nil, nil, 0.0, nil, domain.EventStatusUpcoming)
	mock.ExpectQuery(`FROM saved_events s`).
		WithArgs("user-1").
		WillReturnRows(rows)

	repo := NewSavedEventRepository(db)
	events, err := repo.ListEventsByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Saved Later", events[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
