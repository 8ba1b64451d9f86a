package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bitevents/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, password_salt, is_organizer, profile_picture, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := q(ctx, r.DB).QueryRowContext(ctx, query,
		user.FullName, user.Email, user.PasswordHash, user.PasswordSalt,
		user.IsOrganizer, user.ProfilePicture, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, password_salt, is_organizer, profile_picture, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(q(ctx, r.DB).QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, password_salt, is_organizer, profile_picture, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(q(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var pictureNull sql.NullString
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.PasswordSalt,
		&u.IsOrganizer, &pictureNull, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if pictureNull.Valid {
		u.ProfilePicture = &pictureNull.String
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = $1, profile_picture = $2
		WHERE id = $3
	`
	result, err := q(ctx, r.DB).ExecContext(ctx, query, user.FullName, user.ProfilePicture, user.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	query := `
		UPDATE users
		SET password_hash = $1, password_salt = $2
		WHERE id = $3
	`
	result, err := q(ctx, r.DB).ExecContext(ctx, query, hash, salt, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := q(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
