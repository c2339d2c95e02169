package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/myturn82/dragonj/internal/storage/models"
)

// UserRepository provides data access for user accounts and sessions.
type UserRepository struct {
	BaseRepository
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// CreateUser inserts a new user account.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = GenerateID()
	user.CreatedAt = r.Now()

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)
	`, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by email. Returns nil when no account exists.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by id. Returns nil when no account exists.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return user, nil
}

// CreateSession records an issued sign-in token.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.CreatedAt = r.Now()

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)
	`, session.ID, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by id. Returns nil when the session
// does not exist (signed out or never issued).
func (r *UserRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session := &models.Session{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?
	`, id).Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	return session, nil
}

// DeleteSession revokes a session by id. Deleting an already-revoked
// session is not an error; sign-out is idempotent.
func (r *UserRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.DB().ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry and returns
// the number removed. Called periodically from the background scheduler.
func (r *UserRepository) DeleteExpiredSessions(ctx context.Context) (int, error) {
	result, err := r.DB().ExecContext(ctx, `
		DELETE FROM sessions WHERE expires_at < ?
	`, r.Now())
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}

	removed, _ := result.RowsAffected()
	return int(removed), nil
}
