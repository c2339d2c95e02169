// Package auth implements the account and session store: local accounts
// with bcrypt password hashes and JWT session tokens backed by a
// sessions table, so sign-out actually revokes a token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/myturn82/dragonj/internal/storage"
	"github.com/myturn82/dragonj/internal/storage/models"
)

// Errors surfaced to handlers. They are matched with errors.Is to pick
// response codes, so wrap rather than replace them.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service issues and verifies session tokens.
type Service struct {
	users  *storage.UserRepository
	secret []byte
	ttl    time.Duration
}

// NewService creates an auth service. secret signs tokens; ttl bounds
// session lifetime.
func NewService(users *storage.UserRepository, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignUp creates an account and signs the new user in.
func (s *Service) SignUp(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SignIn verifies credentials and issues a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SignOut revokes the session carried by the token. Unknown or already
// revoked tokens are not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	parsed, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.users.DeleteSession(ctx, parsed.ID)
}

// Verify checks a token's signature, expiry, and that its session is
// still present (not signed out), and returns the owning user.
func (s *Service) Verify(ctx context.Context, token string) (*models.User, error) {
	parsed, err := s.parseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := s.users.GetSession(ctx, parsed.ID)
	if err != nil {
		return nil, err
	}
	if session == nil || time.Now().UTC().After(session.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, parsed.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}

func (s *Service) issueToken(ctx context.Context, user *models.User) (string, error) {
	now := time.Now().UTC()
	session := &models.Session{
		ID:        storage.GenerateID(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		return "", err
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *Service) parseToken(token string) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return c, nil
}
