// Package auth registers users, checks passwords, and issues the tokens the API is called with.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/at-ishikawa/lunaword/internal/user"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 64
	issuer            = "lunaword"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidUsername    = errors.New("username must be 1 to 64 characters without spaces")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInvalidToken       = errors.New("invalid token")
)

// Session identifies the user behind a request.
type Session struct {
	Username  string
	ExpiresAt time.Time
}

type Service struct {
	users  user.Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	cost   int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func NewService(users user.Repository, secret string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user with a bcrypt hash of password.
func (s *Service) Register(ctx context.Context, username, password string) (*user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength || strings.ContainsAny(username, " \t\n") {
		return nil, ErrInvalidUsername
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("users.FindByUsername(%s) > %w", username, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%s: %w", username, ErrUserExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt.GenerateFromPassword() > %w", err)
	}
	newUser := &user.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("users.Create(%s) > %w", username, err)
	}
	return newUser, nil
}

// Login checks the password and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, Session, error) {
	username = strings.TrimSpace(username)
	found, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", Session{}, fmt.Errorf("users.FindByUsername(%s) > %w", username, err)
	}
	if found == nil {
		return "", Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return "", Session{}, ErrInvalidCredentials
	}
	return s.IssueToken(found.Username)
}

// IssueToken signs a token for username.
func (s *Service) IssueToken(username string) (string, Session, error) {
	now := s.now()
	session := Session{
		Username:  username,
		ExpiresAt: now.Add(s.ttl).Truncate(time.Second),
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("token.SignedString() > %w", err)
	}
	return token, session, nil
}

// ParseToken verifies a token and returns its session.
func (s *Service) ParseToken(token string) (Session, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("jwt.ParseWithClaims() > %w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Session{}, fmt.Errorf("empty subject: %w", ErrInvalidToken)
	}
	return Session{
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
