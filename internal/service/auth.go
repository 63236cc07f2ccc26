package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"orion/internal/auth"
	"orion/internal/model"
	"orion/internal/repository"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
)

// TokenIssuer signs access tokens for users.
type TokenIssuer interface {
	Issue(u *model.User) (string, *auth.Claims, error)
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput identifies a user by email or username.
type LoginInput struct {
	Identifier string
	Password   string
}

// UpdateProfileInput changes the authenticated user's account. Empty fields are left untouched.
type UpdateProfileInput struct {
	CurrentPassword string
	Username        string
	Email           string
	NewPassword     string
}

// Session is the token pair handed to a client after login or refresh.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
}

// ProfileUpdate is the result of UpdateProfile: the stored user and a fresh session.
type ProfileUpdate struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// AuthService implements account registration and the token lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and replaces the user's refresh token.
	Login(ctx context.Context, in LoginInput) (*Session, error)

	// Refresh spends refreshToken and returns a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	// Logout drops the user's refresh tokens and revokes the presented access token until it expires.
	Logout(ctx context.Context, userID int64, tokenID string, expiresAt time.Time) error

	Me(ctx context.Context, userID int64) (*model.User, error)

	// UpdateProfile requires the current password. Credentials change, so a new session is issued.
	UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*ProfileUpdate, error)
}

type authService struct {
	users   repository.UserRepository
	refresh RefreshTokenService
	hasher  auth.PasswordHasher
	tokens  TokenIssuer
	revoker auth.Revoker
}

// NewAuthService constructs an AuthService.
func NewAuthService(
	users repository.UserRepository,
	refresh RefreshTokenService,
	hasher auth.PasswordHasher,
	tokens TokenIssuer,
	revoker auth.Revoker,
) AuthService {
	return &authService{
		users:   users,
		refresh: refresh,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
	}
}

// validateUsername applies the length bounds to the trimmed name.
func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("%w: username must be %d to %d characters", ErrValidation, minUsernameLen, maxUsernameLen)
	}
	return nil
}

func (s *authService) hashPassword(pw string) (string, error) {
	hash, err := s.hasher.Hash(pw)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, auth.MaxPasswordBytes)
	}
	return hash, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (u *model.User, err error) {
	ctx, span := startSpan(ctx, "AuthService.Register")
	defer func() { endSpan(span, err) }()

	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrValidation
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err = s.users.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (sess *Session, err error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer func() { endSpan(span, err) }()

	u, err := s.findByIdentifier(ctx, strings.TrimSpace(in.Identifier))
	if err != nil {
		return nil, err
	}
	if err := s.checkPassword(u, in.Password); err != nil {
		return nil, err
	}
	return s.newSession(ctx, u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (sess *Session, err error) {
	ctx, span := startSpan(ctx, "AuthService.Refresh")
	defer func() { endSpan(span, err) }()

	t, err := s.refresh.Redeem(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return s.newSession(ctx, u)
}

func (s *authService) Logout(ctx context.Context, userID int64, tokenID string, expiresAt time.Time) error {
	if err := s.refresh.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}
	if tokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (res *ProfileUpdate, err error) {
	ctx, span := startSpan(ctx, "AuthService.UpdateProfile")
	defer func() { endSpan(span, err) }()

	u, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkPassword(u, in.CurrentPassword); err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(in.Username); username != "" && username != u.Username {
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		if err := s.ensureUsernameFree(ctx, username, u.ID); err != nil {
			return nil, err
		}
		u.Username = username
	}
	if email := normalizeEmail(in.Email); email != "" && email != u.Email {
		if err := s.ensureEmailFree(ctx, email, u.ID); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if in.NewPassword != "" {
		hash, err := s.hashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	sess, err := s.newSession(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &ProfileUpdate{User: updated, AccessToken: sess.AccessToken, RefreshToken: sess.RefreshToken}, nil
}

func (s *authService) newSession(ctx context.Context, u *model.User) (*Session, error) {
	access, _, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	rt, err := s.refresh.CreateForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: rt.Token,
		UserID:       u.ID,
		Username:     u.Username,
	}, nil
}

// findByIdentifier resolves an email first, then a username.
func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if identifier == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.FindByEmail(ctx, normalizeEmail(identifier))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	u, err = s.users.FindByUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) checkPassword(u *model.User, password string) error {
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}

// ensureEmailFree fails with ErrEmailTaken if a user other than self owns email.
func (s *authService) ensureEmailFree(ctx context.Context, email string, self int64) error {
	u, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	case u.ID != self:
		return ErrEmailTaken
	}
	return nil
}

func (s *authService) ensureUsernameFree(ctx context.Context, username string, self int64) error {
	u, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	case u.ID != self:
		return ErrUsernameTaken
	}
	return nil
}
