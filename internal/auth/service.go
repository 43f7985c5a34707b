// Package auth manages credential verification and the session lifecycle:
// bcrypt-hashed passwords, opaque bearer tokens with a fixed lifetime, and
// a single live session per user.
package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/olzhasbek/qazcargo/internal/apperr"
	"github.com/olzhasbek/qazcargo/internal/model"
	"github.com/olzhasbek/qazcargo/internal/repository"
)

// Password length bounds enforced at sign-up. The upper bound is bcrypt's
// 72-byte input limit; anything longer must fail as a validation error, not
// surface as a hashing failure.
const (
	MinPasswordLen = 6
	MaxPasswordLen = 72
)

// UserStore is the persistence surface the service needs for accounts.
// *repository.UserRepo satisfies it; tests substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, fullName, role string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, bool, error)
	GetByID(ctx context.Context, id uint64) (model.User, bool, error)
}

// SessionStore is the persistence surface for session rows.
type SessionStore interface {
	ReplaceForUser(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error
	GetByTokenHash(ctx context.Context, tokenHash string) (model.Session, bool, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID uint64) error
}

// Profile is a user with the password hash stripped. It is the only user
// shape that leaves this package.
type Profile struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"user_type"`
}

// Grant is the result of a successful sign-up or sign-in: the sanitized
// user, the raw session token for the client, and when it expires.
type Grant struct {
	User      Profile
	Token     string
	ExpiresAt time.Time
}

// Service implements the auth operations over the two stores. The now
// field exists so tests can move the clock; production wiring leaves it
// nil and gets time.Now.
type Service struct {
	Users      UserStore
	Sessions   SessionStore
	BcryptCost int
	SessionTTL time.Duration

	now func() time.Time
}

func NewService(users UserStore, sessions SessionStore, bcryptCost int, sessionTTL time.Duration) *Service {
	return &Service{Users: users, Sessions: sessions, BcryptCost: bcryptCost, SessionTTL: sessionTTL}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// SignUp registers a new account and signs it in. Admin accounts are not
// self-service: anything other than "worker" becomes "user".
func (s *Service) SignUp(ctx context.Context, email, password, fullName, role string) (Grant, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	// Bare addresses only: ParseAddress also accepts display-name forms
	// like `A <a@x.com>`, which must not end up stored as the email.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return Grant{}, apperr.Validation("invalid email address")
	}
	if len(password) < MinPasswordLen {
		return Grant{}, apperr.Validation("password must be at least 6 characters")
	}
	if len(password) > MaxPasswordLen {
		return Grant{}, apperr.Validation("password must be at most 72 characters")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return Grant{}, apperr.Validation("full name is required")
	}
	if role = strings.ToLower(strings.TrimSpace(role)); role != model.RoleWorker {
		role = model.RoleUser
	}

	hash, err := hashPassword(password, s.BcryptCost)
	if err != nil {
		return Grant{}, apperr.Store(err)
	}
	uid, err := s.Users.Create(ctx, email, hash, fullName, role)
	if err != nil {
		if err == repository.ErrEmailExists {
			return Grant{}, apperr.Conflict("user already exists")
		}
		return Grant{}, apperr.Store(err)
	}

	return s.issue(ctx, Profile{ID: uid, Email: email, FullName: fullName, Role: role})
}

// SignIn verifies credentials and issues a fresh session. Unknown email and
// wrong password return the exact same error so accounts cannot be
// enumerated through the message or the kind.
func (s *Service) SignIn(ctx context.Context, email, password string) (Grant, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Grant{}, apperr.Validation("email and password are required")
	}

	u, found, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return Grant{}, apperr.Store(err)
	}
	if !found || !verifyPassword(u.PasswordHash, password) {
		return Grant{}, apperr.InvalidCredentials()
	}

	return s.issue(ctx, sanitize(u))
}

// issue replaces any live session for the user with a fresh one. The raw
// token goes back to the caller; only its hash reaches the store.
func (s *Service) issue(ctx context.Context, p Profile) (Grant, error) {
	raw, err := newToken()
	if err != nil {
		return Grant{}, apperr.Store(err)
	}
	exp := s.clock().Add(s.SessionTTL)
	if err := s.Sessions.ReplaceForUser(ctx, p.ID, HashToken(raw), exp); err != nil {
		return Grant{}, apperr.Store(err)
	}
	return Grant{User: p, Token: raw, ExpiresAt: exp}, nil
}

// ValidateSession resolves a raw token to its user. A missing or expired
// session reports ok=false, never an error; expired rows are deleted on
// the spot (lazy expiry). Validation never extends the session.
func (s *Service) ValidateSession(ctx context.Context, token string) (Profile, bool, error) {
	if token == "" {
		return Profile{}, false, nil
	}
	hash := HashToken(token)

	sess, found, err := s.Sessions.GetByTokenHash(ctx, hash)
	if err != nil {
		return Profile{}, false, apperr.Store(err)
	}
	if !found {
		return Profile{}, false, nil
	}
	if !s.clock().Before(sess.ExpiresAt) {
		if err := s.Sessions.DeleteByTokenHash(ctx, hash); err != nil {
			return Profile{}, false, apperr.Store(err)
		}
		return Profile{}, false, nil
	}

	u, found, err := s.Users.GetByID(ctx, sess.UserID)
	if err != nil {
		return Profile{}, false, apperr.Store(err)
	}
	if !found {
		return Profile{}, false, nil
	}
	return sanitize(u), true, nil
}

// SignOut deletes the session matching the token. Unknown or already
// invalid tokens are a no-op, not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Sessions.DeleteByTokenHash(ctx, HashToken(token)); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// RevokeAllSessions force-logs-out a user everywhere.
func (s *Service) RevokeAllSessions(ctx context.Context, userID uint64) error {
	if err := s.Sessions.DeleteByUser(ctx, userID); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func sanitize(u model.User) Profile {
	return Profile{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
