package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/config"
	"github.com/romasdental/clinic-portal/internal/model"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/security"
)

const (
	bcryptCost       = 12
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
	defaultName      = "Admin"
)

// Service signs in the single configured administrator. Sessions are opaque
// ids held in memory until logout or expiry.
type Service struct {
	email    string
	name     string
	hash     string
	hasher   security.PasswordHasher
	ttl      time.Duration
	sessions *cache.Cache
	attempts *cache.Cache

	now   func() time.Time
	newID func() string
}

// NewService prepares the admin credentials. A plain password is hashed once
// here so every login compares through bcrypt. hasher may be nil.
func NewService(cfg config.AdminConfig, hasher security.PasswordHasher) (*Service, error) {
	if hasher == nil {
		hasher = security.NewBcryptHasher(bcryptCost)
	}
	if strings.TrimSpace(cfg.Email) == "" {
		return nil, fmt.Errorf("admin email is not configured")
	}

	hash := cfg.PasswordHash
	switch {
	case hash != "":
		if !security.IsBcryptHash(hash) {
			return nil, fmt.Errorf("admin password hash is not a bcrypt hash")
		}
	case cfg.Password != "":
		var err error
		if hash, err = hasher.Hash(cfg.Password); err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	default:
		return nil, fmt.Errorf("admin password is not configured")
	}

	name := cfg.Name
	if name == "" {
		name = defaultName
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Service{
		email:    cfg.Email,
		name:     name,
		hash:     hash,
		hasher:   hasher,
		ttl:      ttl,
		sessions: cache.New(ttl, 10*time.Minute),
		attempts: cache.New(lockoutDuration, lockoutDuration),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}, nil
}

func invalidCredentials() *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrUnauthorized,
		Message: "Invalid email or password",
		Err:     model.ErrInvalidCredentials,
	}
}

// Login checks the credentials and opens a session.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.Session, error) {
	key := strings.ToLower(strings.TrimSpace(req.Email))
	if n, ok := s.attempts.Get(key); ok && n.(int) >= maxLoginAttempts {
		log.Warn().Str("email", key).Msg("admin login locked out")
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrUnauthorized,
			Message: "Too many failed attempts, try again later",
			Err:     model.ErrInvalidCredentials,
		}
	}

	passwordOK := s.hasher.Compare(s.hash, req.Password) == nil
	if !security.EqualFold(req.Email, s.email) || !passwordOK {
		if err := s.attempts.Increment(key, 1); err != nil {
			s.attempts.SetDefault(key, 1)
		}
		log.Warn().Str("email", key).Msg("admin login failed")
		return nil, invalidCredentials()
	}
	s.attempts.Delete(key)

	now := s.now()
	session := &model.Session{
		ID:        s.newID(),
		Email:     s.email,
		Name:      s.name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions.Set(session.ID, session, s.ttl)

	log.Info().Str("email", s.email).Msg("admin signed in")
	return session, nil
}

// Validate returns the live session for id.
func (s *Service) Validate(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, apperrors.Unauthorized(model.ErrSessionNotFound)
	}
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, apperrors.Unauthorized(model.ErrSessionNotFound)
	}
	return v.(*model.Session), nil
}

// Logout ends the session. Unknown ids are ignored.
func (s *Service) Logout(ctx context.Context, id string) {
	s.sessions.Delete(id)
}
